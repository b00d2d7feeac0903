// Package redis stores characters as JSON documents in redis.
//
// Layout:
//
//	character:<id>   JSON document
//	characters       sorted set of ids scored by insertion sequence
//	characters:seq   insertion sequence counter
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository/redis")

const (
	indexKey    = "characters"
	sequenceKey = "characters:seq"
)

// CharacterData is the serialized form of a character in redis.
type CharacterData struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Name        string    `json:"name"`
	ZodiacSign  string    `json:"zodiac_sign"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type characterRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewCharacterRepository(client redis.UniversalClient) *characterRepository {
	return &characterRepository{
		client: client,
		now:    time.Now,
	}
}

func key(id uuid.UUID) string {
	return fmt.Sprintf("character:%s", id)
}

func toData(c *domain.Character) CharacterData {
	return CharacterData{
		ID:          c.ID.String(),
		Seq:         c.Seq,
		Name:        c.Name,
		ZodiacSign:  c.ZodiacSign,
		ImageURL:    c.ImageURL,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func fromData(data CharacterData) (*domain.Character, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored id %q: %w", data.ID, err)
	}
	return &domain.Character{
		ID:          id,
		Seq:         data.Seq,
		Name:        data.Name,
		ZodiacSign:  data.ZodiacSign,
		ImageURL:    data.ImageURL,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}, nil
}

func decode(raw string) (*domain.Character, error) {
	var data CharacterData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return fromData(data)
}

func (r *characterRepository) Create(ctx context.Context, character *domain.Character) error {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Create")
	defer span.End()

	if character.ID == uuid.Nil {
		character.ID = uuid.New()
	}

	seq, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return domain.StoreError("character.Create", err)
	}

	now := r.now().UTC()
	character.Seq = seq
	character.CreatedAt = now
	character.UpdatedAt = now

	data, err := json.Marshal(toData(character))
	if err != nil {
		return domain.StoreError("character.Create", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key(character.ID), string(data), 0)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(seq), Member: character.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.StoreError("character.Create", err)
	}
	return nil
}

func (r *characterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.GetByID")
	defer span.End()

	raw, err := r.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreError("character.GetByID", err)
	}

	character, err := decode(raw)
	if err != nil {
		return nil, domain.StoreError("character.GetByID", err)
	}
	return character, nil
}

func (r *characterRepository) List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.List")
	defer span.End()

	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, domain.StoreError("character.List", err)
	}

	characters := make([]*domain.Character, 0, len(ids))
	if len(ids) == 0 {
		return characters, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = "character:" + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.StoreError("character.List", err)
	}

	for _, value := range values {
		// Deleted between ZRANGE and MGET.
		raw, ok := value.(string)
		if !ok {
			continue
		}
		character, err := decode(raw)
		if err != nil {
			return nil, domain.StoreError("character.List", err)
		}
		if filter.Matches(character) {
			characters = append(characters, character)
		}
	}
	return characters, nil
}

func (r *characterRepository) Update(ctx context.Context, character *domain.Character) error {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Update")
	defer span.End()

	character.UpdatedAt = r.now().UTC()
	data, err := json.Marshal(toData(character))
	if err != nil {
		return domain.StoreError("character.Update", err)
	}

	// XX only overwrites an existing document.
	ok, err := r.client.SetXX(ctx, key(character.ID), string(data), 0).Result()
	if errors.Is(err, redis.Nil) {
		ok, err = false, nil
	}
	if err != nil {
		return domain.StoreError("character.Update", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *characterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Delete")
	defer span.End()

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, key(id))
	pipe.ZRem(ctx, indexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.StoreError("character.Delete", err)
	}
	if deleted.Val() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *characterRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.DeleteAll")
	defer span.End()

	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return 0, domain.StoreError("character.DeleteAll", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, "character:"+id)
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return 0, domain.StoreError("character.DeleteAll", err)
	}
	return int64(len(ids)), nil
}

func (r *characterRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Count")
	defer span.End()

	n, err := r.client.ZCard(ctx, indexKey).Result()
	if err != nil {
		return 0, domain.StoreError("character.Count", err)
	}
	return n, nil
}

func (r *characterRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return domain.StoreError("character.Ping", err)
	}
	return nil
}
