// Package memory keeps characters in process memory. Useful for local
// development and for tests that must run without Docker.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/repository"
	"github.com/google/uuid"
)

type CharacterRepository struct {
	mu         sync.RWMutex
	characters map[uuid.UUID]*domain.Character
	order      []uuid.UUID
	seq        int64
	now        func() time.Time
}

func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{
		characters: make(map[uuid.UUID]*domain.Character),
		now:        time.Now,
	}
}

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Character: NewCharacterRepository(),
	}
}

func (r *CharacterRepository) Create(ctx context.Context, character *domain.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if character.ID == uuid.Nil {
		character.ID = uuid.New()
	}
	if _, exists := r.characters[character.ID]; exists {
		return domain.StoreError("character.Create", errDuplicateID)
	}

	r.seq++
	now := r.now().UTC()
	character.Seq = r.seq
	character.CreatedAt = now
	character.UpdatedAt = now

	stored := *character
	r.characters[character.ID] = &stored
	r.order = append(r.order, character.ID)
	return nil
}

func (r *CharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	character, ok := r.characters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *character
	return &c, nil
}

func (r *CharacterRepository) List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	characters := make([]*domain.Character, 0, len(r.order))
	for _, id := range r.order {
		character := r.characters[id]
		if !filter.Matches(character) {
			continue
		}
		c := *character
		characters = append(characters, &c)
	}
	return characters, nil
}

func (r *CharacterRepository) Update(ctx context.Context, character *domain.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.characters[character.ID]
	if !ok {
		return domain.ErrNotFound
	}

	updated := *existing
	updated.Name = character.Name
	updated.ZodiacSign = character.ZodiacSign
	updated.ImageURL = character.ImageURL
	updated.Description = character.Description
	updated.UpdatedAt = r.now().UTC()
	r.characters[character.ID] = &updated

	character.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *CharacterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.characters[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.characters, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *CharacterRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.order))
	r.characters = make(map[uuid.UUID]*domain.Character)
	r.order = nil
	return n, nil
}

func (r *CharacterRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}

func (r *CharacterRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
