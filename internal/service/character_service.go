package service

import (
	"context"
	"fmt"
	"log"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("service")

// EventPublisher receives an event after every persisted mutation.
type EventPublisher interface {
	Publish(event domain.CharacterEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.CharacterEvent) {}

type CharacterService struct {
	characterRepo repository.CharacterRepository
	publisher     EventPublisher
}

func NewCharacterService(characterRepo repository.CharacterRepository, publisher EventPublisher) *CharacterService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &CharacterService{
		characterRepo: characterRepo,
		publisher:     publisher,
	}
}

// parseID maps malformed ids to not found; they cannot name a stored record.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return parsed, nil
}

func (s *CharacterService) ListCharacters(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.ListCharacters",
		trace.WithAttributes(attribute.String("filter.zodiacSign", filter.ZodiacSign)))
	defer span.End()

	return s.characterRepo.List(ctx, filter)
}

func (s *CharacterService) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.GetCharacter")
	defer span.End()

	characterID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.characterRepo.GetByID(ctx, characterID)
}

func (s *CharacterService) CreateCharacter(ctx context.Context, fields domain.CharacterFields) (*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.CreateCharacter")
	defer span.End()

	if err := fields.Validate(); err != nil {
		return nil, err
	}

	character := fields.NewCharacter()
	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.CharacterEvent{
		Type:      domain.EventCharacterCreated,
		ID:        character.ID.String(),
		Character: character,
	})
	return character, nil
}

// UpdateCharacter merges patch onto the stored record. An empty patch
// returns the record unchanged without writing.
func (s *CharacterService) UpdateCharacter(ctx context.Context, id string, patch domain.CharacterPatch) (*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.UpdateCharacter")
	defer span.End()

	characterID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	merged := patch.Apply(*existing)
	if err := merged.Fields().Validate(); err != nil {
		return nil, err
	}
	if err := s.characterRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.CharacterEvent{
		Type:      domain.EventCharacterUpdated,
		ID:        merged.ID.String(),
		Character: &merged,
	})
	return &merged, nil
}

func (s *CharacterService) DeleteCharacter(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "CharacterService.DeleteCharacter")
	defer span.End()

	characterID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.characterRepo.Delete(ctx, characterID); err != nil {
		return err
	}

	s.publisher.Publish(domain.CharacterEvent{
		Type: domain.EventCharacterDeleted,
		ID:   characterID.String(),
	})
	return nil
}

func (s *CharacterService) CountCharacters(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.CountCharacters")
	defer span.End()

	return s.characterRepo.Count(ctx)
}

type HealthStatus struct {
	CharactersCount int64
}

// Health pings the store and counts characters.
func (s *CharacterService) Health(ctx context.Context) (*HealthStatus, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.Health")
	defer span.End()

	if err := s.characterRepo.Ping(ctx); err != nil {
		return nil, err
	}
	count, err := s.characterRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &HealthStatus{CharactersCount: count}, nil
}

type SeedResult struct {
	DeletedCount int64
	Inserted     []*domain.Character
}

// Seed replaces every stored character with the given set. All entries are
// validated before anything is deleted.
func (s *CharacterService) Seed(ctx context.Context, characters []domain.CharacterFields) (*SeedResult, error) {
	ctx, span := tracer.Start(ctx, "CharacterService.Seed")
	defer span.End()

	for i, fields := range characters {
		if err := fields.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}

	deleted, err := s.characterRepo.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("seed: deleted %d characters", deleted)

	result := &SeedResult{
		DeletedCount: deleted,
		Inserted:     make([]*domain.Character, 0, len(characters)),
	}
	for _, fields := range characters {
		character := fields.NewCharacter()
		if err := s.characterRepo.Create(ctx, character); err != nil {
			return nil, err
		}
		result.Inserted = append(result.Inserted, character)
	}
	log.Printf("seed: inserted %d characters", len(result.Inserted))

	s.publisher.Publish(domain.CharacterEvent{Type: domain.EventCharactersSeeded})
	return result, nil
}
