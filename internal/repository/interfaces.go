package repository

import (
	"context"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_character_repository.go -package=mocks github.com/dom/zodiac-catalog/internal/repository CharacterRepository

// CharacterRepository owns persisted characters. Implementations return
// domain.ErrNotFound for unknown ids and wrap driver failures with
// domain.StoreError.
type CharacterRepository interface {
	// Create assigns ID (when unset) and the insertion sequence.
	Create(ctx context.Context, character *domain.Character) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error)
	// List returns matching characters in insertion order, never nil.
	List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error)
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type Repositories struct {
	Character CharacterRepository
}
