package postgres

import (
	"context"
	"errors"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("repository/postgres")

type characterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *characterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(ctx context.Context, character *domain.Character) error {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Create")
	defer span.End()

	if character.ID == uuid.Nil {
		character.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(character).Error; err != nil {
		return domain.StoreError("character.Create", err)
	}
	return nil
}

func (r *characterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.GetByID")
	defer span.End()

	var character domain.Character
	err := r.db.WithContext(ctx).First(&character, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreError("character.GetByID", err)
	}
	inUTC(&character)
	return &character, nil
}

func (r *characterRepository) List(ctx context.Context, filter domain.CharacterFilter) ([]*domain.Character, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.List")
	defer span.End()

	characters := make([]*domain.Character, 0)
	err := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Order("seq ASC").
		Find(&characters).Error
	if err != nil {
		return nil, domain.StoreError("character.List", err)
	}
	for _, character := range characters {
		inUTC(character)
	}
	return characters, nil
}

func (r *characterRepository) Update(ctx context.Context, character *domain.Character) error {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Update")
	defer span.End()

	character.UpdatedAt = Now()
	result := r.db.WithContext(ctx).
		Model(character).
		Select("name", "zodiac_sign", "image_url", "description", "updated_at").
		UpdateColumns(character)
	if result.Error != nil {
		return domain.StoreError("character.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *characterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Delete")
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&domain.Character{}, "id = ?", id)
	if result.Error != nil {
		return domain.StoreError("character.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *characterRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.DeleteAll")
	defer span.End()

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.Character{})
	if result.Error != nil {
		return 0, domain.StoreError("character.DeleteAll", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *characterRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "CharacterRepository.Count")
	defer span.End()

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Character{}).Count(&count).Error; err != nil {
		return 0, domain.StoreError("character.Count", err)
	}
	return count, nil
}

func (r *characterRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return domain.StoreError("character.Ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return domain.StoreError("character.Ping", err)
	}
	return nil
}

// filterScope translates the query filter into a WHERE clause.
func filterScope(filter domain.CharacterFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.ZodiacSign != "" {
			db = db.Where("zodiac_sign = ?", filter.ZodiacSign)
		}
		return db
	}
}

// inUTC drops the session time zone the driver scans timestamptz into.
func inUTC(c *domain.Character) {
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}
