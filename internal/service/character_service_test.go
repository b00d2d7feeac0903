package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/repository/memory"
	"github.com/dom/zodiac-catalog/internal/repository/mocks"
	"github.com/dom/zodiac-catalog/internal/seed"
	"github.com/dom/zodiac-catalog/internal/service"
	"github.com/dom/zodiac-catalog/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CharacterEvent
}

func (p *recordingPublisher) Publish(event domain.CharacterEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func strPtr(s string) *string { return &s }

func newService() (*service.CharacterService, *recordingPublisher) {
	publisher := &recordingPublisher{}
	return service.NewCharacterService(memory.NewCharacterRepository(), publisher), publisher
}

func TestCharacterService_CreateCharacter(t *testing.T) {
	svc, publisher := newService()
	ctx := context.Background()

	tests := []struct {
		name    string
		fields  domain.CharacterFields
		wantErr error
	}{
		{
			name: "all fields",
			fields: domain.CharacterFields{
				Name:        "Seiya",
				ZodiacSign:  "Sagitario",
				ImageURL:    "https://example.com/seiya.jpg",
				Description: "Caballero de bronce de Pegaso",
			},
		},
		{
			name:   "name only",
			fields: domain.CharacterFields{Name: "Shiryu"},
		},
		{
			name:    "missing name",
			fields:  domain.CharacterFields{ZodiacSign: "Libra"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "invalid image url",
			fields:  domain.CharacterFields{Name: "Hyoga", ImageURL: "not a url"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			character, err := svc.CreateCharacter(ctx, tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, character)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, character.ID)
			assert.Equal(t, tt.fields, character.Fields())

			got, err := svc.GetCharacter(ctx, character.ID.String())
			require.NoError(t, err)
			assert.Equal(t, character, got)
		})
	}

	assert.Equal(t, []domain.EventType{domain.EventCharacterCreated, domain.EventCharacterCreated}, publisher.types())
}

func TestCharacterService_UnknownIDs(t *testing.T) {
	svc, publisher := newService()
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "not-a-uuid", ""} {
		_, err := svc.GetCharacter(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		_, err = svc.UpdateCharacter(ctx, id, domain.CharacterPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		err = svc.DeleteCharacter(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
	assert.Empty(t, publisher.types())
}

func TestCharacterService_UpdateCharacter(t *testing.T) {
	svc, publisher := newService()
	ctx := context.Background()

	seiya, err := svc.CreateCharacter(ctx, domain.CharacterFields{
		Name:        "Seiya",
		ZodiacSign:  "Sagitario",
		Description: "Pegaso",
	})
	require.NoError(t, err)

	patch := domain.CharacterPatch{ZodiacSign: strPtr("Escorpio"), Description: strPtr("")}

	first, err := svc.UpdateCharacter(ctx, seiya.ID.String(), patch)
	require.NoError(t, err)
	assert.Equal(t, "Seiya", first.Name)
	assert.Equal(t, "Escorpio", first.ZodiacSign)
	assert.Equal(t, "Pegaso", first.Description)

	second, err := svc.UpdateCharacter(ctx, seiya.ID.String(), patch)
	require.NoError(t, err)
	assert.Equal(t, first.Fields(), second.Fields())

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := svc.UpdateCharacter(ctx, seiya.ID.String(), domain.CharacterPatch{Name: strPtr("  ")})
		assert.ErrorIs(t, err, domain.ErrValidation)

		got, err := svc.GetCharacter(ctx, seiya.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Seiya", got.Name)
	})

	t.Run("empty patch does not write", func(t *testing.T) {
		before := len(publisher.types())
		got, err := svc.UpdateCharacter(ctx, seiya.ID.String(), domain.CharacterPatch{})
		require.NoError(t, err)
		assert.Equal(t, "Escorpio", got.ZodiacSign)
		assert.Len(t, publisher.types(), before)
	})
}

// Seed store with Seiya and Shiryu, filter, update, delete.
func TestCharacterService_Scenario(t *testing.T) {
	svc, publisher := newService()
	ctx := context.Background()

	a, err := svc.CreateCharacter(ctx, domain.CharacterFields{Name: "Seiya", ZodiacSign: "Sagitario"})
	require.NoError(t, err)
	b, err := svc.CreateCharacter(ctx, domain.CharacterFields{Name: "Shiryu", ZodiacSign: "Libra"})
	require.NoError(t, err)

	libras, err := svc.ListCharacters(ctx, domain.CharacterFilter{ZodiacSign: "Libra"})
	require.NoError(t, err)
	require.Len(t, libras, 1)
	assert.Equal(t, b.ID, libras[0].ID)

	updated, err := svc.UpdateCharacter(ctx, a.ID.String(), domain.CharacterPatch{ZodiacSign: strPtr("Escorpio")})
	require.NoError(t, err)
	assert.Equal(t, "Escorpio", updated.ZodiacSign)
	assert.Equal(t, "Seiya", updated.Name)

	require.NoError(t, svc.DeleteCharacter(ctx, b.ID.String()))

	all, err := svc.ListCharacters(ctx, domain.CharacterFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, "Escorpio", all[0].ZodiacSign)

	_, err = svc.GetCharacter(ctx, b.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []domain.EventType{
		domain.EventCharacterCreated,
		domain.EventCharacterCreated,
		domain.EventCharacterUpdated,
		domain.EventCharacterDeleted,
	}, publisher.types())
}

func TestCharacterService_Seed(t *testing.T) {
	svc, publisher := newService()
	ctx := context.Background()

	_, err := svc.CreateCharacter(ctx, domain.CharacterFields{Name: "Temporal"})
	require.NoError(t, err)

	result, err := svc.Seed(ctx, seed.Characters())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Len(t, result.Inserted, 12)

	health, err := svc.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), health.CharactersCount)

	leos, err := svc.ListCharacters(ctx, domain.CharacterFilter{ZodiacSign: "Leo"})
	require.NoError(t, err)
	require.Len(t, leos, 2)
	assert.Equal(t, "Ikki de Fénix", leos[0].Name)
	assert.Equal(t, "Aiolia de Leo", leos[1].Name)

	assert.Contains(t, publisher.types(), domain.EventCharactersSeeded)

	t.Run("invalid entry deletes nothing", func(t *testing.T) {
		_, err := svc.Seed(ctx, []domain.CharacterFields{{Name: "ok"}, {Name: ""}})
		assert.ErrorIs(t, err, domain.ErrValidation)

		count, err := svc.CountCharacters(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
	})
}

func TestCharacterService_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCharacterRepository(ctrl)
	publisher := &recordingPublisher{}
	svc := service.NewCharacterService(repo, publisher)
	ctx := context.Background()
	storeErr := domain.StoreError("character.List", errors.New("connection reset"))

	repo.EXPECT().List(gomock.Any(), domain.CharacterFilter{}).Return(nil, storeErr)
	_, err := svc.ListCharacters(ctx, domain.CharacterFilter{})
	assert.ErrorIs(t, err, domain.ErrStore)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(storeErr)
	_, err = svc.CreateCharacter(ctx, domain.CharacterFields{Name: "Seiya"})
	assert.ErrorIs(t, err, domain.ErrStore)

	id := uuid.New()
	existing := &domain.Character{ID: id, Name: "Seiya"}
	repo.EXPECT().GetByID(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(storeErr)
	_, err = svc.UpdateCharacter(ctx, id.String(), domain.CharacterPatch{ZodiacSign: strPtr("Leo")})
	assert.ErrorIs(t, err, domain.ErrStore)

	repo.EXPECT().Ping(gomock.Any()).Return(storeErr)
	_, err = svc.Health(ctx)
	assert.ErrorIs(t, err, domain.ErrStore)

	repo.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), storeErr)
	_, err = svc.Seed(ctx, seed.Characters())
	assert.ErrorIs(t, err, domain.ErrStore)

	assert.Empty(t, publisher.types())
}

func TestCharacterService_Spans(t *testing.T) {
	exporter := testutil.SetupMockTraceProvider()
	exporter.Reset()

	svc, _ := newService()
	_, err := svc.ListCharacters(context.Background(), domain.CharacterFilter{ZodiacSign: "Leo"})
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.NotEmpty(t, spans)

	var found bool
	for _, span := range spans {
		if span.Name == "CharacterService.ListCharacters" {
			found = true
		}
	}
	assert.True(t, found, "service span not recorded")
}
