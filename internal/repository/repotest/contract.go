// Package repotest holds the behaviour every CharacterRepository must share.
package repotest

import (
	"context"
	"testing"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty repository.
type Factory func(t *testing.T) repository.CharacterRepository

func create(t *testing.T, repo repository.CharacterRepository, name, sign string) *domain.Character {
	t.Helper()
	c := domain.CharacterFields{Name: name, ZodiacSign: sign}.NewCharacter()
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func ids(characters []*domain.Character) []uuid.UUID {
	out := make([]uuid.UUID, len(characters))
	for i, c := range characters {
		out[i] = c.ID
	}
	return out
}

// RunCharacterRepositoryTests exercises newRepo against the repository contract.
func RunCharacterRepositoryTests(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("create assigns unique ids and round trips", func(t *testing.T) {
		repo := newRepo(t)

		seen := map[uuid.UUID]bool{}
		for _, name := range []string{"Seiya", "Shiryu", "Hyoga"} {
			c := create(t, repo, name, "Leo")
			assert.NotEqual(t, uuid.Nil, c.ID)
			assert.False(t, seen[c.ID], "id reused")
			seen[c.ID] = true

			got, err := repo.GetByID(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		missing := uuid.New()

		_, err := repo.GetByID(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.Update(ctx, &domain.Character{ID: missing, Name: "Nobody"})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.Delete(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list keeps insertion order and filters exactly", func(t *testing.T) {
		repo := newRepo(t)

		empty, err := repo.List(ctx, domain.CharacterFilter{})
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		ikki := create(t, repo, "Ikki", "Leo")
		shaka := create(t, repo, "Shaka", "Virgo")
		aiolia := create(t, repo, "Aiolia", "Leo")
		shun := create(t, repo, "Shun", "Virgo")

		all, err := repo.List(ctx, domain.CharacterFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ikki.ID, shaka.ID, aiolia.ID, shun.ID}, ids(all))

		leos, err := repo.List(ctx, domain.CharacterFilter{ZodiacSign: "Leo"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ikki.ID, aiolia.ID}, ids(leos))

		none, err := repo.List(ctx, domain.CharacterFilter{ZodiacSign: "leo"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update replaces editable fields", func(t *testing.T) {
		repo := newRepo(t)
		seiya := create(t, repo, "Seiya", "Sagitario")

		seiya.ZodiacSign = "Escorpio"
		seiya.Description = "Pegaso"
		require.NoError(t, repo.Update(ctx, seiya))

		got, err := repo.GetByID(ctx, seiya.ID)
		require.NoError(t, err)
		assert.Equal(t, seiya, got)
		assert.Equal(t, "Seiya", got.Name)
		assert.Equal(t, "Escorpio", got.ZodiacSign)
		assert.Equal(t, "Pegaso", got.Description)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

		// Updating does not move the record in insertion order.
		other := create(t, repo, "Shiryu", "Libra")
		require.NoError(t, repo.Update(ctx, seiya))
		all, err := repo.List(ctx, domain.CharacterFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{seiya.ID, other.ID}, ids(all))
	})

	t.Run("delete removes permanently", func(t *testing.T) {
		repo := newRepo(t)
		seiya := create(t, repo, "Seiya", "Sagitario")
		shiryu := create(t, repo, "Shiryu", "Libra")

		require.NoError(t, repo.Delete(ctx, shiryu.ID))

		all, err := repo.List(ctx, domain.CharacterFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{seiya.ID}, ids(all))

		_, err = repo.GetByID(ctx, shiryu.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, shiryu.ID), domain.ErrNotFound)
	})

	t.Run("count and delete all", func(t *testing.T) {
		repo := newRepo(t)
		create(t, repo, "Mu", "Aries")
		create(t, repo, "Aldebarán", "Tauro")

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		deleted, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		n, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		require.NoError(t, repo.Ping(ctx))
	})
}
