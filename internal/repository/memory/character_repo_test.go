package memory_test

import (
	"testing"

	"github.com/dom/zodiac-catalog/internal/repository"
	"github.com/dom/zodiac-catalog/internal/repository/memory"
	"github.com/dom/zodiac-catalog/internal/repository/repotest"
)

func TestCharacterRepository(t *testing.T) {
	repotest.RunCharacterRepositoryTests(t, func(t *testing.T) repository.CharacterRepository {
		return memory.NewCharacterRepository()
	})
}
