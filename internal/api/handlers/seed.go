package handlers

import (
	"log"
	"net/http"

	"github.com/dom/zodiac-catalog/internal/seed"
	"github.com/dom/zodiac-catalog/internal/service"
)

type SeedHandler struct {
	characterService *service.CharacterService
	enabled          bool
}

func NewSeedHandler(characterService *service.CharacterService, enabled bool) *SeedHandler {
	return &SeedHandler{
		characterService: characterService,
		enabled:          enabled,
	}
}

type SeededCharacter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ZodiacSign string `json:"zodiacSign"`
}

type SeedResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	DeletedCount  int64             `json:"deletedCount"`
	InsertedCount int               `json:"insertedCount"`
	Characters    []SeededCharacter `json:"characters"`
}

// Seed resets the store to the canonical character set. Development only.
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		NotFound(w, r)
		return
	}

	result, err := h.characterService.Seed(r.Context(), seed.Characters())
	if err != nil {
		log.Printf("ERROR [seed.Seed]: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	resp := SeedResponse{
		Success:       true,
		Message:       "Seed completed",
		DeletedCount:  result.DeletedCount,
		InsertedCount: len(result.Inserted),
		Characters:    make([]SeededCharacter, len(result.Inserted)),
	}
	for i, c := range result.Inserted {
		resp.Characters[i] = SeededCharacter{
			ID:         c.ID.String(),
			Name:       c.Name,
			ZodiacSign: c.ZodiacSign,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
