package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/service"
	"github.com/go-chi/chi/v5"
)

type CharacterHandler struct {
	characterService *service.CharacterService
}

func NewCharacterHandler(characterService *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characterService: characterService}
}

type DeleteResponse struct {
	Message string `json:"message"`
}

func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CharacterFilter{ZodiacSign: r.URL.Query().Get("zodiacSign")}

	characters, err := h.characterService.ListCharacters(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR [character.List]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list characters")
		return
	}
	if characters == nil {
		characters = []*domain.Character{}
	}

	writeJSON(w, http.StatusOK, characters)
}

func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	character, err := h.characterService.GetCharacter(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "character.Get", id, err)
		return
	}

	writeJSON(w, http.StatusOK, character)
}

func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CharacterFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	character, err := h.characterService.CreateCharacter(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "character.Create", "", err)
		return
	}

	writeJSON(w, http.StatusCreated, character)
}

func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.CharacterPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	character, err := h.characterService.UpdateCharacter(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, "character.Update", id, err)
		return
	}

	writeJSON(w, http.StatusOK, character)
}

func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.characterService.DeleteCharacter(r.Context(), id); err != nil {
		h.writeServiceError(w, "character.Delete", id, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Message: "Character deleted"})
}

func (h *CharacterHandler) writeServiceError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Character not found")
	default:
		log.Printf("ERROR [%s] characterID=%s: %v", op, id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
