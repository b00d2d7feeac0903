package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/dom/zodiac-catalog/internal/service"
)

type HealthHandler struct {
	characterService *service.CharacterService
	backend          string
	version          string
	startedAt        time.Time
}

func NewHealthHandler(characterService *service.CharacterService, backend, version string) *HealthHandler {
	return &HealthHandler{
		characterService: characterService,
		backend:          backend,
		version:          version,
		startedAt:        time.Now(),
	}
}

type BannerResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
	Timestamp string            `json:"timestamp"`
}

type HealthResponse struct {
	Status          string  `json:"status"`
	Service         string  `json:"service"`
	Store           string  `json:"store"`
	Database        string  `json:"database"`
	CharactersCount int64   `json:"charactersCount"`
	Uptime          float64 `json:"uptime"`
	Timestamp       string  `json:"timestamp"`
}

type HealthErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BannerResponse{
		Message: "Zodiac Characters API",
		Version: h.version,
		Status:  "active",
		Endpoints: map[string]string{
			"listCharacters":  "GET /characters",
			"getCharacter":    "GET /characters/{id}",
			"createCharacter": "POST /characters",
			"updateCharacter": "PUT /characters/{id}",
			"deleteCharacter": "DELETE /characters/{id}",
			"filterBySign":    "GET /characters?zodiacSign=Leo",
			"health":          "GET /api/health",
			"seed":            "POST /api/seed",
			"events":          "GET /ws",
			"metrics":         "GET /metrics",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.characterService.Health(r.Context())
	if err != nil {
		log.Printf("ERROR [health.Health]: %v", err)
		writeJSON(w, http.StatusInternalServerError, HealthErrorResponse{
			Status: "ERROR",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:          "OK",
		Service:         "Characters Service",
		Store:           h.backend,
		Database:        "Connected",
		CharactersCount: status.CharactersCount,
		Uptime:          time.Since(h.startedAt).Seconds(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	})
}
