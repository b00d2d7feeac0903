// Package client consumes the character API: an HTTP client, a cached
// and locally filtered view of the collection, and a change watcher.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client. A nil httpClient gets a default
// with a 30 second timeout.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

type SeededCharacter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ZodiacSign string `json:"zodiacSign"`
}

type SeedResult struct {
	DeletedCount  int64             `json:"deletedCount"`
	InsertedCount int               `json:"insertedCount"`
	Characters    []SeededCharacter `json:"characters"`
}

type Health struct {
	Status          string  `json:"status"`
	Store           string  `json:"store"`
	CharactersCount int64   `json:"charactersCount"`
	Uptime          float64 `json:"uptime"`
	Timestamp       string  `json:"timestamp"`
}

// ListCharacters fetches the collection. A body that is not a JSON array of
// characters is treated as an empty result, not an error.
func (c *APIClient) ListCharacters(ctx context.Context, filter domain.CharacterFilter) ([]domain.Character, error) {
	path := "/characters"
	if !filter.IsEmpty() {
		path += "?" + url.Values{"zodiacSign": {filter.ZodiacSign}}.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return decodeCharacterList(body), nil
}

func decodeCharacterList(body []byte) []domain.Character {
	var characters []domain.Character
	if err := json.Unmarshal(body, &characters); err != nil || characters == nil {
		return []domain.Character{}
	}
	return characters
}

func (c *APIClient) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	var character domain.Character
	if err := c.doJSON(ctx, http.MethodGet, "/characters/"+url.PathEscape(id), nil, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (c *APIClient) CreateCharacter(ctx context.Context, fields domain.CharacterFields) (*domain.Character, error) {
	var character domain.Character
	if err := c.doJSON(ctx, http.MethodPost, "/characters", fields, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (c *APIClient) UpdateCharacter(ctx context.Context, id string, patch domain.CharacterPatch) (*domain.Character, error) {
	var character domain.Character
	if err := c.doJSON(ctx, http.MethodPut, "/characters/"+url.PathEscape(id), patch, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (c *APIClient) DeleteCharacter(ctx context.Context, id string) error {
	var ack struct {
		Message string `json:"message"`
	}
	return c.doJSON(ctx, http.MethodDelete, "/characters/"+url.PathEscape(id), nil, &ack)
}

// Seed asks a development server to reset its store.
func (c *APIClient) Seed(ctx context.Context) (*SeedResult, error) {
	var result SeedResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/seed", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// WebSocketURL returns the change-notification endpoint for this server.
func (c *APIClient) WebSocketURL() string {
	switch {
	case strings.HasPrefix(c.baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(c.baseURL, "https://") + "/ws"
	case strings.HasPrefix(c.baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(c.baseURL, "http://") + "/ws"
	default:
		return c.baseURL + "/ws"
	}
}

// HTTP helpers

func (c *APIClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	message := strings.TrimSpace(string(bodyBytes))

	var errBody struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(bodyBytes, &errBody) == nil && errBody.Error != "" {
		message = errBody.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &HTTPError{StatusCode: resp.StatusCode, Message: message}
}
