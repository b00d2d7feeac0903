package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/seed"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CharacterBuilder creates test characters with a builder pattern
type CharacterBuilder struct {
	fields domain.CharacterFields
}

// NewCharacterBuilder creates a new CharacterBuilder with default values
func NewCharacterBuilder() *CharacterBuilder {
	return &CharacterBuilder{
		fields: domain.CharacterFields{
			Name:        fmt.Sprintf("character_%s", uuid.New().String()[:8]),
			ZodiacSign:  "Aries",
			ImageURL:    "https://example.com/character.jpg",
			Description: "Test character",
		},
	}
}

// WithName sets the name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.fields.Name = name
	return b
}

// WithZodiacSign sets the zodiac sign
func (b *CharacterBuilder) WithZodiacSign(sign string) *CharacterBuilder {
	b.fields.ZodiacSign = sign
	return b
}

// WithDescription sets the description
func (b *CharacterBuilder) WithDescription(description string) *CharacterBuilder {
	b.fields.Description = description
	return b
}

// Fields returns the values the builder would persist
func (b *CharacterBuilder) Fields() domain.CharacterFields {
	return b.fields
}

// Build inserts the character directly into the database
func (b *CharacterBuilder) Build(t *testing.T, db *gorm.DB) *domain.Character {
	t.Helper()

	character := b.fields.NewCharacter()
	character.ID = uuid.New()

	if err := db.Create(character).Error; err != nil {
		t.Fatalf("failed to create character: %v", err)
	}

	return character
}

// BuildWithServer creates the character through the test server's service layer
func (b *CharacterBuilder) BuildWithServer(t *testing.T, ts *TestServer) *domain.Character {
	t.Helper()

	character, err := ts.Services.Character.CreateCharacter(context.Background(), b.fields)
	if err != nil {
		t.Fatalf("failed to create character: %v", err)
	}
	return character
}

// SeedCharacters stores the canonical character set through the test server
func SeedCharacters(t *testing.T, ts *TestServer) []*domain.Character {
	t.Helper()

	result, err := ts.Services.Character.Seed(context.Background(), seed.Characters())
	if err != nil {
		t.Fatalf("failed to seed characters: %v", err)
	}
	return result.Inserted
}

// NewJSONRequest builds a request with body encoded as JSON
func NewJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return req
}

// Do sends req with the default client
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
