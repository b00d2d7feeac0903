package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Character struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Seq         int64     `json:"-" gorm:"autoIncrement;not null;uniqueIndex"` // insertion order
	Name        string    `json:"name" gorm:"not null"`
	ZodiacSign  string    `json:"zodiacSign" gorm:"index"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CharacterFields is the full set of caller-supplied values for a new character.
type CharacterFields struct {
	Name        string `json:"name"`
	ZodiacSign  string `json:"zodiacSign"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// Validate reports the first field that would break a persisted-record invariant.
func (f CharacterFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if f.ImageURL != "" && !isHTTPURL(f.ImageURL) {
		return &ValidationError{Field: "imageUrl", Reason: "must be an absolute http(s) URL"}
	}
	return nil
}

// NewCharacter builds an unsaved character. The store assigns ID and Seq.
func (f CharacterFields) NewCharacter() *Character {
	return &Character{
		Name:        f.Name,
		ZodiacSign:  f.ZodiacSign,
		ImageURL:    f.ImageURL,
		Description: f.Description,
	}
}

// Fields returns the caller-editable part of c.
func (c *Character) Fields() CharacterFields {
	return CharacterFields{
		Name:        c.Name,
		ZodiacSign:  c.ZodiacSign,
		ImageURL:    c.ImageURL,
		Description: c.Description,
	}
}

// CharacterPatch is a sparse update. A nil field is not supplied; for the
// optional text fields an empty string counts as not supplied too.
type CharacterPatch struct {
	Name        *string `json:"name"`
	ZodiacSign  *string `json:"zodiacSign"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
}

// IsEmpty reports whether applying p would change nothing on any record.
func (p CharacterPatch) IsEmpty() bool {
	return p.Name == nil && !supplied(p.ZodiacSign) && !supplied(p.ImageURL) && !supplied(p.Description)
}

// Apply merges p onto c and returns the merged copy; c is left untouched.
func (p CharacterPatch) Apply(c Character) Character {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if supplied(p.ZodiacSign) {
		c.ZodiacSign = *p.ZodiacSign
	}
	if supplied(p.ImageURL) {
		c.ImageURL = *p.ImageURL
	}
	if supplied(p.Description) {
		c.Description = *p.Description
	}
	return c
}

func supplied(v *string) bool {
	return v != nil && *v != ""
}

// CharacterFilter narrows List results. The zero value matches everything.
type CharacterFilter struct {
	ZodiacSign string
}

func (f CharacterFilter) IsEmpty() bool {
	return f.ZodiacSign == ""
}

// Matches is exact string equality on the zodiac sign.
func (f CharacterFilter) Matches(c *Character) bool {
	return f.ZodiacSign == "" || c.ZodiacSign == f.ZodiacSign
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
