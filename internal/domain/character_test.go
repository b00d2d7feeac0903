package domain_test

import (
	"errors"
	"testing"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCharacterFields_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  domain.CharacterFields
		field   string
		wantErr bool
	}{
		{
			name:   "name only",
			fields: domain.CharacterFields{Name: "Seiya"},
		},
		{
			name: "all fields",
			fields: domain.CharacterFields{
				Name:        "Shiryu",
				ZodiacSign:  "Libra",
				ImageURL:    "https://example.com/shiryu.png",
				Description: "Caballero de bronce de Dragón",
			},
		},
		{
			name:    "missing name",
			fields:  domain.CharacterFields{ZodiacSign: "Leo"},
			field:   "name",
			wantErr: true,
		},
		{
			name:    "blank name",
			fields:  domain.CharacterFields{Name: "   "},
			field:   "name",
			wantErr: true,
		},
		{
			name:    "relative image url",
			fields:  domain.CharacterFields{Name: "Hyoga", ImageURL: "/img/hyoga.png"},
			field:   "imageUrl",
			wantErr: true,
		},
		{
			name:    "non http image url",
			fields:  domain.CharacterFields{Name: "Hyoga", ImageURL: "ftp://example.com/hyoga.png"},
			field:   "imageUrl",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Equal(t, tt.field, verr.Field)
			}
		})
	}
}

func TestCharacterPatch_Apply(t *testing.T) {
	base := domain.Character{
		Name:        "Seiya",
		ZodiacSign:  "Sagitario",
		ImageURL:    "https://example.com/seiya.png",
		Description: "Pegaso",
	}

	tests := []struct {
		name  string
		patch domain.CharacterPatch
		want  domain.Character
	}{
		{
			name:  "empty patch keeps everything",
			patch: domain.CharacterPatch{},
			want:  base,
		},
		{
			name:  "single field",
			patch: domain.CharacterPatch{ZodiacSign: strPtr("Escorpio")},
			want: domain.Character{
				Name:        "Seiya",
				ZodiacSign:  "Escorpio",
				ImageURL:    "https://example.com/seiya.png",
				Description: "Pegaso",
			},
		},
		{
			name:  "empty optional text is not supplied",
			patch: domain.CharacterPatch{Description: strPtr(""), ImageURL: strPtr("")},
			want:  base,
		},
		{
			name:  "name replaced",
			patch: domain.CharacterPatch{Name: strPtr("Seiya de Pegaso")},
			want: domain.Character{
				Name:        "Seiya de Pegaso",
				ZodiacSign:  "Sagitario",
				ImageURL:    "https://example.com/seiya.png",
				Description: "Pegaso",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := tt.patch.Apply(base)
			twice := tt.patch.Apply(once)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, twice)
		})
	}

	t.Run("original untouched", func(t *testing.T) {
		c := base
		domain.CharacterPatch{Name: strPtr("Ikki")}.Apply(c)
		assert.Equal(t, "Seiya", c.Name)
	})
}

func TestCharacterPatch_IsEmpty(t *testing.T) {
	assert.True(t, domain.CharacterPatch{}.IsEmpty())
	assert.True(t, domain.CharacterPatch{ZodiacSign: strPtr("")}.IsEmpty())
	assert.False(t, domain.CharacterPatch{Name: strPtr("")}.IsEmpty())
	assert.False(t, domain.CharacterPatch{Description: strPtr("x")}.IsEmpty())
}

func TestCharacterFilter_Matches(t *testing.T) {
	leo := &domain.Character{Name: "Aiolia", ZodiacSign: "Leo"}
	virgo := &domain.Character{Name: "Shaka", ZodiacSign: "Virgo"}

	all := domain.CharacterFilter{}
	assert.True(t, all.IsEmpty())
	assert.True(t, all.Matches(leo))
	assert.True(t, all.Matches(virgo))

	byLeo := domain.CharacterFilter{ZodiacSign: "Leo"}
	assert.True(t, byLeo.Matches(leo))
	assert.False(t, byLeo.Matches(virgo))
	assert.False(t, domain.CharacterFilter{ZodiacSign: "leo"}.Matches(leo))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.StoreError("character.List", cause)

	assert.ErrorIs(t, err, domain.ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, domain.StoreError("noop", nil))
}
