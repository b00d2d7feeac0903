package client

import (
	"strings"

	"github.com/dom/zodiac-catalog/internal/domain"
)

// FilterCharacters returns the records whose name, description or zodiac
// sign contains query, ignoring case and surrounding space. A blank query
// returns every record. The result never aliases records.
func FilterCharacters(records []domain.Character, query string) []domain.Character {
	needle := strings.ToLower(strings.TrimSpace(query))

	view := make([]domain.Character, 0, len(records))
	for _, c := range records {
		if needle == "" || matches(c, needle) {
			view = append(view, c)
		}
	}
	return view
}

func matches(c domain.Character, needle string) bool {
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) ||
		strings.Contains(strings.ToLower(c.ZodiacSign), needle)
}
