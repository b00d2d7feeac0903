package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies a JSON error body with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var body struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, resp, &body)
	assert.Contains(t, body.Error, expectedMessage, "error message mismatch")
}

// AssertCharacterFields verifies the caller-editable part of a character
func AssertCharacterFields(t *testing.T, expected domain.CharacterFields, actual *domain.Character) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected, actual.Fields(), "character fields mismatch")
}

// AssertCharacterNames verifies list order by name
func AssertCharacterNames(t *testing.T, expected []string, characters []*domain.Character) {
	t.Helper()

	names := make([]string, len(characters))
	for i, c := range characters {
		names[i] = c.Name
	}
	assert.Equal(t, expected, names, "unexpected characters")
}
