package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorPayloadOmitsEmptyErrors(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, 404, "campaign with id 7 not found")

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var raw map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
	assert.Equal(t, "campaign with id 7 not found", raw["message"])
	assert.NotContains(t, raw, "errors")
}

func TestValidationFailedPayload(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationFailed(w, []string{"name is required", "channel must be SMS or EMAIL"})

	assert.Equal(t, 422, w.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "validation failed", body.Message)
	assert.Len(t, body.Errors, 2)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/campaigns/get", strings.NewReader(`{"campaign":1}`))

	var body struct {
		ID int `json:"id"`
	}
	err := Decode(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request body")
}

func TestDecodeReadsBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/campaigns/get", strings.NewReader(`{"id":7}`))

	var body struct {
		ID int `json:"id"`
	}
	require.NoError(t, Decode(req, &body))
	assert.Equal(t, 7, body.ID)
}
