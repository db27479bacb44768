package webutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, handler AppHandler) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	MakeHandler(handler)(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestMakeHandler_HTTPError(t *testing.T) {
	rec, body := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
		return ErrNotFound("Invite not found")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Invite not found", body["error"])
}

func TestMakeHandler_ValidationError(t *testing.T) {
	rec, body := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
		return ErrValidation([]string{"name is required", "id must be exactly 10 characters"})
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Len(t, body["violations"], 2)
}

func TestMakeHandler_UnknownErrorIsInternal(t *testing.T) {
	rec, body := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("something leaked")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The raw error must not reach the client.
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestMakeHandler_SuccessWritesNothingExtra(t *testing.T) {
	rec, body := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
		RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
		return nil
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}
