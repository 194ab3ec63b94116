package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/league-api/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("get: %w", services.ErrMatchNotFound), http.StatusNotFound},
		{"court not found", services.ErrCourtNotFound, http.StatusNotFound},
		{"validation", &services.ValidationError{Fields: map[string]string{"name": "must be provided"}}, http.StatusBadRequest},
		{"tie at threshold", services.ErrTiedAtThreshold, http.StatusBadRequest},
		{"bad reference", services.ErrInvalidReference, http.StatusBadRequest},
		{"version conflict", services.ErrMatchVersionConflict, http.StatusConflict},
		{"completed", services.ErrMatchCompleted, http.StatusConflict},
		{"bracket exists", services.ErrBracketExists, http.StatusConflict},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", services.ErrForbiddenOperation, http.StatusForbidden},
		{"storage", services.ErrStorageDisabled, http.StatusServiceUnavailable},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestMapServiceErrorToHTTP_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestValidationErrorCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil),
		&services.ValidationError{Fields: map[string]string{"views": "must not be negative"}})

	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "must not be negative", body.Error["views"])
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Hoops"}`, ""},
		{"unknown field", `{"name":"Hoops","team1_id":"x"}`, "unknown or immutable key"},
		{"empty", ``, "must not be empty"},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
		{"wrong type", `{"name":5}`, "incorrect JSON type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := readJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Hoops", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/things/{thingID}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "thingID")
		if !ok {
			return
		}
		respond(w, r, http.StatusOK, "id", id)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/0B9C1E6A-3C4D-4E5F-8A7B-1C2D3E4F5A6B", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0b9c1e6a-3c4d-4e5f-8a7b-1c2d3e4f5a6b")
}
