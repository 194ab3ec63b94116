package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/league-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser map[string]*models.Principal

func (s stubParser) ParseToken(token string) (*models.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, errors.New("bad token")
}

func newProtected(roles ...models.UserRole) http.Handler {
	parser := stubParser{
		"organizer-token": {UserID: "u1", Role: models.RoleOrganizer},
		"player-token":    {UserID: "u2", Role: models.RolePlayer},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(p.UserID))
	})
	return Authenticate(parser, logger)(RequireRole(roles...)(final))
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	handler := newProtected(models.RoleOrganizer, models.RoleAdmin)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "role not allowed", header: "Bearer player-token", status: http.StatusForbidden},
		{name: "allowed", header: "Bearer organizer-token", status: http.StatusOK, body: "u1"},
		{name: "scheme is case insensitive", header: "bearer organizer-token", status: http.StatusOK, body: "u1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/tournaments", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
