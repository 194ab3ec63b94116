package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/league-api/models"
)

type contextKey string

const principalContextKey contextKey = "principal"

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*models.Principal)
	return p, ok && p != nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
