package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/middleware"
	"github.com/Dosada05/league-api/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(us *services.UserService) *UserHandler {
	return &UserHandler{
		userService: us,
	}
}

// GetMe обрабатывает GET /auth/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), principal.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "user", user)
}
