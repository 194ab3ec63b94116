package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// GenerateHandler обрабатывает POST /tournaments/{tournamentID}/bracket
func (h *BracketHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}

	bracket, err := h.bracketService.GenerateBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "bracket", bracket)
}

// GetHandler обрабатывает GET /tournaments/{tournamentID}/bracket
func (h *BracketHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}

	matches, err := h.bracketService.GetBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "matches", matches)
}
