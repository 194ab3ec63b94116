package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

func (h *MatchHandler) CreateMatchHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "match", match)
}

func (h *MatchHandler) GetMatchByIDHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "match", match)
}

// ListMatchesHandler обрабатывает GET /matches; tournament_id необязателен
func (h *MatchHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidQuery(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if tournamentID != nil {
		h.listByTournament(w, r, *tournamentID)
		return
	}

	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, "matches", matches)
}

// ListTournamentMatchesHandler обрабатывает GET /tournaments/{tournamentID}/matches
func (h *MatchHandler) ListTournamentMatchesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}
	h.listByTournament(w, r, tournamentID)
}

func (h *MatchHandler) listByTournament(w http.ResponseWriter, r *http.Request, tournamentID string) {
	matches, err := h.matchService.ListMatchesByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "matches", matches)
}

func (h *MatchHandler) UpdateMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "match", match)
}

// UpdateScoreHandler обрабатывает PUT /matches/{matchID}/score
func (h *MatchHandler) UpdateScoreHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.Validate(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "match", match)
}

// SetMVPHandler обрабатывает PUT /matches/{matchID}/mvp; player_id: null снимает MVP.
func (h *MatchHandler) SetMVPHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	var input services.MVPInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.SetMVP(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "match", match)
}

// ReopenMatchHandler обрабатывает POST /matches/{matchID}/reopen
func (h *MatchHandler) ReopenMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	match, err := h.matchService.ReopenMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "match", match)
}

func (h *MatchHandler) BoxscoreHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	boxscore, err := h.matchService.GetBoxscore(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "boxscore", boxscore)
}

func (h *MatchHandler) DeleteMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
