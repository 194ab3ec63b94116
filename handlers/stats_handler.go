package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(ss *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// CreateStatsHandler обрабатывает POST /match-stats
func (h *StatsHandler) CreateStatsHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateStatsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.statsService.CreateStats(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "stats", stats)
}

// UpsertPlayerStatsHandler обрабатывает PUT /matches/{matchID}/stats/{playerID}
func (h *StatsHandler) UpsertPlayerStatsHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}
	playerID, ok := urlID(w, r, "playerID")
	if !ok {
		return
	}

	var input services.StatsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.statsService.UpsertPlayerStats(r.Context(), matchID, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "stats", stats)
}

func (h *StatsHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	statsID, ok := urlID(w, r, "statsID")
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(r.Context(), statsID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "stats", stats)
}

func (h *StatsHandler) PatchStatsHandler(w http.ResponseWriter, r *http.Request) {
	statsID, ok := urlID(w, r, "statsID")
	if !ok {
		return
	}

	var input services.StatsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.statsService.PatchStats(r.Context(), statsID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "stats", stats)
}

// ListStatsHandler обрабатывает GET /match-stats?match_id=
func (h *StatsHandler) ListStatsHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuidQuery(r, "match_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if matchID == nil {
		failedValidationResponse(w, r, map[string]string{"match_id": "must be provided"})
		return
	}
	h.listByMatch(w, r, *matchID)
}

// ListMatchStatsHandler обрабатывает GET /matches/{matchID}/stats
func (h *StatsHandler) ListMatchStatsHandler(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlID(w, r, "matchID")
	if !ok {
		return
	}
	h.listByMatch(w, r, matchID)
}

func (h *StatsHandler) listByMatch(w http.ResponseWriter, r *http.Request, matchID string) {
	stats, err := h.statsService.ListStatsByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "stats", stats)
}
