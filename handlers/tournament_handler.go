package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/services"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ts *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// CreateHandler обрабатывает POST /tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "tournament", tournament)
}

// GetByIDHandler обрабатывает GET /tournaments/{tournamentID}; ответ включает команды и матчи.
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "tournament", tournament)
}

// ListHandler обрабатывает GET /tournaments?status=&limit=&offset=
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListTournamentsFilter

	if status := optionalQuery(r, "status"); status != nil {
		s := models.TournamentStatus(*status)
		if !s.Valid() {
			failedValidationResponse(w, r, map[string]string{"status": "unknown tournament status"})
			return
		}
		filter.Status = &s
	}

	var err error
	if filter.Limit, err = intQuery(r, "limit", 0); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if filter.Offset, err = intQuery(r, "offset", 0); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "tournaments", tournaments)
}

// UpdateHandler обрабатывает PATCH /tournaments/{tournamentID}
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}

	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "tournament", tournament)
}

// DeleteHandler обрабатывает DELETE /tournaments/{tournamentID}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
