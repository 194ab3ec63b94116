package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(ts *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// CreateTeamHandler обрабатывает POST /teams: регистрация команды в турнире.
func (h *TeamHandler) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.RegisterTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "team", team)
}

func (h *TeamHandler) GetTeamByIDHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "team", team)
}

// ListTeamsHandler обрабатывает GET /teams; tournament_id необязателен
func (h *TeamHandler) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidQuery(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if tournamentID != nil {
		h.listByTournament(w, r, *tournamentID)
		return
	}

	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, "teams", teams)
}

// ListTournamentTeamsHandler обрабатывает GET /tournaments/{tournamentID}/teams
func (h *TeamHandler) ListTournamentTeamsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}
	h.listByTournament(w, r, tournamentID)
}

func (h *TeamHandler) listByTournament(w http.ResponseWriter, r *http.Request, tournamentID string) {
	teams, err := h.teamService.ListTeamsByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "teams", teams)
}

func (h *TeamHandler) UpdateTeamHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "team", team)
}

func (h *TeamHandler) DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
