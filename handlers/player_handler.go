package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/services"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(ps *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

func (h *PlayerHandler) CreatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "player", player)
}

func (h *PlayerHandler) GetPlayerByIDHandler(w http.ResponseWriter, r *http.Request) {
	playerID, ok := urlID(w, r, "playerID")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "player", player)
}

// ListPlayersHandler обрабатывает GET /players; team_id необязателен
func (h *PlayerHandler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidQuery(r, "team_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if teamID != nil {
		h.listByTeam(w, r, *teamID)
		return
	}

	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, "players", players)
}

// ListTeamPlayersHandler обрабатывает GET /teams/{teamID}/players
func (h *PlayerHandler) ListTeamPlayersHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}
	h.listByTeam(w, r, teamID)
}

func (h *PlayerHandler) listByTeam(w http.ResponseWriter, r *http.Request, teamID string) {
	players, err := h.playerService.ListPlayersByTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "players", players)
}

func (h *PlayerHandler) UpdatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	playerID, ok := urlID(w, r, "playerID")
	if !ok {
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "player", player)
}

func (h *PlayerHandler) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	playerID, ok := urlID(w, r, "playerID")
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
