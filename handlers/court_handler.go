package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/services"
)

const defaultVisibilityLogLimit = 30

type CourtHandler struct {
	courtService *services.CourtService
}

func NewCourtHandler(cs *services.CourtService) *CourtHandler {
	return &CourtHandler{courtService: cs}
}

func (h *CourtHandler) CreateCourtHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCourtInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.CreateCourt(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "court", court)
}

func (h *CourtHandler) GetCourtByIDHandler(w http.ResponseWriter, r *http.Request) {
	courtID, ok := urlID(w, r, "courtID")
	if !ok {
		return
	}

	court, err := h.courtService.GetCourt(r.Context(), courtID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "court", court)
}

// ListCourtsHandler обрабатывает GET /courts?city=
func (h *CourtHandler) ListCourtsHandler(w http.ResponseWriter, r *http.Request) {
	courts, err := h.courtService.ListCourts(r.Context(), optionalQuery(r, "city"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "courts", courts)
}

func (h *CourtHandler) UpdateCourtHandler(w http.ResponseWriter, r *http.Request) {
	courtID, ok := urlID(w, r, "courtID")
	if !ok {
		return
	}

	var input services.UpdateCourtInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.UpdateCourt(r.Context(), courtID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "court", court)
}

func (h *CourtHandler) DeleteCourtHandler(w http.ResponseWriter, r *http.Request) {
	courtID, ok := urlID(w, r, "courtID")
	if !ok {
		return
	}

	if err := h.courtService.DeleteCourt(r.Context(), courtID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVisibilityLogHandler обрабатывает POST /courts/{courtID}/visibility-logs
func (h *CourtHandler) AddVisibilityLogHandler(w http.ResponseWriter, r *http.Request) {
	courtID, ok := urlID(w, r, "courtID")
	if !ok {
		return
	}

	var input services.CreateVisibilityLogInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.courtService.AddVisibilityLog(r.Context(), courtID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "visibility_log", entry)
}

// ListVisibilityLogsHandler обрабатывает GET /courts/{courtID}/visibility-logs?limit=
func (h *CourtHandler) ListVisibilityLogsHandler(w http.ResponseWriter, r *http.Request) {
	courtID, ok := urlID(w, r, "courtID")
	if !ok {
		return
	}

	limit, err := intQuery(r, "limit", defaultVisibilityLogLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	logs, err := h.courtService.ListVisibilityLogs(r.Context(), courtID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "visibility_logs", logs)
}

// VisibilitySummaryHandler обрабатывает GET /courts/{courtID}/visibility
func (h *CourtHandler) VisibilitySummaryHandler(w http.ResponseWriter, r *http.Request) {
	courtID, ok := urlID(w, r, "courtID")
	if !ok {
		return
	}

	summary, err := h.courtService.GetVisibilitySummary(r.Context(), courtID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "visibility", summary)
}

// SponsorOverviewHandler обрабатывает GET /sponsors/overview
func (h *CourtHandler) SponsorOverviewHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := h.courtService.GetSponsorOverview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "overview", overview)
}
