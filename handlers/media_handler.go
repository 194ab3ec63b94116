package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/league-api/services"
	"github.com/google/uuid"
)

const (
	maxUploadSize   = 100 << 20 // 100MB, видео
	multipartMemory = 32 << 20
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(ms *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: ms}
}

// CreateMediaHandler обрабатывает POST /media с внешним URL.
func (h *MediaHandler) CreateMediaHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMediaInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	media, err := h.mediaService.CreateMedia(r.Context(), principalUserID(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "media", media)
}

// UploadMediaHandler обрабатывает POST /media/upload (multipart, поле "file").
func (h *MediaHandler) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data not larger than 100MB"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	input := services.UploadMediaInput{
		Title:       r.FormValue("title"),
		ContentType: contentType,
		SponsorID:   formValue(r, "sponsor_id"),
		Tags:        formValue(r, "tags"),
		File:        file,
	}
	fields := map[string]string{}
	for name, dst := range map[string]**string{
		"tournament_id": &input.TournamentID,
		"team_id":       &input.TeamID,
	} {
		v := formValue(r, name)
		if v == nil {
			continue
		}
		if _, err := uuid.Parse(*v); err != nil {
			fields[name] = "must be a UUID"
			continue
		}
		*dst = v
	}
	if len(fields) > 0 {
		failedValidationResponse(w, r, fields)
		return
	}

	media, err := h.mediaService.UploadMedia(r.Context(), principalUserID(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "media", media)
}

func (h *MediaHandler) GetMediaByIDHandler(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := urlID(w, r, "mediaID")
	if !ok {
		return
	}

	media, err := h.mediaService.GetMedia(r.Context(), mediaID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "media", media)
}

// ListMediaHandler обрабатывает GET /media?tournament_id=
func (h *MediaHandler) ListMediaHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuidQuery(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	media, err := h.mediaService.ListMedia(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "media", media)
}

func (h *MediaHandler) DeleteMediaHandler(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := urlID(w, r, "mediaID")
	if !ok {
		return
	}

	if err := h.mediaService.DeleteMedia(r.Context(), mediaID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func formValue(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}
