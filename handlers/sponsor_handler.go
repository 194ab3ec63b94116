package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/services"
)

type SponsorHandler struct {
	sponsorService *services.SponsorService
}

func NewSponsorHandler(ss *services.SponsorService) *SponsorHandler {
	return &SponsorHandler{sponsorService: ss}
}

// CreateInquiryHandler обрабатывает публичный POST /inquiries
func (h *SponsorHandler) CreateInquiryHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateInquiryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	inquiry, err := h.sponsorService.CreateInquiry(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "inquiry", inquiry)
}

func (h *SponsorHandler) GetInquiryByIDHandler(w http.ResponseWriter, r *http.Request) {
	inquiryID, ok := urlID(w, r, "inquiryID")
	if !ok {
		return
	}

	inquiry, err := h.sponsorService.GetInquiry(r.Context(), inquiryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "inquiry", inquiry)
}

// ListInquiriesHandler обрабатывает GET /inquiries?status=
func (h *SponsorHandler) ListInquiriesHandler(w http.ResponseWriter, r *http.Request) {
	var status *models.InquiryStatus
	if raw := optionalQuery(r, "status"); raw != nil {
		s := models.InquiryStatus(*raw)
		if !s.Valid() {
			failedValidationResponse(w, r, map[string]string{"status": "unknown inquiry status"})
			return
		}
		status = &s
	}

	inquiries, err := h.sponsorService.ListInquiries(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "inquiries", inquiries)
}

func (h *SponsorHandler) UpdateInquiryHandler(w http.ResponseWriter, r *http.Request) {
	inquiryID, ok := urlID(w, r, "inquiryID")
	if !ok {
		return
	}

	var input services.UpdateInquiryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	inquiry, err := h.sponsorService.UpdateInquiryStatus(r.Context(), inquiryID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "inquiry", inquiry)
}

func (h *SponsorHandler) CreateBrandAssetHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBrandAssetInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	asset, err := h.sponsorService.CreateBrandAsset(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "brand_asset", asset)
}

func (h *SponsorHandler) GetBrandAssetByIDHandler(w http.ResponseWriter, r *http.Request) {
	assetID, ok := urlID(w, r, "assetID")
	if !ok {
		return
	}

	asset, err := h.sponsorService.GetBrandAsset(r.Context(), assetID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "brand_asset", asset)
}

// ListBrandAssetsHandler обрабатывает GET /brand-assets?sponsor_id= (параметр обязателен).
func (h *SponsorHandler) ListBrandAssetsHandler(w http.ResponseWriter, r *http.Request) {
	sponsorID := optionalQuery(r, "sponsor_id")
	if sponsorID == nil {
		failedValidationResponse(w, r, map[string]string{"sponsor_id": "must be provided"})
		return
	}

	assets, err := h.sponsorService.ListBrandAssets(r.Context(), *sponsorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "brand_assets", assets)
}

func (h *SponsorHandler) DeleteBrandAssetHandler(w http.ResponseWriter, r *http.Request) {
	assetID, ok := urlID(w, r, "assetID")
	if !ok {
		return
	}

	if err := h.sponsorService.DeleteBrandAsset(r.Context(), assetID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
