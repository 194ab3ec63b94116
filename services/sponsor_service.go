package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

type CreateInquiryInput struct {
	Type        string  `json:"type"`
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Message     string  `json:"message"`
}

type UpdateInquiryInput struct {
	Status *models.InquiryStatus `json:"status"`
}

type CreateBrandAssetInput struct {
	SponsorID string `json:"sponsor_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
}

type SponsorService struct {
	inquiryRepo repositories.InquiryRepository
	assetRepo   repositories.BrandAssetRepository
	logger      *slog.Logger
}

func NewSponsorService(inquiryRepo repositories.InquiryRepository, assetRepo repositories.BrandAssetRepository, logger *slog.Logger) *SponsorService {
	return &SponsorService{inquiryRepo: inquiryRepo, assetRepo: assetRepo, logger: logger}
}

func (s *SponsorService) CreateInquiry(ctx context.Context, input CreateInquiryInput) (*models.Inquiry, error) {
	v := newValidator()
	v.check(notBlank(input.Type), "type", "must be provided")
	v.check(notBlank(input.CompanyName), "company_name", "must be provided")
	v.check(notBlank(input.ContactName), "contact_name", "must be provided")
	v.check(notBlank(input.Email) && validEmail(&input.Email), "email", "must be a valid email address")
	v.check(notBlank(input.Message), "message", "must be provided")
	if err := v.err(); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{
		Type:        input.Type,
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Message:     input.Message,
		Status:      models.InquiryStatusNew,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	s.logger.InfoContext(ctx, "sponsor inquiry received", slog.String("inquiry_id", inquiry.ID), slog.String("type", inquiry.Type))
	return inquiry, nil
}

func (s *SponsorService) GetInquiry(ctx context.Context, id string) (*models.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry %s: %w", id, err)
	}
	return inquiry, nil
}

func (s *SponsorService) ListInquiries(ctx context.Context, status *models.InquiryStatus) ([]*models.Inquiry, error) {
	if status != nil && !status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "must be one of new, contacted, closed"}}
	}
	inquiries, err := s.inquiryRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}

func (s *SponsorService) UpdateInquiryStatus(ctx context.Context, id string, input UpdateInquiryInput) (*models.Inquiry, error) {
	if input.Status == nil || !input.Status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "must be one of new, contacted, closed"}}
	}
	if err := s.inquiryRepo.UpdateStatus(ctx, id, *input.Status); err != nil {
		if errors.Is(err, repositories.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry %s: %w", id, err)
	}
	return s.GetInquiry(ctx, id)
}

func (s *SponsorService) CreateBrandAsset(ctx context.Context, input CreateBrandAssetInput) (*models.BrandAsset, error) {
	v := newValidator()
	v.check(notBlank(input.SponsorID), "sponsor_id", "must be provided")
	v.check(notBlank(input.Name), "name", "must be provided")
	v.check(notBlank(input.Type), "type", "must be provided")
	v.check(validURL(input.URL), "url", "must be an absolute http(s) URL")
	if err := v.err(); err != nil {
		return nil, err
	}

	asset := &models.BrandAsset{
		SponsorID: input.SponsorID,
		Name:      input.Name,
		Type:      input.Type,
		URL:       input.URL,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create brand asset: %w", err)
	}
	return asset, nil
}

func (s *SponsorService) GetBrandAsset(ctx context.Context, id string) (*models.BrandAsset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandAssetNotFound) {
			return nil, ErrBrandAssetNotFound
		}
		return nil, fmt.Errorf("failed to get brand asset %s: %w", id, err)
	}
	return asset, nil
}

// ListBrandAssets требует sponsorID: ассеты без спонсора не выдаются списком.
func (s *SponsorService) ListBrandAssets(ctx context.Context, sponsorID string) ([]*models.BrandAsset, error) {
	if !notBlank(sponsorID) {
		return nil, &ValidationError{Fields: map[string]string{"sponsor_id": "query parameter is required"}}
	}
	assets, err := s.assetRepo.ListBySponsor(ctx, sponsorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand assets: %w", err)
	}
	return assets, nil
}

func (s *SponsorService) DeleteBrandAsset(ctx context.Context, id string) error {
	if err := s.assetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrBrandAssetNotFound) {
			return ErrBrandAssetNotFound
		}
		return fmt.Errorf("failed to delete brand asset %s: %w", id, err)
	}
	return nil
}
