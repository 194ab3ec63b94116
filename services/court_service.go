package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/analytics"
	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"golang.org/x/sync/errgroup"
)

// overviewConcurrency ограничивает число параллельных запросов логов.
const overviewConcurrency = 4

type CreateCourtInput struct {
	Name              string                    `json:"name"`
	Location          string                    `json:"location"`
	University        *string                   `json:"university"`
	City              string                    `json:"city"`
	Latitude          *float64                  `json:"latitude"`
	Longitude         *float64                  `json:"longitude"`
	Availability      *models.CourtAvailability `json:"availability"`
	ContactInfo       *string                   `json:"contact_info"`
	SponsorVisibility *int                      `json:"sponsor_visibility"`
}

type UpdateCourtInput struct {
	Name              *string                   `json:"name"`
	Location          *string                   `json:"location"`
	University        *string                   `json:"university"`
	City              *string                   `json:"city"`
	Latitude          *float64                  `json:"latitude"`
	Longitude         *float64                  `json:"longitude"`
	Availability      *models.CourtAvailability `json:"availability"`
	ContactInfo       *string                   `json:"contact_info"`
	SponsorVisibility *int                      `json:"sponsor_visibility"`
}

type CreateVisibilityLogInput struct {
	Date           string `json:"date"`
	Views          int    `json:"views"`
	UniqueVisitors int    `json:"unique_visitors"`
}

type CourtService struct {
	courtRepo repositories.CourtRepository
	logRepo   repositories.VisibilityLogRepository
	logger    *slog.Logger
}

func NewCourtService(courtRepo repositories.CourtRepository, logRepo repositories.VisibilityLogRepository, logger *slog.Logger) *CourtService {
	return &CourtService{courtRepo: courtRepo, logRepo: logRepo, logger: logger}
}

func validAvailability(a *models.CourtAvailability) bool {
	return a == nil || *a == models.CourtAvailable || *a == models.CourtBooked
}

func validCoordinates(v *validator, lat, lng *float64) {
	v.check(lat == nil || (*lat >= -90 && *lat <= 90), "latitude", "must be between -90 and 90")
	v.check(lng == nil || (*lng >= -180 && *lng <= 180), "longitude", "must be between -180 and 180")
}

func (s *CourtService) CreateCourt(ctx context.Context, input CreateCourtInput) (*models.Court, error) {
	v := newValidator()
	v.check(notBlank(input.Name), "name", "must be provided")
	v.check(notBlank(input.Location), "location", "must be provided")
	v.check(notBlank(input.City), "city", "must be provided")
	v.check(validAvailability(input.Availability), "availability", "must be available or booked")
	v.check(nonNegative(input.SponsorVisibility), "sponsor_visibility", "must not be negative")
	validCoordinates(v, input.Latitude, input.Longitude)
	if err := v.err(); err != nil {
		return nil, err
	}

	court := &models.Court{
		Name:         input.Name,
		Location:     input.Location,
		University:   input.University,
		City:         input.City,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Availability: models.CourtAvailable,
		ContactInfo:  input.ContactInfo,
	}
	if input.Availability != nil {
		court.Availability = *input.Availability
	}
	if input.SponsorVisibility != nil {
		court.SponsorVisibility = *input.SponsorVisibility
	}

	if err := s.courtRepo.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}
	return court, nil
}

func (s *CourtService) GetCourt(ctx context.Context, id string) (*models.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to get court %s: %w", id, err)
	}
	return court, nil
}

func (s *CourtService) ListCourts(ctx context.Context, city *string) ([]*models.Court, error) {
	courts, err := s.courtRepo.List(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return courts, nil
}

func (s *CourtService) UpdateCourt(ctx context.Context, id string, input UpdateCourtInput) (*models.Court, error) {
	court, err := s.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}

	v := newValidator()
	if input.Name != nil {
		v.check(notBlank(*input.Name), "name", "must not be empty")
		court.Name = *input.Name
	}
	if input.Location != nil {
		v.check(notBlank(*input.Location), "location", "must not be empty")
		court.Location = *input.Location
	}
	if input.City != nil {
		v.check(notBlank(*input.City), "city", "must not be empty")
		court.City = *input.City
	}
	if input.University != nil {
		court.University = input.University
	}
	if input.ContactInfo != nil {
		court.ContactInfo = input.ContactInfo
	}
	if input.Latitude != nil {
		court.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		court.Longitude = input.Longitude
	}
	validCoordinates(v, court.Latitude, court.Longitude)
	if input.Availability != nil {
		v.check(validAvailability(input.Availability), "availability", "must be available or booked")
		court.Availability = *input.Availability
	}
	if input.SponsorVisibility != nil {
		v.check(nonNegative(input.SponsorVisibility), "sponsor_visibility", "must not be negative")
		court.SponsorVisibility = *input.SponsorVisibility
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.courtRepo.Update(ctx, court); err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to update court %s: %w", id, err)
	}
	return court, nil
}

func (s *CourtService) DeleteCourt(ctx context.Context, id string) error {
	if err := s.courtRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return ErrCourtNotFound
		}
		return fmt.Errorf("failed to delete court %s: %w", id, err)
	}
	return nil
}

// AddVisibilityLog добавляет дневную запись. Записи не изменяются, повтор даты даёт конфликт.
func (s *CourtService) AddVisibilityLog(ctx context.Context, courtID string, input CreateVisibilityLogInput) (*models.CourtVisibilityLog, error) {
	v := newValidator()
	date := parseDate("date", input.Date, v)
	v.check(input.Views >= 0, "views", "must not be negative")
	v.check(input.UniqueVisitors >= 0, "unique_visitors", "must not be negative")
	v.check(input.UniqueVisitors <= input.Views, "unique_visitors", "must not exceed views")
	if err := v.err(); err != nil {
		return nil, err
	}

	entry := &models.CourtVisibilityLog{
		CourtID:        courtID,
		Date:           date,
		Views:          input.Views,
		UniqueVisitors: input.UniqueVisitors,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		switch {
		case errors.Is(err, repositories.ErrVisibilityLogCourtInvalid):
			return nil, ErrCourtNotFound
		case errors.Is(err, repositories.ErrVisibilityLogDateConflict):
			return nil, fmt.Errorf("%w: %s", ErrVisibilityLogExists, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to create visibility log: %w", err)
	}
	return entry, nil
}

func (s *CourtService) ListVisibilityLogs(ctx context.Context, courtID string, limit int) ([]*models.CourtVisibilityLog, error) {
	if _, err := s.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, &ValidationError{Fields: map[string]string{"limit": "must not be negative"}}
	}
	logs, err := s.logRepo.ListByCourt(ctx, courtID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visibility logs of court %s: %w", courtID, err)
	}
	return logs, nil
}

func (s *CourtService) GetVisibilitySummary(ctx context.Context, courtID string) (*analytics.VisibilitySummary, error) {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByCourt(ctx, courtID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list visibility logs of court %s: %w", courtID, err)
	}
	summary := analytics.Summarize(court, logs)
	return &summary, nil
}

// GetSponsorOverview считает сводки по всем площадкам параллельно.
func (s *CourtService) GetSponsorOverview(ctx context.Context) (*analytics.SponsorOverview, error) {
	courts, err := s.courtRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}

	summaries := make([]analytics.VisibilitySummary, len(courts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for i, court := range courts {
		g.Go(func() error {
			logs, err := s.logRepo.ListByCourt(gctx, court.ID, 0)
			if err != nil {
				return fmt.Errorf("failed to list visibility logs of court %s: %w", court.ID, err)
			}
			summaries[i] = analytics.Summarize(court, logs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logServiceError(ctx, s.logger, "sponsor overview failed", err)
		return nil, err
	}

	overview := analytics.Overview(summaries)
	return &overview, nil
}
