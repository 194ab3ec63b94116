package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

type CreateTournamentInput struct {
	Name     string                  `json:"name"`
	Location string                  `json:"location"`
	Date     string                  `json:"date"`
	Format   models.TournamentFormat `json:"format"`
	MaxTeams *int                    `json:"max_teams"`
}

type UpdateTournamentInput struct {
	Name     *string                  `json:"name"`
	Location *string                  `json:"location"`
	Date     *string                  `json:"date"`
	Format   *models.TournamentFormat `json:"format"`
	Status   *models.TournamentStatus `json:"status"`
	MaxTeams *int                     `json:"max_teams"`
}

type TournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	v := newValidator()
	v.check(notBlank(input.Name), "name", "must be provided")
	v.check(notBlank(input.Location), "location", "must be provided")
	date := parseDate("date", input.Date, v)
	v.check(input.Format.Valid(), "format", "must be one of single-elimination, double-elimination, round-robin, pool-play")
	maxTeams := models.DefaultMaxTeams
	if input.MaxTeams != nil {
		maxTeams = *input.MaxTeams
	}
	v.check(maxTeams >= 2, "max_teams", "must be at least 2")
	if err := v.err(); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:     input.Name,
		Location: input.Location,
		Date:     date,
		Format:   input.Format,
		Status:   models.TournamentStatusUpcoming,
		MaxTeams: maxTeams,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created", slog.String("tournament_id", tournament.ID))
	return tournament, nil
}

// GetTournament возвращает турнир вместе с командами и матчами.
func (s *TournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of tournament %s: %w", id, err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of tournament %s: %w", id, err)
	}

	tournament.Teams = make([]models.Team, 0, len(teams))
	for _, t := range teams {
		tournament.Teams = append(tournament.Teams, *t)
	}
	tournament.Matches = make([]models.Match, 0, len(matches))
	for _, m := range matches {
		tournament.Matches = append(tournament.Matches, *m)
	}
	return tournament, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "unknown tournament status"}}
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, &ValidationError{Fields: map[string]string{"limit": "limit and offset must not be negative"}}
	}
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *TournamentService) UpdateTournament(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	v := newValidator()
	if input.Name != nil {
		v.check(notBlank(*input.Name), "name", "must not be empty")
		tournament.Name = *input.Name
	}
	if input.Location != nil {
		v.check(notBlank(*input.Location), "location", "must not be empty")
		tournament.Location = *input.Location
	}
	if input.Date != nil {
		tournament.Date = parseDate("date", *input.Date, v)
	}
	if input.Format != nil {
		v.check(input.Format.Valid(), "format", "unknown tournament format")
		tournament.Format = *input.Format
	}
	if input.MaxTeams != nil {
		v.check(*input.MaxTeams >= 2, "max_teams", "must be at least 2")
		tournament.MaxTeams = *input.MaxTeams
	}
	if input.Status != nil {
		v.check(input.Status.Valid(), "status", "unknown tournament status")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !isValidStatusTransition(tournament.Status, *input.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, tournament.Status, *input.Status)
		}
		tournament.Status = *input.Status
	}

	if input.MaxTeams != nil {
		registered, err := s.teamRepo.CountByTournament(ctx, nil, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count teams of tournament %s: %w", id, err)
		}
		if registered > tournament.MaxTeams {
			return nil, &ValidationError{Fields: map[string]string{
				"max_teams": fmt.Sprintf("must not be lower than the %d teams already registered", registered),
			}}
		}
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %s: %w", id, err)
	}
	return tournament, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id))
	return nil
}

func (s *TournamentService) getTournament(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return tournament, nil
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.TournamentStatusUpcoming:   {models.TournamentStatusInProgress},
		models.TournamentStatusInProgress: {models.TournamentStatusCompleted},
		models.TournamentStatusCompleted:  {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}
