package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

type CreateTeamInput struct {
	TournamentID string  `json:"tournament_id"`
	Name         string  `json:"name"`
	University   *string `json:"university"`
}

// UpdateTeamInput не содержит tournament_id: команда не переносится между турнирами.
type UpdateTeamInput struct {
	Name       *string `json:"name"`
	University *string `json:"university"`
}

type TeamService struct {
	tx             repositories.Transactor
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger
}

func NewTeamService(
	tx repositories.Transactor,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) *TeamService {
	return &TeamService{
		tx:             tx,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

// RegisterTeam добавляет команду в турнир. Турнир блокируется на время проверки вместимости.
func (s *TeamService) RegisterTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	v := newValidator()
	v.check(notBlank(input.TournamentID), "tournament_id", "must be provided")
	v.check(notBlank(input.Name), "name", "must be provided")
	v.check(optionalNotBlank(input.University), "university", "must not be empty")
	if err := v.err(); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:         input.Name,
		University:   input.University,
		TournamentID: input.TournamentID,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		tournament, err := s.tournamentRepo.LockByID(ctx, exec, input.TournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to lock tournament %s: %w", input.TournamentID, err)
		}
		if tournament.Status != models.TournamentStatusUpcoming {
			return fmt.Errorf("%w: tournament is %s", ErrRegistrationClosed, tournament.Status)
		}

		registered, err := s.teamRepo.CountByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to count teams: %w", err)
		}
		if registered >= tournament.MaxTeams {
			return fmt.Errorf("%w: %d of %d slots taken", ErrTournamentFull, registered, tournament.MaxTeams)
		}

		if err := s.teamRepo.Create(ctx, exec, team); err != nil {
			if errors.Is(err, repositories.ErrTeamTournamentInvalid) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to create team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team registered",
		slog.String("team_id", team.ID), slog.String("tournament_id", team.TournamentID))
	return team, nil
}

// GetTeam возвращает команду с составом.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) ListTeamsByTournament(ctx context.Context, tournamentID string) ([]*models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", tournamentID, err)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	v := newValidator()
	if input.Name != nil {
		v.check(notBlank(*input.Name), "name", "must not be empty")
		team.Name = *input.Name
	}
	if input.University != nil {
		v.check(notBlank(*input.University), "university", "must not be empty")
		team.University = input.University
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team %s: %w", id, err)
	}
	return team, nil
}

// DeleteTeam удаляет команду вместе с её матчами (каскад в БД). Победы и поражения
// соперников по завершённым матчам откатываются в той же транзакции.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	reverted := 0
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		team, err := s.teamRepo.GetByID(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team %s: %w", id, err)
		}

		matches, err := s.matchRepo.ListByTournament(ctx, exec, team.TournamentID)
		if err != nil {
			return fmt.Errorf("failed to list matches of tournament %s: %w", team.TournamentID, err)
		}
		for _, listed := range matches {
			if !listed.HasTeam(id) {
				continue
			}
			m, err := s.matchRepo.LockByID(ctx, exec, listed.ID)
			if err != nil {
				return fmt.Errorf("failed to lock match %s: %w", listed.ID, err)
			}
			if m.Status != models.MatchStatusCompleted {
				continue
			}
			change, err := Reopen(m)
			if err != nil {
				return err
			}
			if err := applyRecordChange(ctx, exec, s.teamRepo, change); err != nil {
				return err
			}
			reverted++
		}

		if err := s.teamRepo.Delete(ctx, exec, id); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to delete team %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "team deleted", slog.String("team_id", id), slog.Int("reverted_matches", reverted))
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return team, nil
}
