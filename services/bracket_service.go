package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/brackets"
	"github.com/Dosada05/league-api/live"
	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

type BracketResult struct {
	TournamentID string          `json:"tournament_id"`
	Matches      []*models.Match `json:"matches"`
	ByeTeamID    *string         `json:"bye_team_id,omitempty"`
}

type BracketService interface {
	GenerateBracket(ctx context.Context, tournamentID string) (*BracketResult, error)
	GetBracket(ctx context.Context, tournamentID string) ([]*models.Match, error)
}

type bracketService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      brackets.BracketGenerator
	hub            Broadcaster
	logger         *slog.Logger
}

func NewBracketService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.BracketGenerator,
	hub Broadcaster,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      generator,
		hub:            broadcasterOrNoop(hub),
		logger:         logger,
	}
}

// GenerateBracket создаёт матчи первого раунда. Проверка "матчи уже есть" и все
// вставки выполняются в одной транзакции под блокировкой строки турнира.
func (s *bracketService) GenerateBracket(ctx context.Context, tournamentID string) (*BracketResult, error) {
	result := &BracketResult{TournamentID: tournamentID}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.tournamentRepo.LockByID(ctx, exec, tournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to lock tournament %s: %w", tournamentID, err)
		}

		existing, err := s.matchRepo.CountByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to count matches: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: %d matches exist", ErrBracketExists, existing)
		}

		teams, err := s.teamRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}

		bracket, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
			TournamentID: tournamentID,
			Teams:        teams,
		})
		if err != nil {
			if errors.Is(err, brackets.ErrNotEnoughTeams) {
				return fmt.Errorf("%w: %d registered", ErrNotEnoughTeams, len(teams))
			}
			return fmt.Errorf("generator %s failed: %w", s.generator.GetName(), err)
		}

		result.Matches = make([]*models.Match, 0, len(bracket.Matches))
		for _, bm := range bracket.Matches {
			court := bm.CourtNumber
			match := &models.Match{
				TournamentID: tournamentID,
				Team1ID:      bm.Team1ID,
				Team2ID:      bm.Team2ID,
				Round:        bm.Round,
				Status:       models.MatchStatusScheduled,
				CourtNumber:  &court,
			}
			if err := s.matchRepo.Create(ctx, exec, match); err != nil {
				return fmt.Errorf("failed to create match %d of %s: %w", bm.OrderInRound, bm.Round, err)
			}
			result.Matches = append(result.Matches, match)
		}
		result.ByeTeamID = bracket.ByeTeamID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "bracket generated",
		slog.String("tournament_id", tournamentID),
		slog.Int("matches", len(result.Matches)),
		slog.String("bye_team_id", derefString(result.ByeTeamID)),
	)
	s.hub.BroadcastToRoom(tournamentID, live.EventBracketGenerated, result)
	return result, nil
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", tournamentID, err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
