package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/live"
	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

// StatsInput задаёт частичное обновление: nil-поля не меняются, у новой строки они равны нулю.
type StatsInput struct {
	Points   *int `json:"points"`
	Assists  *int `json:"assists"`
	Rebounds *int `json:"rebounds"`
}

type CreateStatsInput struct {
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	StatsInput
}

func (in StatsInput) validate() error {
	v := newValidator()
	v.check(nonNegative(in.Points), "points", "must not be negative")
	v.check(nonNegative(in.Assists), "assists", "must not be negative")
	v.check(nonNegative(in.Rebounds), "rebounds", "must not be negative")
	return v.err()
}

func (in StatsInput) applyTo(st *models.MatchStats) {
	if in.Points != nil {
		st.Points = *in.Points
	}
	if in.Assists != nil {
		st.Assists = *in.Assists
	}
	if in.Rebounds != nil {
		st.Rebounds = *in.Rebounds
	}
}

type StatsService struct {
	tx         repositories.Transactor
	statsRepo  repositories.MatchStatsRepository
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
	hub        Broadcaster
	logger     *slog.Logger
}

func NewStatsService(
	tx repositories.Transactor,
	statsRepo repositories.MatchStatsRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	hub Broadcaster,
	logger *slog.Logger,
) *StatsService {
	return &StatsService{
		tx:         tx,
		statsRepo:  statsRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		hub:        broadcasterOrNoop(hub),
		logger:     logger,
	}
}

// UpsertPlayerStats создаёт или дополняет единственную строку статистики игрока в матче.
func (s *StatsService) UpsertPlayerStats(ctx context.Context, matchID, playerID string, input StatsInput) (*models.MatchStats, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var (
		stats *models.MatchStats
		match *models.Match
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		match, err = s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to get match %s: %w", matchID, err)
		}
		player, err := s.playerRepo.GetByID(ctx, exec, playerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to get player %s: %w", playerID, err)
		}
		if !match.HasTeam(player.TeamID) {
			return fmt.Errorf("%w: player %s plays for team %s", ErrPlayerNotInMatch, playerID, player.TeamID)
		}

		stats, err = s.statsRepo.GetByMatchAndPlayer(ctx, exec, matchID, playerID)
		switch {
		case errors.Is(err, repositories.ErrMatchStatsNotFound):
			stats = &models.MatchStats{MatchID: matchID, PlayerID: playerID}
		case err != nil:
			return fmt.Errorf("failed to get stats: %w", err)
		}
		input.applyTo(stats)

		if err := s.statsRepo.Upsert(ctx, exec, stats); err != nil {
			if errors.Is(err, repositories.ErrMatchStatsReferenceInvalid) {
				return fmt.Errorf("%w: %v", ErrInvalidReference, err)
			}
			return fmt.Errorf("failed to upsert stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(match.TournamentID, live.EventMatchStatsUpdated, stats)
	return stats, nil
}

func (s *StatsService) CreateStats(ctx context.Context, input CreateStatsInput) (*models.MatchStats, error) {
	v := newValidator()
	v.check(notBlank(input.MatchID), "match_id", "must be provided")
	v.check(notBlank(input.PlayerID), "player_id", "must be provided")
	if err := v.err(); err != nil {
		return nil, err
	}
	return s.UpsertPlayerStats(ctx, input.MatchID, input.PlayerID, input.StatsInput)
}

// PatchStats обновляет строку по её id.
func (s *StatsService) PatchStats(ctx context.Context, id string, input StatsInput) (*models.MatchStats, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var (
		stats        *models.MatchStats
		tournamentID string
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		stats, err = s.statsRepo.GetByID(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchStatsNotFound) {
				return ErrMatchStatsNotFound
			}
			return fmt.Errorf("failed to get stats %s: %w", id, err)
		}
		input.applyTo(stats)
		if err := s.statsRepo.Update(ctx, exec, stats); err != nil {
			if errors.Is(err, repositories.ErrMatchStatsNotFound) {
				return ErrMatchStatsNotFound
			}
			return fmt.Errorf("failed to update stats %s: %w", id, err)
		}

		match, err := s.matchRepo.GetByID(ctx, exec, stats.MatchID)
		if err != nil {
			return fmt.Errorf("failed to get match %s: %w", stats.MatchID, err)
		}
		tournamentID = match.TournamentID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(tournamentID, live.EventMatchStatsUpdated, stats)
	return stats, nil
}

func (s *StatsService) GetStats(ctx context.Context, id string) (*models.MatchStats, error) {
	stats, err := s.statsRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchStatsNotFound) {
			return nil, ErrMatchStatsNotFound
		}
		return nil, fmt.Errorf("failed to get stats %s: %w", id, err)
	}
	return stats, nil
}

func (s *StatsService) ListStatsByMatch(ctx context.Context, matchID string) ([]*models.MatchStats, error) {
	if _, err := s.matchRepo.GetByID(ctx, nil, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	stats, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats of match %s: %w", matchID, err)
	}
	return stats, nil
}
