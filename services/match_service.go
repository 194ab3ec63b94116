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

type CreateMatchInput struct {
	TournamentID string  `json:"tournament_id"`
	Team1ID      string  `json:"team1_id"`
	Team2ID      string  `json:"team2_id"`
	Round        string  `json:"round"`
	CourtNumber  *string `json:"court_number"`
}

// UpdateMatchInput меняет только расписание матча; счёт идёт через UpdateScore.
type UpdateMatchInput struct {
	Round       *string `json:"round"`
	CourtNumber *string `json:"court_number"`
	Version     *int    `json:"version"`
}

// ScoreInput требует оба счёта: отсутствующее поле не считается нулём.
type ScoreInput struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
	Version    *int `json:"version"`
}

func (in ScoreInput) Validate() error {
	v := newValidator()
	v.check(in.Team1Score != nil, "team1_score", "must be provided")
	v.check(in.Team2Score != nil, "team2_score", "must be provided")
	return v.err()
}

// MVPInput с пустым PlayerID снимает MVP.
type MVPInput struct {
	PlayerID *string `json:"player_id"`
	Version  *int    `json:"version"`
}

type TeamBoxscore struct {
	TeamID         string               `json:"team_id"`
	Score          int                  `json:"score"`
	PlayerPoints   int                  `json:"player_points"`
	PointsMismatch bool                 `json:"points_mismatch"`
	Players        []*models.MatchStats `json:"players"`
}

type Boxscore struct {
	Match *models.Match `json:"match"`
	Team1 TeamBoxscore  `json:"team1"`
	Team2 TeamBoxscore  `json:"team2"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	ListMatchesByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error)
	UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error)
	UpdateScore(ctx context.Context, id string, input ScoreInput) (*models.Match, error)
	SetMVP(ctx context.Context, id string, input MVPInput) (*models.Match, error)
	ReopenMatch(ctx context.Context, id string) (*models.Match, error)
	GetBoxscore(ctx context.Context, id string) (*Boxscore, error)
	DeleteMatch(ctx context.Context, id string) error
}

type matchService struct {
	tx             repositories.Transactor
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	statsRepo      repositories.MatchStatsRepository
	tournamentRepo repositories.TournamentRepository
	hub            Broadcaster
	logger         *slog.Logger
}

func NewMatchService(
	tx repositories.Transactor,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	statsRepo repositories.MatchStatsRepository,
	tournamentRepo repositories.TournamentRepository,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		statsRepo:      statsRepo,
		tournamentRepo: tournamentRepo,
		hub:            broadcasterOrNoop(hub),
		logger:         logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	v := newValidator()
	v.check(notBlank(input.TournamentID), "tournament_id", "must be provided")
	v.check(notBlank(input.Team1ID), "team1_id", "must be provided")
	v.check(notBlank(input.Team2ID), "team2_id", "must be provided")
	v.check(notBlank(input.Round), "round", "must be provided")
	v.check(optionalNotBlank(input.CourtNumber), "court_number", "must not be empty")
	if err := v.err(); err != nil {
		return nil, err
	}
	if input.Team1ID == input.Team2ID {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrTeamsNotInTournament)
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Team1ID:      input.Team1ID,
		Team2ID:      input.Team2ID,
		Round:        input.Round,
		Status:       models.MatchStatusScheduled,
		CourtNumber:  input.CourtNumber,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.tournamentRepo.GetByID(ctx, exec, input.TournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to get tournament %s: %w", input.TournamentID, err)
		}
		for _, teamID := range []string{input.Team1ID, input.Team2ID} {
			team, err := s.teamRepo.GetByID(ctx, exec, teamID)
			if err != nil {
				if errors.Is(err, repositories.ErrTeamNotFound) {
					return fmt.Errorf("%w: team %s does not exist", ErrTeamsNotInTournament, teamID)
				}
				return fmt.Errorf("failed to get team %s: %w", teamID, err)
			}
			if team.TournamentID != input.TournamentID {
				return fmt.Errorf("%w: team %s is registered in another tournament", ErrTeamsNotInTournament, teamID)
			}
		}
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			return s.translateWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, match)
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, s.translateReadError(id, err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) ListMatchesByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error) {
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

func (s *matchService) UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error) {
	v := newValidator()
	v.check(input.Round == nil || notBlank(*input.Round), "round", "must not be empty")
	v.check(optionalNotBlank(input.CourtNumber), "court_number", "must not be empty")
	if err := v.err(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, input.Version, func(_ repositories.SQLExecutor, m *models.Match) error {
		if input.Round != nil {
			m.Round = *input.Round
		}
		if input.CourtNumber != nil {
			m.CourtNumber = input.CourtNumber
		}
		return nil
	})
}

// UpdateScore применяет счёт и, если матч завершился, записывает победу и поражение командам.
func (s *matchService) UpdateScore(ctx context.Context, id string, input ScoreInput) (*models.Match, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, input.Version, func(exec repositories.SQLExecutor, m *models.Match) error {
		change, err := ApplyScore(m, *input.Team1Score, *input.Team2Score)
		if err != nil {
			return err
		}
		return applyRecordChange(ctx, exec, s.teamRepo, change)
	})
}

func (s *matchService) SetMVP(ctx context.Context, id string, input MVPInput) (*models.Match, error) {
	return s.mutate(ctx, id, input.Version, func(exec repositories.SQLExecutor, m *models.Match) error {
		if input.PlayerID == nil || *input.PlayerID == "" {
			m.MVPID = nil
			return nil
		}
		player, err := s.playerRepo.GetByID(ctx, exec, *input.PlayerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to get player %s: %w", *input.PlayerID, err)
		}
		if !m.HasTeam(player.TeamID) {
			return fmt.Errorf("%w: player %s plays for team %s", ErrPlayerNotInMatch, player.ID, player.TeamID)
		}
		m.MVPID = &player.ID
		return nil
	})
}

// ReopenMatch возвращает завершённый матч в in-progress и откатывает счётчики команд.
func (s *matchService) ReopenMatch(ctx context.Context, id string) (*models.Match, error) {
	return s.mutate(ctx, id, nil, func(exec repositories.SQLExecutor, m *models.Match) error {
		change, err := Reopen(m)
		if err != nil {
			return err
		}
		return applyRecordChange(ctx, exec, s.teamRepo, change)
	})
}

// GetBoxscore суммирует очки игроков по командам. Расхождение со счётом команды
// только помечается: счёт команды остаётся источником истины.
func (s *matchService) GetBoxscore(ctx context.Context, id string) (*Boxscore, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsRepo.ListByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats of match %s: %w", id, err)
	}

	box := &Boxscore{
		Match: match,
		Team1: TeamBoxscore{TeamID: match.Team1ID, Score: match.Team1Score, Players: make([]*models.MatchStats, 0)},
		Team2: TeamBoxscore{TeamID: match.Team2ID, Score: match.Team2Score, Players: make([]*models.MatchStats, 0)},
	}
	for _, st := range stats {
		player, err := s.playerRepo.GetByID(ctx, nil, st.PlayerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", st.PlayerID, err)
		}
		switch player.TeamID {
		case match.Team1ID:
			box.Team1.PlayerPoints += st.Points
			box.Team1.Players = append(box.Team1.Players, st)
		case match.Team2ID:
			box.Team2.PlayerPoints += st.Points
			box.Team2.Players = append(box.Team2.Players, st)
		default:
			s.logger.WarnContext(ctx, "stats row for player outside match teams",
				slog.String("match_id", id), slog.String("player_id", st.PlayerID))
		}
	}
	box.Team1.PointsMismatch = box.Team1.PlayerPoints != box.Team1.Score
	box.Team2.PointsMismatch = box.Team2.PlayerPoints != box.Team2.Score
	return box, nil
}

// DeleteMatch отказывает для завершённых матчей: сначала reopen, чтобы откатить счётчики.
// Проверка статуса и удаление идут под блокировкой строки, чтобы не разойтись с UpdateScore.
func (s *matchService) DeleteMatch(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.LockByID(ctx, exec, id)
		if err != nil {
			return s.translateReadError(id, err)
		}
		if match.Status == models.MatchStatusCompleted {
			return ErrMatchCompleted
		}
		if err := s.matchRepo.Delete(ctx, exec, id); err != nil {
			return s.translateReadError(id, err)
		}
		return nil
	})
}

// mutate блокирует матч, проверяет версию, применяет fn и сохраняет результат в одной транзакции.
func (s *matchService) mutate(
	ctx context.Context,
	id string,
	expectedVersion *int,
	fn func(exec repositories.SQLExecutor, m *models.Match) error,
) (*models.Match, error) {
	var match *models.Match

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.LockByID(ctx, exec, id)
		if err != nil {
			return s.translateReadError(id, err)
		}
		if err := checkVersion(m, expectedVersion); err != nil {
			return err
		}
		if err := fn(exec, m); err != nil {
			return err
		}
		if err := s.matchRepo.Update(ctx, exec, m); err != nil {
			return s.translateWriteError(err)
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, match)
	return match, nil
}

func (s *matchService) publish(ctx context.Context, m *models.Match) {
	s.logger.DebugContext(ctx, "match updated",
		slog.String("match_id", m.ID),
		slog.String("status", string(m.Status)),
		slog.Int("version", m.Version),
	)
	s.hub.BroadcastToRoom(m.TournamentID, live.EventMatchUpdated, m)
}

func (s *matchService) translateReadError(id string, err error) error {
	if errors.Is(err, repositories.ErrMatchNotFound) {
		return ErrMatchNotFound
	}
	return fmt.Errorf("failed to load match %s: %w", id, err)
}

func (s *matchService) translateWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchVersionConflict):
		return ErrMatchVersionConflict
	case errors.Is(err, repositories.ErrMatchReferenceInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	case errors.Is(err, repositories.ErrMatchConstraint):
		return fmt.Errorf("%w: %v", ErrTeamsNotInTournament, err)
	default:
		return fmt.Errorf("failed to save match: %w", err)
	}
}
