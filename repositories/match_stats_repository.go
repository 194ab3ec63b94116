package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrMatchStatsNotFound         = errors.New("match stats not found")
	ErrMatchStatsReferenceInvalid = errors.New("match stats reference a missing match or player")
)

type MatchStatsRepository interface {
	// Upsert вставляет строку или перезаписывает значения существующей
	// строки с тем же (match_id, player_id). ID и UpdatedAt берутся из БД.
	Upsert(ctx context.Context, exec SQLExecutor, stats *models.MatchStats) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.MatchStats, error)
	GetByMatchAndPlayer(ctx context.Context, exec SQLExecutor, matchID, playerID string) (*models.MatchStats, error)
	ListByMatch(ctx context.Context, matchID string) ([]*models.MatchStats, error)
	Update(ctx context.Context, exec SQLExecutor, stats *models.MatchStats) error
}

type postgresMatchStatsRepository struct {
	db *sql.DB
}

func NewPostgresMatchStatsRepository(db *sql.DB) MatchStatsRepository {
	return &postgresMatchStatsRepository{db: db}
}

const matchStatsColumns = `id, match_id, player_id, points, assists, rebounds, updated_at`

func scanMatchStats(row rowScanner) (*models.MatchStats, error) {
	s := &models.MatchStats{}
	if err := row.Scan(&s.ID, &s.MatchID, &s.PlayerID, &s.Points, &s.Assists, &s.Rebounds, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresMatchStatsRepository) Upsert(ctx context.Context, exec SQLExecutor, s *models.MatchStats) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
		INSERT INTO match_stats (id, match_id, player_id, points, assists, rebounds)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (match_id, player_id) DO UPDATE SET
			points = EXCLUDED.points,
			assists = EXCLUDED.assists,
			rebounds = EXCLUDED.rebounds,
			updated_at = now()
		RETURNING id, updated_at`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		s.ID, s.MatchID, s.PlayerID, s.Points, s.Assists, s.Rebounds,
	).Scan(&s.ID, &s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrMatchStatsReferenceInvalid
	}
	return err
}

func (r *postgresMatchStatsRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.MatchStats, error) {
	query := `SELECT ` + matchStatsColumns + ` FROM match_stats WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, getExecutor(r.db, exec), query, id)
}

func (r *postgresMatchStatsRepository) GetByMatchAndPlayer(ctx context.Context, exec SQLExecutor, matchID, playerID string) (*models.MatchStats, error) {
	query := `SELECT ` + matchStatsColumns + ` FROM match_stats WHERE match_id = $1 AND player_id = $2 FOR UPDATE`
	return r.getOne(ctx, getExecutor(r.db, exec), query, matchID, playerID)
}

func (r *postgresMatchStatsRepository) getOne(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) (*models.MatchStats, error) {
	s, err := scanMatchStats(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchStatsNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresMatchStatsRepository) ListByMatch(ctx context.Context, matchID string) ([]*models.MatchStats, error) {
	query := `SELECT ` + matchStatsColumns + ` FROM match_stats WHERE match_id = $1 ORDER BY points DESC, player_id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*models.MatchStats, 0)
	for rows.Next() {
		s, scanErr := scanMatchStats(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		stats = append(stats, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *postgresMatchStatsRepository) Update(ctx context.Context, exec SQLExecutor, s *models.MatchStats) error {
	query := `
		UPDATE match_stats
		SET points = $1, assists = $2, rebounds = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query, s.Points, s.Assists, s.Rebounds, s.ID).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchStatsNotFound
	}
	return err
}
