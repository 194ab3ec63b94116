package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchVersionConflict  = errors.New("match was modified concurrently")
	ErrMatchReferenceInvalid = errors.New("match references a missing tournament, team or player")
	ErrMatchConstraint       = errors.New("match violates a team or winner constraint")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	LockByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Match, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) (int, error)
	// Update записывает изменяемые поля, если версия в БД совпадает с match.Version,
	// и увеличивает версию. При несовпадении возвращает ErrMatchVersionConflict.
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, team1_id, team2_id, team1_score, team2_score, round, status,
	winner_id, mvp_id, court_number, version, created_at, updated_at`

func scanMatch(row rowScanner) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID, &m.Team1Score, &m.Team2Score, &m.Round, &m.Status,
		&m.WinnerID, &m.MVPID, &m.CourtNumber, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Version == 0 {
		m.Version = 1
	}
	query := `
		INSERT INTO matches
			(id, tournament_id, team1_id, team2_id, team1_score, team2_score, round, status, winner_id, mvp_id, court_number, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		m.ID, m.TournamentID, m.Team1ID, m.Team2ID, m.Team1Score, m.Team2Score,
		m.Round, m.Status, m.WinnerID, m.MVPID, m.CourtNumber, m.Version,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	return r.getOne(ctx, getExecutor(r.db, exec), `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
}

func (r *postgresMatchRepository) LockByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	return r.getOne(ctx, getExecutor(r.db, exec), `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresMatchRepository) getOne(ctx context.Context, executor SQLExecutor, query, id string) (*models.Match, error) {
	m, err := scanMatch(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY created_at DESC, id ASC`
	return r.list(ctx, r.db, query)
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1 ORDER BY round ASC, court_number ASC NULLS LAST, created_at ASC`
	return r.list(ctx, getExecutor(r.db, exec), query, tournamentID)
}

func (r *postgresMatchRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) (int, error) {
	var count int
	err := getExecutor(r.db, exec).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		UPDATE matches SET
			team1_score = $1,
			team2_score = $2,
			round = $3,
			status = $4,
			winner_id = $5,
			mvp_id = $6,
			court_number = $7,
			version = version + 1,
			updated_at = now()
		WHERE id = $8 AND version = $9
		RETURNING version, updated_at`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		m.Team1Score, m.Team2Score, m.Round, m.Status, m.WinnerID, m.MVPID, m.CourtNumber,
		m.ID, m.Version,
	).Scan(&m.Version, &m.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchVersionConflict
	}
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return ErrMatchReferenceInvalid
	case isCheckViolation(err):
		return ErrMatchConstraint
	default:
		return err
	}
}
