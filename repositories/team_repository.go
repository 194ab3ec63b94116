package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamTournamentInvalid = errors.New("team references a missing tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Team, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) (int, error)
	Update(ctx context.Context, team *models.Team) error
	// AdjustRecord прибавляет дельты к счётчикам побед и поражений.
	AdjustRecord(ctx context.Context, exec SQLExecutor, id string, winsDelta, lossesDelta int) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, university, tournament_id, wins, losses, created_at`

func scanTeam(row rowScanner) (*models.Team, error) {
	t := &models.Team{}
	if err := row.Scan(&t.ID, &t.Name, &t.University, &t.TournamentID, &t.Wins, &t.Losses, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	query := `
		INSERT INTO teams (id, name, university, tournament_id, wins, losses)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		team.ID, team.Name, team.University, team.TournamentID, team.Wins, team.Losses,
	).Scan(&team.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrTeamTournamentInvalid
	}
	return err
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	team, err := scanTeam(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	return r.list(ctx, r.db, `SELECT `+teamColumns+` FROM teams ORDER BY created_at ASC, id ASC`)
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, getExecutor(r.db, exec), query, tournamentID)
}

func (r *postgresTeamRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) (int, error) {
	var count int
	err := getExecutor(r.db, exec).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET name = $1, university = $2 WHERE id = $3`,
		team.Name, team.University, team.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AdjustRecord(ctx context.Context, exec SQLExecutor, id string, winsDelta, lossesDelta int) error {
	query := `
		UPDATE teams
		SET wins = GREATEST(wins + $1, 0), losses = GREATEST(losses + $2, 0)
		WHERE id = $3`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, winsDelta, lossesDelta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
