package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player references a missing team")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, email, team_id, jersey_number, position, created_at`

func scanPlayer(row rowScanner) (*models.Player, error) {
	p := &models.Player{}
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.TeamID, &p.JerseyNumber, &p.Position, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO players (id, name, email, team_id, jersey_number, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Email, p.TeamID, p.JerseyNumber, p.Position,
	).Scan(&p.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrPlayerTeamInvalid
	}
	return err
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p, err := scanPlayer(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	return r.list(ctx, `SELECT `+playerColumns+` FROM players ORDER BY name ASC, id ASC`)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY jersey_number ASC NULLS LAST, name ASC`
	return r.list(ctx, query, teamID)
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players
		SET name = $1, email = $2, jersey_number = $3, position = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Email, p.JerseyNumber, p.Position, p.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
