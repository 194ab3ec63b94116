package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrMediaNotFound         = errors.New("media not found")
	ErrMediaReferenceInvalid = errors.New("media references a missing tournament or team")
)

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context, tournamentID *string) ([]*models.Media, error)
	Delete(ctx context.Context, id string) error
}

type postgresMediaRepository struct {
	db *sql.DB
}

func NewPostgresMediaRepository(db *sql.DB) MediaRepository {
	return &postgresMediaRepository{db: db}
}

const mediaColumns = `id, title, type, url, thumbnail_url, tournament_id, team_id, sponsor_id, tags, uploaded_by, storage_key, created_at`

func scanMedia(row rowScanner) (*models.Media, error) {
	m := &models.Media{}
	err := row.Scan(
		&m.ID, &m.Title, &m.Type, &m.URL, &m.ThumbnailURL, &m.TournamentID, &m.TeamID,
		&m.SponsorID, &m.Tags, &m.UploadedBy, &m.StorageKey, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMediaRepository) Create(ctx context.Context, m *models.Media) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	query := `
		INSERT INTO media
			(id, title, type, url, thumbnail_url, tournament_id, team_id, sponsor_id, tags, uploaded_by, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.ID, m.Title, m.Type, m.URL, m.ThumbnailURL, m.TournamentID, m.TeamID,
		m.SponsorID, m.Tags, m.UploadedBy, m.StorageKey,
	).Scan(&m.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrMediaReferenceInvalid
	}
	return err
}

func (r *postgresMediaRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	m, err := scanMedia(r.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMediaRepository) List(ctx context.Context, tournamentID *string) ([]*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media`
	args := []interface{}{}
	if tournamentID != nil {
		query += ` WHERE tournament_id = $1`
		args = append(args, *tournamentID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Media, 0)
	for rows.Next() {
		m, scanErr := scanMedia(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresMediaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMediaNotFound)
}
