package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrCourtNotFound             = errors.New("court not found")
	ErrVisibilityLogDateConflict = errors.New("visibility log already recorded for this court and date")
	ErrVisibilityLogCourtInvalid = errors.New("visibility log references a missing court")
)

type CourtRepository interface {
	Create(ctx context.Context, court *models.Court) error
	GetByID(ctx context.Context, id string) (*models.Court, error)
	List(ctx context.Context, city *string) ([]*models.Court, error)
	Update(ctx context.Context, court *models.Court) error
	Delete(ctx context.Context, id string) error
}

// VisibilityLogRepository хранит дневные логи просмотров; записи только добавляются.
type VisibilityLogRepository interface {
	Create(ctx context.Context, log *models.CourtVisibilityLog) error
	// ListByCourt возвращает логи площадки от новых к старым; при limit <= 0 без ограничения.
	ListByCourt(ctx context.Context, courtID string, limit int) ([]*models.CourtVisibilityLog, error)
}

type postgresCourtRepository struct {
	db *sql.DB
}

func NewPostgresCourtRepository(db *sql.DB) CourtRepository {
	return &postgresCourtRepository{db: db}
}

const courtColumns = `id, name, location, university, city, latitude, longitude, availability, contact_info, sponsor_visibility, created_at`

func scanCourt(row rowScanner) (*models.Court, error) {
	c := &models.Court{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Location, &c.University, &c.City, &c.Latitude, &c.Longitude,
		&c.Availability, &c.ContactInfo, &c.SponsorVisibility, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresCourtRepository) Create(ctx context.Context, c *models.Court) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `
		INSERT INTO courts
			(id, name, location, university, city, latitude, longitude, availability, contact_info, sponsor_visibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Location, c.University, c.City, c.Latitude, c.Longitude,
		c.Availability, c.ContactInfo, c.SponsorVisibility,
	).Scan(&c.CreatedAt)
}

func (r *postgresCourtRepository) GetByID(ctx context.Context, id string) (*models.Court, error) {
	c, err := scanCourt(r.db.QueryRowContext(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCourtRepository) List(ctx context.Context, city *string) ([]*models.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts`
	args := []interface{}{}
	if city != nil {
		query += ` WHERE city = $1`
		args = append(args, *city)
	}
	query += ` ORDER BY sponsor_visibility DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := make([]*models.Court, 0)
	for rows.Next() {
		c, scanErr := scanCourt(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		courts = append(courts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *postgresCourtRepository) Update(ctx context.Context, c *models.Court) error {
	query := `
		UPDATE courts SET
			name = $1,
			location = $2,
			university = $3,
			city = $4,
			latitude = $5,
			longitude = $6,
			availability = $7,
			contact_info = $8,
			sponsor_visibility = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Location, c.University, c.City, c.Latitude, c.Longitude,
		c.Availability, c.ContactInfo, c.SponsorVisibility, c.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCourtNotFound)
}

func (r *postgresCourtRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCourtNotFound)
}

type postgresVisibilityLogRepository struct {
	db *sql.DB
}

func NewPostgresVisibilityLogRepository(db *sql.DB) VisibilityLogRepository {
	return &postgresVisibilityLogRepository{db: db}
}

func (r *postgresVisibilityLogRepository) Create(ctx context.Context, l *models.CourtVisibilityLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `
		INSERT INTO court_visibility_logs (id, court_id, date, views, unique_visitors)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, l.ID, l.CourtID, l.Date, l.Views, l.UniqueVisitors).Scan(&l.CreatedAt)
	switch {
	case isUniqueViolation(err):
		return ErrVisibilityLogDateConflict
	case isForeignKeyViolation(err):
		return ErrVisibilityLogCourtInvalid
	}
	return err
}

func (r *postgresVisibilityLogRepository) ListByCourt(ctx context.Context, courtID string, limit int) ([]*models.CourtVisibilityLog, error) {
	query := `
		SELECT id, court_id, date, views, unique_visitors, created_at
		FROM court_visibility_logs
		WHERE court_id = $1
		ORDER BY date DESC`
	args := []interface{}{courtID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*models.CourtVisibilityLog, 0)
	for rows.Next() {
		var l models.CourtVisibilityLog
		if scanErr := rows.Scan(&l.ID, &l.CourtID, &l.Date, &l.Views, &l.UniqueVisitors, &l.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		logs = append(logs, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
