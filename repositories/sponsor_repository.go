package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var (
	ErrInquiryNotFound    = errors.New("inquiry not found")
	ErrBrandAssetNotFound = errors.New("brand asset not found")
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id string) (*models.Inquiry, error)
	List(ctx context.Context, status *models.InquiryStatus) ([]*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error
}

type BrandAssetRepository interface {
	Create(ctx context.Context, asset *models.BrandAsset) error
	GetByID(ctx context.Context, id string) (*models.BrandAsset, error)
	ListBySponsor(ctx context.Context, sponsorID string) ([]*models.BrandAsset, error)
	Delete(ctx context.Context, id string) error
}

type postgresInquiryRepository struct {
	db *sql.DB
}

func NewPostgresInquiryRepository(db *sql.DB) InquiryRepository {
	return &postgresInquiryRepository{db: db}
}

const inquiryColumns = `id, type, company_name, contact_name, email, phone, message, status, created_at`

func scanInquiry(row rowScanner) (*models.Inquiry, error) {
	i := &models.Inquiry{}
	err := row.Scan(&i.ID, &i.Type, &i.CompanyName, &i.ContactName, &i.Email, &i.Phone, &i.Message, &i.Status, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *postgresInquiryRepository) Create(ctx context.Context, i *models.Inquiry) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	query := `
		INSERT INTO inquiries (id, type, company_name, contact_name, email, phone, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		i.ID, i.Type, i.CompanyName, i.ContactName, i.Email, i.Phone, i.Message, i.Status,
	).Scan(&i.CreatedAt)
}

func (r *postgresInquiryRepository) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	i, err := scanInquiry(r.db.QueryRowContext(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return i, nil
}

func (r *postgresInquiryRepository) List(ctx context.Context, status *models.InquiryStatus) ([]*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := make([]*models.Inquiry, 0)
	for rows.Next() {
		i, scanErr := scanInquiry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		inquiries = append(inquiries, i)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *postgresInquiryRepository) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrInquiryNotFound)
}

type postgresBrandAssetRepository struct {
	db *sql.DB
}

func NewPostgresBrandAssetRepository(db *sql.DB) BrandAssetRepository {
	return &postgresBrandAssetRepository{db: db}
}

const brandAssetColumns = `id, sponsor_id, name, type, url, created_at`

func scanBrandAsset(row rowScanner) (*models.BrandAsset, error) {
	a := &models.BrandAsset{}
	if err := row.Scan(&a.ID, &a.SponsorID, &a.Name, &a.Type, &a.URL, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresBrandAssetRepository) Create(ctx context.Context, a *models.BrandAsset) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `
		INSERT INTO brand_assets (id, sponsor_id, name, type, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query, a.ID, a.SponsorID, a.Name, a.Type, a.URL).Scan(&a.CreatedAt)
}

func (r *postgresBrandAssetRepository) GetByID(ctx context.Context, id string) (*models.BrandAsset, error) {
	a, err := scanBrandAsset(r.db.QueryRowContext(ctx, `SELECT `+brandAssetColumns+` FROM brand_assets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBrandAssetNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *postgresBrandAssetRepository) ListBySponsor(ctx context.Context, sponsorID string) ([]*models.BrandAsset, error) {
	query := `SELECT ` + brandAssetColumns + ` FROM brand_assets WHERE sponsor_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sponsorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]*models.BrandAsset, 0)
	for rows.Next() {
		a, scanErr := scanBrandAsset(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		assets = append(assets, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *postgresBrandAssetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brand_assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBrandAssetNotFound)
}
