package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Product, error)
	List(ctx context.Context, category *string) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, name, description, price, category, image, in_stock, created_at`

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.InStock, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO products (id, name, description, price, category, image, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Image, p.InStock,
	).Scan(&p.CreatedAt)
}

func (r *postgresProductRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) List(ctx context.Context, category *string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []interface{}{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, image = $5, in_stock = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.Category, p.Image, p.InStock, p.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}
