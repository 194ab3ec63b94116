package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/league-api/models"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, exec SQLExecutor, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, userID *string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

const orderColumns = `id, user_id, items, total, status, created_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	var rawItems []byte
	if err := row.Scan(&o.ID, &o.UserID, &rawItems, &o.Total, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawItems, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items of order %s: %w", o.ID, err)
	}
	return o, nil
}

func (r *postgresOrderRepository) Create(ctx context.Context, exec SQLExecutor, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, user_id, items, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return getExecutor(r.db, exec).QueryRowContext(ctx, query, o.ID, o.UserID, items, o.Total, o.Status).Scan(&o.CreatedAt)
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresOrderRepository) List(ctx context.Context, userID *string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrOrderNotFound)
}
