package models

import "time"

// Product price is stored in cents.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       int       `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Image       *string   `json:"image,omitempty" db:"image"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

type Order struct {
	ID        string      `json:"id" db:"id"`
	UserID    *string     `json:"user_id,omitempty" db:"user_id"`
	Items     []OrderItem `json:"items" db:"items"`
	Total     int         `json:"total" db:"total"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
