package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

type CreateProductInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int     `json:"price"`
	Category    string  `json:"category"`
	Image       *string `json:"image"`
	InStock     *bool   `json:"in_stock"`
}

type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Category    *string `json:"category"`
	Image       *string `json:"image"`
	InStock     *bool   `json:"in_stock"`
}

type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderInput не содержит цен и итога: они считаются по текущим ценам товаров.
type CreateOrderInput struct {
	Items []OrderItemInput `json:"items"`
}

type UpdateOrderInput struct {
	Status *models.OrderStatus `json:"status"`
}

type CommerceService struct {
	tx          repositories.Transactor
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	logger      *slog.Logger
}

func NewCommerceService(
	tx repositories.Transactor,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	logger *slog.Logger,
) *CommerceService {
	return &CommerceService{tx: tx, productRepo: productRepo, orderRepo: orderRepo, logger: logger}
}

func (s *CommerceService) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	v := newValidator()
	v.check(notBlank(input.Name), "name", "must be provided")
	v.check(notBlank(input.Category), "category", "must be provided")
	v.check(input.Price >= 0, "price", "must not be negative")
	if err := v.err(); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		InStock:     true,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *CommerceService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return product, nil
}

func (s *CommerceService) ListProducts(ctx context.Context, category *string) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CommerceService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	v := newValidator()
	if input.Name != nil {
		v.check(notBlank(*input.Name), "name", "must not be empty")
		product.Name = *input.Name
	}
	if input.Category != nil {
		v.check(notBlank(*input.Category), "category", "must not be empty")
		product.Category = *input.Category
	}
	if input.Price != nil {
		v.check(nonNegative(input.Price), "price", "must not be negative")
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return product, nil
}

func (s *CommerceService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// CreateOrder проверяет товары и фиксирует их текущие цены в позициях заказа.
func (s *CommerceService) CreateOrder(ctx context.Context, userID *string, input CreateOrderInput) (*models.Order, error) {
	v := newValidator()
	v.check(len(input.Items) > 0, "items", "must contain at least one item")
	for i, item := range input.Items {
		v.check(notBlank(item.ProductID), fmt.Sprintf("items[%d].product_id", i), "must be provided")
		v.check(item.Quantity > 0, fmt.Sprintf("items[%d].quantity", i), "must be positive")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID: userID,
		Items:  make([]models.OrderItem, 0, len(input.Items)),
		Status: models.OrderStatusPending,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, item := range input.Items {
			product, err := s.productRepo.GetByID(ctx, exec, item.ProductID)
			if err != nil {
				if errors.Is(err, repositories.ErrProductNotFound) {
					return fmt.Errorf("%w: product %s", ErrInvalidReference, item.ProductID)
				}
				return fmt.Errorf("failed to get product %s: %w", item.ProductID, err)
			}
			if !product.InStock {
				return fmt.Errorf("%w: %s", ErrProductOutOfStock, product.Name)
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
			order.Total += product.Price * item.Quantity
		}
		if err := s.orderRepo.Create(ctx, exec, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order created", slog.String("order_id", order.ID), slog.Int("total", order.Total))
	return order, nil
}

func (s *CommerceService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

func (s *CommerceService) ListOrders(ctx context.Context, userID *string) ([]*models.Order, error) {
	orders, err := s.orderRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *CommerceService) UpdateOrderStatus(ctx context.Context, id string, input UpdateOrderInput) (*models.Order, error) {
	if input.Status == nil || !input.Status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "must be one of pending, paid, shipped, cancelled"}}
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidOrderTransition(order.Status, *input.Status) {
		return nil, &ValidationError{Fields: map[string]string{
			"status": fmt.Sprintf("cannot change from %s to %s", order.Status, *input.Status),
		}}
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, *input.Status); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	order.Status = *input.Status
	return order, nil
}

func isValidOrderTransition(current, next models.OrderStatus) bool {
	if current == next {
		return true
	}
	switch current {
	case models.OrderStatusPending:
		return next == models.OrderStatusPaid || next == models.OrderStatusCancelled
	case models.OrderStatusPaid:
		return next == models.OrderStatusShipped || next == models.OrderStatusCancelled
	}
	return false
}
