package handlers

import (
	"net/http"

	"github.com/Dosada05/league-api/middleware"
	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/services"
)

type CommerceHandler struct {
	commerceService *services.CommerceService
}

func NewCommerceHandler(cs *services.CommerceService) *CommerceHandler {
	return &CommerceHandler{commerceService: cs}
}

func (h *CommerceHandler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProductInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.commerceService.CreateProduct(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "product", product)
}

func (h *CommerceHandler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}

	product, err := h.commerceService.GetProduct(r.Context(), productID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "product", product)
}

// ListProductsHandler обрабатывает GET /products?category=
func (h *CommerceHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.commerceService.ListProducts(r.Context(), optionalQuery(r, "category"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "products", products)
}

func (h *CommerceHandler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}

	var input services.UpdateProductInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.commerceService.UpdateProduct(r.Context(), productID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "product", product)
}

func (h *CommerceHandler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.commerceService.DeleteProduct(r.Context(), productID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateOrderHandler обрабатывает POST /orders. Сумма считается на сервере по ценам товаров.
func (h *CommerceHandler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	order, err := h.commerceService.CreateOrder(r.Context(), principalUserID(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "order", order)
}

// ListOrdersHandler: администратор видит все заказы, остальные только свои.
func (h *CommerceHandler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var owner *string
	if principal.Role != models.RoleAdmin {
		owner = &principal.UserID
	}

	orders, err := h.commerceService.ListOrders(r.Context(), owner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "orders", orders)
}

func (h *CommerceHandler) GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlID(w, r, "orderID")
	if !ok {
		return
	}

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	order, err := h.commerceService.GetOrder(r.Context(), orderID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// чужой заказ выглядит как несуществующий
	if principal.Role != models.RoleAdmin && (order.UserID == nil || *order.UserID != principal.UserID) {
		notFoundResponse(w, r)
		return
	}

	respond(w, r, http.StatusOK, "order", order)
}

// UpdateOrderStatusHandler обрабатывает PATCH /orders/{orderID}
func (h *CommerceHandler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlID(w, r, "orderID")
	if !ok {
		return
	}

	var input services.UpdateOrderInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	order, err := h.commerceService.UpdateOrderStatus(r.Context(), orderID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "order", order)
}
