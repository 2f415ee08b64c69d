package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/service"
)

// OrderHandler handles the /orders endpoints and the per-user order listing.
type OrderHandler struct {
	orderService service.OrderService
	logger       *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		orderService: orderService,
		logger:       logger.With(slog.String("component", "order_handler")),
	}
}

// CreateOrder handles POST /orders.
//
// A missing, null or zero user_id is reported before any other field error,
// unless user_id itself has the wrong type.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req OrderCreateRequest
	err := shared.DecodeJSON(r, &req)
	if errors.Is(err, shared.ErrInvalidJSON) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidJSON, err)
		return
	}

	var verr *domain.ValidationError
	if err != nil && !errors.As(err, &verr) {
		respondWithServiceError(w, r, err)
		return
	}
	if _, badUserID := fieldErrors(verr)["user_id"]; !badUserID && (req.UserID == nil || *req.UserID == 0) {
		log.Debug("order request without user_id")
		respondWithServiceError(w, r, service.ErrUserIDRequired)
		return
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var orderDate time.Time
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order, err := h.orderService.CreateOrder(r.Context(), *req.UserID, orderDate, req.ProductIDs())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	log.Debug("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", order.UserID))
	shared.RespondWithJSON(w, r, http.StatusCreated, orderToResponse(order))
}

// AddProduct handles PUT /orders/{order_id}/add_product/{product_id}.
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	orderID, productID, ok := h.orderProductIDs(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.AddProduct(r.Context(), orderID, productID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("product added to order",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", productID))
	shared.RespondWithJSON(w, r, http.StatusOK, orderToResponse(order))
}

// RemoveProduct handles DELETE /orders/{order_id}/remove_product/{product_id}.
func (h *OrderHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	orderID, productID, ok := h.orderProductIDs(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.RemoveProduct(r.Context(), orderID, productID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("product removed from order",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", productID))
	shared.RespondWithJSON(w, r, http.StatusOK, orderToResponse(order))
}

// ListOrdersByUser handles GET /orders/user/{user_id}.
func (h *OrderHandler) ListOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathID(w, r, "user_id")
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ordersToResponse(orders))
}

// ListOrderProducts handles GET /orders/{order_id}/products.
func (h *OrderHandler) ListOrderProducts(w http.ResponseWriter, r *http.Request) {
	orderID, ok := handlePathID(w, r, "order_id")
	if !ok {
		return
	}

	products, err := h.orderService.ListOrderProducts(r.Context(), orderID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, productsToResponse(products))
}

func (h *OrderHandler) orderProductIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	orderID, ok := handlePathID(w, r, "order_id")
	if !ok {
		return 0, 0, false
	}
	productID, ok := handlePathID(w, r, "product_id")
	if !ok {
		return 0, 0, false
	}
	return orderID, productID, true
}

func fieldErrors(verr *domain.ValidationError) map[string][]string {
	if verr == nil {
		return nil
	}
	return verr.Fields
}
