package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/service"
)

// ProductHandler handles the /products endpoints.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, productPtrsToResponse(products))
}

// GetProduct handles GET /products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(*product))
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), *req.ProductName, *req.Price)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("product created",
		slog.Int64("product_id", product.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, productToResponse(*product))
}

// UpdateProduct handles PUT /products/{id} as a partial update.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	var req ProductUpdateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, req.Patch())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("product updated",
		slog.Int64("product_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(*product))
}

// DeleteProduct handles DELETE /products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("product deleted",
		slog.Int64("product_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: fmt.Sprintf("Product %d deleted successfully", id),
	})
}
