package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/pos-backend/internal/metrics"
	"github.com/salesdesk/pos-backend/internal/models"
	"github.com/salesdesk/pos-backend/internal/service"
)

// ProductHandler handles catalog-related HTTP requests
type ProductHandler struct {
	inventory *service.InventoryService
	logger    *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(inventory *service.InventoryService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		inventory: inventory,
		logger:    logger,
	}
}

// CreateProduct handles POST /api/product
// - 201: product created, body {"id": n}
// - 400: missing/invalid name, price or quantity
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid product payload", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Price == nil {
		h.writeError(w, http.StatusBadRequest, service.ErrInvalidPrice.Error())
		return
	}
	// quantity defaults to 1 when the field is omitted
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	id, err := h.inventory.Add(r.Context(), req.Name, *req.Price, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyName),
			errors.Is(err, service.ErrInvalidPrice),
			errors.Is(err, service.ErrInvalidQuantity):
			h.logger.Warn("rejected product", "name", req.Name, "error", err)
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to add product", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	metrics.ProductsCreated.Inc()
	h.logger.Info("product added", "id", id, "name", req.Name)
	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// ListProducts handles GET /api/product
// With a search query parameter the catalog is filtered by substring;
// an empty search value matches every product.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		products []models.Product
		err      error
	)
	if r.URL.Query().Has("search") {
		products, err = h.inventory.Search(ctx, r.URL.Query().Get("search"))
	} else {
		products, err = h.inventory.List(ctx)
	}
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// ListNames handles GET /api/product/names
// Returns the name column for the shell's product selector.
func (h *ProductHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.inventory.Names(r.Context())
	if err != nil {
		h.logger.Error("failed to list product names", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, names)
}

// DeleteProduct handles DELETE /api/product/{productId}
// Deleting an unknown id is still a 204; the catalog is simply unchanged.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", productID, "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}

	if err := h.inventory.Remove(r.Context(), id); err != nil {
		h.logger.Error("failed to delete product", "productId", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	metrics.ProductsDeleted.Inc()
	h.logger.Info("product deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes a JSON response
func (h *ProductHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response
func (h *ProductHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
