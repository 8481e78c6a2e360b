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
	"github.com/salesdesk/pos-backend/internal/repository"
	"github.com/salesdesk/pos-backend/internal/service"
)

// ReceiptGenerator renders a finalized order into a printable document.
type ReceiptGenerator interface {
	Generate(order models.FinalizedOrder) (path string, total float64, err error)
}

// OrderHandler handles the in-progress order ("boleta") HTTP requests
type OrderHandler struct {
	builder  *service.OrderBuilder
	receipts ReceiptGenerator
	log      *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(builder *service.OrderBuilder, receipts ReceiptGenerator, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		builder:  builder,
		receipts: receipts,
		log:      log,
	}
}

// AddLine handles POST /api/order/line
// - 200: line added, body is the new line with its snapshot price
// - 400: quantity not positive
// - 404: product name not in the catalog
func (h *OrderHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req models.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("invalid order line payload", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	line, err := h.builder.AddLine(r.Context(), req.Product, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		case errors.Is(err, repository.ErrProductNotFound):
			h.log.Info("order line for unknown product", "product", req.Product)
			WriteError(w, http.StatusNotFound, err.Error(), h.log)
		default:
			h.log.Error("failed to add order line", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("order line added", "product", line.Product, "quantity", line.Quantity, "subtotal", line.Subtotal)
	WriteJSON(w, http.StatusOK, line, h.log)
}

// RemoveLine handles DELETE /api/order/line/{index}
// Out-of-range indexes are a no-op, mirroring removing a deselected row.
func (h *OrderHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")

	index, err := strconv.Atoi(raw)
	if err != nil {
		h.log.Warn("invalid line index", "index", raw, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid line index", h.log)
		return
	}

	h.builder.RemoveLine(index)
	w.WriteHeader(http.StatusNoContent)
}

// GetOrder handles GET /api/order
// Returns the current lines and running total for display.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"lines": h.builder.Lines(),
		"total": h.builder.Total(),
	}, h.log)
}

// Checkout handles POST /api/order/checkout
// Finalizes the order under the given customer name, writes the receipt and
// returns the total. The builder is cleared only on a successful finalize;
// a failed receipt write leaves no usable document behind.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("invalid checkout payload", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.builder.Finalize(req.Customer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCustomer),
			errors.Is(err, service.ErrNumericCustomer),
			errors.Is(err, service.ErrEmptyOrder):
			h.log.Warn("checkout rejected", "customer", req.Customer, "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		default:
			h.log.Error("failed to finalize order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}
	metrics.OrdersFinalized.Inc()

	path, total, err := h.receipts.Generate(order)
	if err != nil {
		h.log.Error("failed to write receipt", "order_id", order.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to write receipt", h.log)
		return
	}
	metrics.ReceiptsGenerated.Inc()

	h.log.Info("order finalized", "order_id", order.ID, "customer", order.Customer, "total", total, "receipt", path)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"order_id": order.ID,
		"customer": order.Customer,
		"total":    total,
		"receipt":  path,
	}, h.log)
}
