package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/pos-backend/internal/models"
	"github.com/salesdesk/pos-backend/internal/receipt"
	"github.com/salesdesk/pos-backend/internal/repository"
	"github.com/salesdesk/pos-backend/internal/service"
	"github.com/salesdesk/pos-backend/pkg/logger"
)

type orderTestEnv struct {
	router     *chi.Mux
	repo       *repository.SQLiteProductRepository
	receiptDir string
}

func newOrderEnv(t *testing.T) orderTestEnv {
	t.Helper()

	dir := t.TempDir()
	repo, err := repository.NewSQLiteProductRepository(filepath.Join(dir, "pos_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	receiptDir := filepath.Join(dir, "receipts")
	gen, err := receipt.NewGenerator(receiptDir)
	if err != nil {
		t.Fatalf("failed to create receipt generator: %v", err)
	}

	log := logger.New("error")
	inventory := service.NewInventoryService(repo)
	builder := service.NewOrderBuilder(repo)

	productHandler := NewProductHandler(inventory, log)
	orderHandler := NewOrderHandler(builder, gen, log)

	r := chi.NewRouter()
	r.Post("/api/product", productHandler.CreateProduct)
	r.Post("/api/order/line", orderHandler.AddLine)
	r.Delete("/api/order/line/{index}", orderHandler.RemoveLine)
	r.Get("/api/order", orderHandler.GetOrder)
	r.Post("/api/order/checkout", orderHandler.Checkout)

	return orderTestEnv{router: r, repo: repo, receiptDir: receiptDir}
}

func (e orderTestEnv) seedProduct(t *testing.T, name string, price float64, quantity int) {
	t.Helper()
	if _, err := e.repo.Create(context.Background(), name, price, quantity); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func (e orderTestEnv) orderTotal(t *testing.T) float64 {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get order: status %d", w.Code)
	}

	var resp struct {
		Lines []models.OrderLine `json:"lines"`
		Total float64            `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}
	return resp.Total
}

func TestAddLine(t *testing.T) {
	env := newOrderEnv(t)
	env.seedProduct(t, "Bread", 2.50, 10)

	w := postJSON(t, env.router, "/api/order/line", models.AddLineRequest{Product: "Bread", Quantity: 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var line models.OrderLine
	if err := json.NewDecoder(w.Body).Decode(&line); err != nil {
		t.Fatalf("failed to decode line: %v", err)
	}
	if line.Subtotal != 7.50 {
		t.Errorf("expected subtotal 7.50, got %v", line.Subtotal)
	}
}

func TestAddLineErrors(t *testing.T) {
	env := newOrderEnv(t)
	env.seedProduct(t, "Bread", 2.50, 10)

	tests := []struct {
		name string
		req  models.AddLineRequest
		code int
	}{
		{"unknown product", models.AddLineRequest{Product: "Nonexistent", Quantity: 1}, http.StatusNotFound},
		{"zero quantity", models.AddLineRequest{Product: "Bread", Quantity: 0}, http.StatusBadRequest},
		{"negative quantity", models.AddLineRequest{Product: "Bread", Quantity: -2}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, env.router, "/api/order/line", tt.req)
			if w.Code != tt.code {
				t.Errorf("expected status %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}

	if total := env.orderTotal(t); total != 0 {
		t.Errorf("rejected lines must not change the order, total = %v", total)
	}
}

func TestRemoveLine(t *testing.T) {
	env := newOrderEnv(t)
	env.seedProduct(t, "Bread", 2.50, 10)
	env.seedProduct(t, "Milk", 1.20, 5)

	for _, req := range []models.AddLineRequest{
		{Product: "Bread", Quantity: 3},
		{Product: "Milk", Quantity: 2},
	} {
		if w := postJSON(t, env.router, "/api/order/line", req); w.Code != http.StatusOK {
			t.Fatalf("add line: status %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/order/line/0", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	if total := env.orderTotal(t); total != 2.40 {
		t.Errorf("expected total 2.40 after removal, got %v", total)
	}

	// out-of-range removal is still a 204 and changes nothing
	req = httptest.NewRequest(http.MethodDelete, "/api/order/line/42", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for out-of-range index, got %d", w.Code)
	}
	if total := env.orderTotal(t); total != 2.40 {
		t.Errorf("out-of-range removal changed the total to %v", total)
	}
}

func TestCheckoutValidation(t *testing.T) {
	env := newOrderEnv(t)
	env.seedProduct(t, "Bread", 2.50, 10)

	// empty order first
	w := postJSON(t, env.router, "/api/order/checkout", models.CheckoutRequest{Customer: "Jane Doe"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty order, got %d", w.Code)
	}

	if w := postJSON(t, env.router, "/api/order/line", models.AddLineRequest{Product: "Bread", Quantity: 1}); w.Code != http.StatusOK {
		t.Fatalf("add line: status %d", w.Code)
	}

	for _, customer := range []string{"", "999"} {
		w := postJSON(t, env.router, "/api/order/checkout", models.CheckoutRequest{Customer: customer})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400 for customer %q, got %d", customer, w.Code)
		}
	}

	// the failed checkouts must have left the order intact
	if total := env.orderTotal(t); total != 2.50 {
		t.Errorf("expected total 2.50 after failed checkouts, got %v", total)
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	env := newOrderEnv(t)
	env.seedProduct(t, "Bread", 2.50, 10)

	if w := postJSON(t, env.router, "/api/order/line", models.AddLineRequest{Product: "Bread", Quantity: 3}); w.Code != http.StatusOK {
		t.Fatalf("add line: status %d", w.Code)
	}
	if total := env.orderTotal(t); total != 7.50 {
		t.Fatalf("expected running total 7.50, got %v", total)
	}

	w := postJSON(t, env.router, "/api/order/checkout", models.CheckoutRequest{Customer: "Jane Doe"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OrderID  string  `json:"order_id"`
		Customer string  `json:"customer"`
		Total    float64 `json:"total"`
		Receipt  string  `json:"receipt"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode checkout response: %v", err)
	}
	if resp.Customer != "Jane Doe" {
		t.Errorf("expected customer Jane Doe, got %q", resp.Customer)
	}
	if resp.Total != 7.50 {
		t.Errorf("expected total 7.50, got %v", resp.Total)
	}
	if resp.OrderID == "" {
		t.Error("expected a non-empty order id")
	}

	if _, err := os.Stat(resp.Receipt); err != nil {
		t.Errorf("expected receipt file at %s: %v", resp.Receipt, err)
	}
	if filepath.Base(resp.Receipt) != "receipt_Jane_Doe.pdf" {
		t.Errorf("unexpected receipt filename %s", filepath.Base(resp.Receipt))
	}

	// checkout cleared the builder for the next order
	if total := env.orderTotal(t); total != 0 {
		t.Errorf("expected empty order after checkout, got total %v", total)
	}

	// the sale did not touch the catalog's stock
	products, err := env.repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(products) != 1 || products[0].Quantity != 10 {
		t.Errorf("expected untouched stock of 10, got %+v", products)
	}
}
