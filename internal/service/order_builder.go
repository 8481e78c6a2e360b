package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"

	"github.com/salesdesk/pos-backend/internal/models"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one line")
	ErrEmptyCustomer   = errors.New("customer name must not be empty")
	ErrNumericCustomer = errors.New("customer name must not be a number")
)

// PriceLookup is the single catalog operation the order builder needs:
// the current unit price of a named product.
type PriceLookup interface {
	PriceByName(ctx context.Context, name string) (float64, error)
}

// OrderBuilder holds the one in-progress order. Prices are copied from the
// catalog when a line is added; stock is intentionally not decremented
// (the catalog and sales are independent in this design).
//
// The tool is single-user but the HTTP shell serves requests concurrently,
// so the line list is mutex-guarded.
type OrderBuilder struct {
	catalog PriceLookup

	mu    sync.Mutex
	lines []models.OrderLine
}

// NewOrderBuilder creates an order builder backed by the given catalog.
func NewOrderBuilder(catalog PriceLookup) *OrderBuilder {
	return &OrderBuilder{
		catalog: catalog,
	}
}

// AddLine appends a line for the named product at its current catalog
// price. Returns repository.ErrProductNotFound (wrapped by the lookup) when
// the name is unknown and ErrInvalidQuantity when quantity is not positive.
func (b *OrderBuilder) AddLine(ctx context.Context, productName string, quantity int) (models.OrderLine, error) {
	if quantity <= 0 {
		return models.OrderLine{}, ErrInvalidQuantity
	}

	price, err := b.catalog.PriceByName(ctx, productName)
	if err != nil {
		return models.OrderLine{}, err
	}

	line := models.OrderLine{
		Product:  productName,
		Quantity: quantity,
		Price:    price,
		Subtotal: price * float64(quantity),
	}

	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()

	return line, nil
}

// RemoveLine drops the line at the given position. Out-of-range indexes
// are a no-op so the shell can fire removals without re-checking the list.
func (b *OrderBuilder) RemoveLine(index int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
}

// Lines returns a copy of the current lines for display.
func (b *OrderBuilder) Lines() []models.OrderLine {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := make([]models.OrderLine, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// Total is the sum of all line subtotals; 0 for an empty order.
func (b *OrderBuilder) Total() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return total(b.lines)
}

// Finalize validates the customer name, snapshots the order and clears the
// builder for the next one. A name that is empty or consists solely of
// digits is rejected, as is an order with no lines.
func (b *OrderBuilder) Finalize(customerName string) (models.FinalizedOrder, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return models.FinalizedOrder{}, ErrEmptyCustomer
	}
	if isAllDigits(customerName) {
		return models.FinalizedOrder{}, ErrNumericCustomer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.lines) == 0 {
		return models.FinalizedOrder{}, ErrEmptyOrder
	}

	order := models.FinalizedOrder{
		ID:       uuid.New().String(),
		Customer: customerName,
		Lines:    b.lines,
		Total:    total(b.lines),
	}
	b.lines = nil

	return order, nil
}

func total(lines []models.OrderLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.Subtotal
	}
	return sum
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
