package models

// OrderLine is one entry in the in-progress order. Price is a snapshot of
// the product's unit price at the moment the line was added; later catalog
// changes do not affect lines already on the order.
type OrderLine struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// FinalizedOrder is the immutable snapshot returned when an order is
// finalized. It is the only input the receipt generator needs.
type FinalizedOrder struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Lines    []OrderLine `json:"lines"`
	Total    float64     `json:"total"`
}

// AddProductRequest is the payload for POST /api/product.
// Quantity defaults to 1 when omitted.
type AddProductRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// AddLineRequest is the payload for POST /api/order/line.
type AddLineRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CheckoutRequest is the payload for POST /api/order/checkout.
type CheckoutRequest struct {
	Customer string `json:"customer"`
}
