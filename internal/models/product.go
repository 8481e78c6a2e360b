package models

// Product is a catalog entry in the durable store.
// IDs are assigned by the store on creation and never reused.
type Product struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Quantity int     `db:"quantity" json:"quantity"`
}
