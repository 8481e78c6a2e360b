// Package metrics exposes Prometheus counters for the core POS operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated counts successful catalog inserts.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_products_created_total",
		Help: "Number of products added to the catalog.",
	})

	// ProductsDeleted counts catalog delete calls, including no-op deletes.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_products_deleted_total",
		Help: "Number of product delete operations.",
	})

	// OrdersFinalized counts successfully finalized orders.
	OrdersFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_finalized_total",
		Help: "Number of orders finalized.",
	})

	// ReceiptsGenerated counts receipt documents written to disk.
	ReceiptsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_receipts_generated_total",
		Help: "Number of receipt documents written.",
	})
)
