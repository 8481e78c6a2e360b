package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/salesdesk/pos-backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	Create(ctx context.Context, name string, price float64, quantity int) (int64, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, substring string) ([]models.Product, error)
	Delete(ctx context.Context, id int64) error
	Names(ctx context.Context) ([]string, error)
	PriceByName(ctx context.Context, name string) (float64, error)
	Close() error
}

// SQLiteProductRepository implements ProductRepository on a single-table
// SQLite database. One long-lived connection pool; every operation is a
// single statement, so SQLite's per-statement atomicity is all the
// isolation needed.
type SQLiteProductRepository struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT    NOT NULL,
	price    REAL    NOT NULL,
	quantity INTEGER NOT NULL
)`

// NewSQLiteProductRepository opens (creating if necessary) the catalog
// database at path and ensures the products table exists.
func NewSQLiteProductRepository(path string) (*SQLiteProductRepository, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single-user tool: one connection keeps per-connection pragmas in force
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA case_sensitive_like = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set case_sensitive_like: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create products table: %w", err)
	}
	return &SQLiteProductRepository{db: db}, nil
}

// Create inserts a product and returns its assigned id.
// Input validation belongs to the service layer; the repository only
// persists what it is given.
func (r *SQLiteProductRepository) Create(ctx context.Context, name string, price float64, quantity int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, price, quantity) VALUES (?, ?, ?)`,
		name, price, quantity)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetAll returns every product, id ascending.
func (r *SQLiteProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products,
		`SELECT id, name, price, quantity FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

// Search returns products whose name contains substring (case-sensitive).
// An empty substring matches every product.
func (r *SQLiteProductRepository) Search(ctx context.Context, substring string) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products,
		`SELECT id, name, price, quantity FROM products WHERE name LIKE '%' || ? || '%' ORDER BY id`,
		substring); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// Delete removes the product with the given id. Deleting an id that does
// not exist is a no-op, not an error.
func (r *SQLiteProductRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Names returns the name column of every product. Duplicates are kept;
// the caller gets exactly one entry per row.
func (r *SQLiteProductRepository) Names(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names,
		`SELECT name FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	return names, nil
}

// PriceByName returns the current unit price of the named product, or
// ErrProductNotFound if no product carries that name.
func (r *SQLiteProductRepository) PriceByName(ctx context.Context, name string) (float64, error) {
	var price float64
	err := r.db.GetContext(ctx, &price,
		`SELECT price FROM products WHERE name = ? LIMIT 1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select price: %w", err)
	}
	return price, nil
}

// Ping reports whether the database file is still reachable.
func (r *SQLiteProductRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (r *SQLiteProductRepository) Close() error {
	return r.db.Close()
}
