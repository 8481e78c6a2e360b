package service

import (
	"context"
	"errors"

	"github.com/salesdesk/pos-backend/internal/models"
	"github.com/salesdesk/pos-backend/internal/repository"
)

var (
	ErrEmptyName       = errors.New("product name must not be empty")
	ErrInvalidPrice    = errors.New("price must be a positive number")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

// InventoryService handles business logic for the product catalog.
// Validation happens here, before the repository is touched, so a rejected
// input never causes a partial write.
type InventoryService struct {
	repo repository.ProductRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo repository.ProductRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// Add validates and persists a new product, returning its assigned id.
func (s *InventoryService) Add(ctx context.Context, name string, price float64, quantity int) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if price <= 0 {
		return 0, ErrInvalidPrice
	}
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	return s.repo.Create(ctx, name, price, quantity)
}

// List returns the whole catalog.
func (s *InventoryService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// Search returns products whose name contains substring. An empty
// substring matches everything, so live-filtering a cleared search box
// shows the full catalog.
func (s *InventoryService) Search(ctx context.Context, substring string) ([]models.Product, error) {
	return s.repo.Search(ctx, substring)
}

// Remove deletes a product by id. Unknown ids are a no-op.
func (s *InventoryService) Remove(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Names returns the product names for the shell's selection control.
func (s *InventoryService) Names(ctx context.Context) ([]string, error) {
	return s.repo.Names(ctx)
}
