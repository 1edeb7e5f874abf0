package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its unique code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a product with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decreases a product's stock by quantity,
	// refusing when the remaining stock would go negative
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
