package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCode finds a product by its unique code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a product with the given code exists
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DecrementStock atomically decreases a product's stock, guarded so the
// remaining stock can never go negative. A zero-row update means the guard
// rejected the decrement.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.ErrInvalidInput.WithMessage("Decrement quantity must be at least 1")
	}

	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

// applyFilter applies filter options to the query including pagination
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		// Natural insertion order
		query = query.Order("created_at ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "available":
			if value == true {
				query = query.Where("status = ? AND stock > ?", true, 0)
			}
		case "category":
			query = query.Where("category = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
