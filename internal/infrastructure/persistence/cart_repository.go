package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart with its line items, products unresolved
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByIDResolved finds a cart with line items joined to product data
func (r *GormCartRepository) FindByIDResolved(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Preload("Items.Product").
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save persists the cart and replaces its line items wholesale. Line items
// are small and few per cart, a delete-and-insert keeps positions exact.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return err
		}
		if err := tx.Delete(&cart.LineItem{}, "cart_id = ?", c.ID).Error; err != nil {
			return err
		}
		if len(c.Items) == 0 {
			return nil
		}
		items := make([]cart.LineItem, len(c.Items))
		for i, item := range c.Items {
			item.Product = nil
			items[i] = item
		}
		return tx.Create(&items).Error
	})
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("cart_items.position ASC")
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
