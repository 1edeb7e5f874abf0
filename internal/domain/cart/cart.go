package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Cart represents an anonymous shopping cart
// It is the aggregate root for cart operations and owns its line items
type Cart struct {
	shared.BaseAggregateRoot
	Items []LineItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE;references:ID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// LineItem is one product reference plus a requested quantity within a cart
type LineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null;default:1"`
	Position  int       `gorm:"not null;default:0"`

	// Product is populated when the cart is loaded resolved; the reference
	// is weak, deleting a product does not delete the line item
	Product *catalog.Product `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "cart_items"
}

// NewCart creates a new empty cart
func NewCart() *Cart {
	c := &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Items:             make([]LineItem, 0),
	}
	c.AddDomainEvent(NewCartCreatedEvent(c))
	return c
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the line item for the given product, or nil
func (c *Cart) FindItem(productID uuid.UUID) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddProduct increments the quantity of an existing line item by 1, or
// appends a new line item with quantity 1. Stock is not consulted here,
// availability is only enforced at checkout.
func (c *Cart) AddProduct(productID uuid.UUID) {
	if item := c.FindItem(productID); item != nil {
		item.Quantity++
	} else {
		c.Items = append(c.Items, LineItem{
			ID:        uuid.New(),
			CartID:    c.ID,
			ProductID: productID,
			Quantity:  1,
			Position:  len(c.Items),
		})
	}
	c.touch()
}

// RemoveProduct removes the matching line item. Removing a product that is
// not in the cart is a silent no-op.
func (c *Cart) RemoveProduct(productID uuid.UUID) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			item.Position = len(kept)
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.touch()
}

// ItemInput is one (product, quantity) pair for wholesale replacement
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// ReplaceItems replaces the whole line-item list with the supplied pairs.
// Product ids and quantities are deliberately not validated here.
func (c *Cart) ReplaceItems(items []ItemInput) {
	c.Items = make([]LineItem, 0, len(items))
	for i, in := range items {
		c.Items = append(c.Items, LineItem{
			ID:        uuid.New(),
			CartID:    c.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Position:  i,
		})
	}
	c.touch()
}

// SetQuantity overwrites the quantity of an existing line item
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.ErrInvalidInput.WithMessage("Quantity must be at least 1")
	}
	item := c.FindItem(productID)
	if item == nil {
		return shared.ErrNotFound.WithMessage("Product is not in the cart")
	}
	item.Quantity = quantity
	c.touch()
	return nil
}

// Clear empties the line-item list, keeping the cart itself alive
func (c *Cart) Clear() {
	c.Items = make([]LineItem, 0)
	c.touch()
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
