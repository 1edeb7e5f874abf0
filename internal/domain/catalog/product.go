package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Product represents a catalog item offered by the store
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseAggregateRoot
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text;not null"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_code"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	Status      bool            `gorm:"not null;default:true"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Thumbnail   string          `gorm:"type:varchar(500)"`
	OwnerID     *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with all required fields validated
func NewProduct(title, description, code, category string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Product description is required")
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Product category is required")
	}
	if price.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage("Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.ErrInvalidInput.WithMessage("Product stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Description:       description,
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Price:             price,
		Stock:             stock,
		Status:            true,
		Category:          category,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// ProductUpdate carries the optional fields of a partial update
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Status      *bool
	Category    *string
	Thumbnail   *string
}

// Apply merges the supplied fields into the product, re-validating invariants
func (p *Product) Apply(update ProductUpdate) error {
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return err
		}
		p.Title = *update.Title
	}
	if update.Description != nil {
		if strings.TrimSpace(*update.Description) == "" {
			return shared.ErrInvalidInput.WithMessage("Product description cannot be empty")
		}
		p.Description = *update.Description
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return shared.ErrInvalidInput.WithMessage("Product price cannot be negative")
		}
		p.Price = *update.Price
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return shared.ErrInvalidInput.WithMessage("Product stock cannot be negative")
		}
		p.Stock = *update.Stock
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Category != nil {
		if strings.TrimSpace(*update.Category) == "" {
			return shared.ErrInvalidInput.WithMessage("Product category cannot be empty")
		}
		p.Category = *update.Category
	}
	if update.Thumbnail != nil {
		p.Thumbnail = *update.Thumbnail
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetThumbnail records the stored image URL for the product
func (p *Product) SetThumbnail(url string) {
	p.Thumbnail = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Available reports whether the product can currently be purchased
func (p *Product) Available() bool {
	return p.Status && p.Stock > 0
}

// CanSatisfy reports whether the current stock covers the requested quantity
func (p *Product) CanSatisfy(quantity int) bool {
	return p.Stock >= quantity
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.ErrInvalidInput.WithMessage("Product title is required")
	}
	if len(title) > 200 {
		return shared.ErrInvalidInput.WithMessage("Product title cannot exceed 200 characters")
	}
	return nil
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return shared.ErrInvalidInput.WithMessage("Product code is required")
	}
	if len(code) > 50 {
		return shared.ErrInvalidInput.WithMessage("Product code cannot exceed 50 characters")
	}
	return nil
}
