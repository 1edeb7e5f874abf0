package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
	EventTypeProductDeleted = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Code      string          `json:"code"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Title:           product.Title,
		Price:           product.Price,
		Category:        product.Category,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Title:           product.Title,
	}
}

// ProductDeletedEvent is published when a product is removed from the catalog
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
	}
}
