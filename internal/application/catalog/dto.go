package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest carries the fields for creating a product. Price is
// a pointer so an absent price is told apart from an explicit zero.
type CreateProductRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Code        string           `json:"code"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category"`
	Thumbnail   string           `json:"thumbnail"`
	OwnerID     *uuid.UUID       `json:"-"`
}

// UpdateProductRequest carries the optional fields of a partial product update
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Status      *bool            `json:"status"`
	Category    *string          `json:"category"`
	Thumbnail   *string          `json:"thumbnail"`
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Code        string          `json:"code"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      bool            `json:"status"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToProductResponse maps a domain product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Code:        p.Code,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      p.Status,
		Category:    p.Category,
		Thumbnail:   p.Thumbnail,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses maps a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ListProductsQuery holds the catalog listing parameters
type ListProductsQuery struct {
	Limit int
	Page  int
	Sort  string
	Query string
}

// ProductListPage is the paginated listing payload, carrying navigation
// metadata and ready-made links that echo the request parameters
type ProductListPage struct {
	Products    []ProductResponse `json:"products"`
	TotalPages  int               `json:"totalPages"`
	PrevPage    *int              `json:"prevPage"`
	NextPage    *int              `json:"nextPage"`
	Page        int               `json:"page"`
	HasPrevPage bool              `json:"hasPrevPage"`
	HasNextPage bool              `json:"hasNextPage"`
	PrevLink    *string           `json:"prevLink"`
	NextLink    *string           `json:"nextLink"`
}
