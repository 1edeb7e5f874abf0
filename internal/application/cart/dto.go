package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartItemResponse is one cart line, with product data when resolved
type CartItemResponse struct {
	ProductID uuid.UUID                   `json:"productId"`
	Quantity  int                         `json:"quantity"`
	Product   *catalogapp.ProductResponse `json:"product,omitempty"`
}

// CartResponse is the outward representation of a cart
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []CartItemResponse `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ToCartResponse maps a domain cart to its response form
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			p := catalogapp.ToProductResponse(item.Product)
			items[i].Product = &p
		}
	}
	return CartResponse{
		ID:        c.ID,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ItemInput is one (product, quantity) pair for wholesale replacement
type ItemInput struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
}

// TicketResponse is the outward representation of a purchase ticket
type TicketResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Amount      decimal.Decimal `json:"amount"`
	Purchaser   string          `json:"purchaser"`
	PurchasedAt time.Time       `json:"purchaseDatetime"`
}

// ToTicketResponse maps a domain ticket to its response form
func ToTicketResponse(t *cart.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Code:        t.Code,
		Amount:      t.Amount,
		Purchaser:   t.Purchaser,
		PurchasedAt: t.PurchasedAt,
	}
}

// FailedProduct reports one line that could not be satisfied at checkout
type FailedProduct struct {
	Title     string `json:"title"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}
