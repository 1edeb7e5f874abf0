package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCart   = "Cart"
	AggregateTypeTicket = "Ticket"
)

// Event type constants
const (
	EventTypeCartCreated    = "CartCreated"
	EventTypeCartCheckedOut = "CartCheckedOut"
)

// CartCreatedEvent is published when a new cart is created
type CartCreatedEvent struct {
	shared.BaseDomainEvent
	CartID uuid.UUID `json:"cart_id"`
}

// NewCartCreatedEvent creates a new CartCreatedEvent
func NewCartCreatedEvent(c *Cart) *CartCreatedEvent {
	return &CartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCreated, AggregateTypeCart, c.ID),
		CartID:          c.ID,
	}
}

// CartCheckedOutEvent is published when a checkout completes successfully
type CartCheckedOutEvent struct {
	shared.BaseDomainEvent
	CartID     uuid.UUID       `json:"cart_id"`
	TicketID   uuid.UUID       `json:"ticket_id"`
	TicketCode string          `json:"ticket_code"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewCartCheckedOutEvent creates a new CartCheckedOutEvent
func NewCartCheckedOutEvent(c *Cart, ticket *Ticket) *CartCheckedOutEvent {
	return &CartCheckedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCheckedOut, AggregateTypeCart, c.ID),
		CartID:          c.ID,
		TicketID:        ticket.ID,
		TicketCode:      ticket.Code,
		Amount:          ticket.Amount,
	}
}
