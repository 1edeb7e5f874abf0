package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart with its line items, products unresolved
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByIDResolved finds a cart with line items joined to product data
	FindByIDResolved(ctx context.Context, id uuid.UUID) (*Cart, error)

	// Save creates or updates a cart together with its line items
	Save(ctx context.Context, c *Cart) error
}

// TicketRepository defines the interface for the append-only purchase log
type TicketRepository interface {
	// FindByID finds a ticket by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// Save appends a completed purchase
	Save(ctx context.Context, t *Ticket) error
}
