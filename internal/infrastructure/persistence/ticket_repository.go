package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTicketRepository implements cart.TicketRepository using GORM.
// Tickets are append-only, there is no update or delete path.
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Ticket, error) {
	var ticket cart.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// Save appends a completed purchase
func (r *GormTicketRepository) Save(ctx context.Context, ticket *cart.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

// Ensure GormTicketRepository implements TicketRepository
var _ cart.TicketRepository = (*GormTicketRepository)(nil)
