package cart

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// DefaultPurchaser is the label recorded when no purchaser is supplied
const DefaultPurchaser = "unknown customer"

const ticketCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Ticket is an immutable record of a completed purchase
type Ticket struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(40);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Purchaser   string          `gorm:"type:varchar(200);not null"`
	PurchasedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}

// NewTicket creates a ticket for a completed checkout. The display code is
// time plus random and not guaranteed unique; the aggregate ID is the
// unique handle.
func NewTicket(amount decimal.Decimal, purchaser string) *Ticket {
	if purchaser == "" {
		purchaser = DefaultPurchaser
	}
	now := time.Now()
	return &Ticket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              generateTicketCode(now),
		Amount:            amount,
		Purchaser:         purchaser,
		PurchasedAt:       now,
	}
}

func generateTicketCode(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = ticketCodeAlphabet[rand.IntN(len(ticketCodeAlphabet))]
	}
	return fmt.Sprintf("TICKET-%d-%s", now.Unix(), suffix)
}
