package cart

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTicket(t *testing.T) {
	t.Run("records amount and purchaser", func(t *testing.T) {
		ticket := NewTicket(decimal.NewFromInt(40), "jane@example.com")

		assert.True(t, ticket.Amount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, "jane@example.com", ticket.Purchaser)
		assert.NotEmpty(t, ticket.ID)
		assert.False(t, ticket.PurchasedAt.IsZero())
	})

	t.Run("defaults purchaser when empty", func(t *testing.T) {
		ticket := NewTicket(decimal.NewFromInt(10), "")
		assert.Equal(t, DefaultPurchaser, ticket.Purchaser)
	})

	t.Run("code follows the display format", func(t *testing.T) {
		ticket := NewTicket(decimal.NewFromInt(10), "")
		assert.Regexp(t, regexp.MustCompile(`^TICKET-\d+-[0-9a-z]{6}$`), ticket.Code)
	})
}
