package printing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
)

func TestBuildReceiptHTML(t *testing.T) {
	ticket := cart.NewTicket(decimal.NewFromInt(40), "ada lovelace")

	html, err := BuildReceiptHTML(ticket)
	require.NoError(t, err)

	assert.Contains(t, html, ticket.Code)
	assert.Contains(t, html, "ada lovelace")
	assert.Contains(t, html, "$40.00")
	assert.Contains(t, html, "<!DOCTYPE html>")
}

func TestBuildReceiptHTMLEscapesPurchaser(t *testing.T) {
	ticket := cart.NewTicket(decimal.NewFromInt(1), "<script>alert(1)</script>")

	html, err := BuildReceiptHTML(ticket)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestChromedpRendererRejectsEmptyHTML(t *testing.T) {
	r := NewChromedpRenderer(&ChromedpConfig{})
	defer r.Close()

	_, err := r.Render(context.Background(), "   ")
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}
