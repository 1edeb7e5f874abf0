package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Widget", "A sturdy widget", "WID-001", "tools", decimal.NewFromInt(10), 5)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Widget", product.Title)
		assert.Equal(t, "A sturdy widget", product.Description)
		assert.Equal(t, "WID-001", product.Code)
		assert.Equal(t, "tools", product.Category)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, 5, product.Stock)
		assert.True(t, product.Status)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		product, err := NewProduct("Widget", "A sturdy widget", "wid-001", "tools", decimal.NewFromInt(10), 5)
		require.NoError(t, err)
		assert.Equal(t, "WID-001", product.Code)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("Widget", "A sturdy widget", "WID-002", "tools", decimal.NewFromInt(10), 5)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Code, event.Code)
		assert.Equal(t, product.Title, event.Title)
	})

	t.Run("fails with missing required fields", func(t *testing.T) {
		cases := []struct {
			name                               string
			title, description, code, category string
		}{
			{"empty title", "", "desc", "C-1", "tools"},
			{"empty description", "Widget", "", "C-1", "tools"},
			{"empty code", "Widget", "desc", "", "tools"},
			{"empty category", "Widget", "desc", "C-1", ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewProduct(tc.title, tc.description, tc.code, tc.category, decimal.NewFromInt(1), 1)
				require.Error(t, err)
			})
		}
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Widget", "desc", "WID-003", "tools", decimal.NewFromInt(-1), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price cannot be negative")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("Widget", "desc", "WID-004", "tools", decimal.NewFromInt(1), -5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock cannot be negative")
	})
}

func TestProduct_Apply(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		product, err := NewProduct("Widget", "A sturdy widget", "WID-001", "tools", decimal.NewFromInt(10), 5)
		require.NoError(t, err)
		product.ClearDomainEvents()
		return product
	}

	t.Run("merges supplied fields only", func(t *testing.T) {
		product := newProduct(t)
		title := "Better Widget"
		price := decimal.NewFromFloat(12.50)

		err := product.Apply(ProductUpdate{Title: &title, Price: &price})
		require.NoError(t, err)

		assert.Equal(t, "Better Widget", product.Title)
		assert.True(t, product.Price.Equal(price))
		assert.Equal(t, "A sturdy widget", product.Description)
		assert.Equal(t, 5, product.Stock)
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		product := newProduct(t)
		price := decimal.NewFromInt(-3)

		err := product.Apply(ProductUpdate{Price: &price})
		require.Error(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		product := newProduct(t)
		stock := -1

		err := product.Apply(ProductUpdate{Stock: &stock})
		require.Error(t, err)
		assert.Equal(t, 5, product.Stock)
	})
}

func TestProduct_Available(t *testing.T) {
	product, err := NewProduct("Widget", "desc", "WID-001", "tools", decimal.NewFromInt(10), 5)
	require.NoError(t, err)

	assert.True(t, product.Available())

	product.Stock = 0
	assert.False(t, product.Available())

	product.Stock = 3
	product.Status = false
	assert.False(t, product.Available())
}

func TestProduct_CanSatisfy(t *testing.T) {
	product, err := NewProduct("Widget", "desc", "WID-001", "tools", decimal.NewFromInt(10), 2)
	require.NoError(t, err)

	assert.True(t, product.CanSatisfy(2))
	assert.False(t, product.CanSatisfy(3))
}
