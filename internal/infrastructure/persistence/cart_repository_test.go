package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newCartTestDB spins up an in-memory database with the storefront schema
func newCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{}, &cart.Cart{}, &cart.LineItem{}, &cart.Ticket{})
	require.NoError(t, err)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, code string, stock int) *catalog.Product {
	product, err := catalog.NewProduct("Product "+code, "description", code, "misc", decimal.NewFromInt(10), stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestGormCartRepository_SaveAndFind(t *testing.T) {
	db := newCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("round-trips an empty cart", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, loaded.ID)
		assert.True(t, loaded.IsEmpty())
	})

	t.Run("persists line items in position order", func(t *testing.T) {
		first := seedProduct(t, db, "POS-1", 5)
		second := seedProduct(t, db, "POS-2", 5)

		c := cart.NewCart()
		c.AddProduct(first.ID)
		c.AddProduct(second.ID)
		c.AddProduct(first.ID)
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 2)
		assert.Equal(t, first.ID, loaded.Items[0].ProductID)
		assert.Equal(t, 2, loaded.Items[0].Quantity)
		assert.Equal(t, second.ID, loaded.Items[1].ProductID)
	})

	t.Run("save replaces the line item list", func(t *testing.T) {
		product := seedProduct(t, db, "REP-1", 5)

		c := cart.NewCart()
		c.AddProduct(product.ID)
		require.NoError(t, repo.Save(ctx, c))

		c.Clear()
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, loaded.IsEmpty())
	})

	t.Run("missing cart maps to NotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stores whatever quantity a replace produced", func(t *testing.T) {
		product := seedProduct(t, db, "QTY-NEG", 5)

		c := cart.NewCart()
		c.ReplaceItems([]cart.ItemInput{{ProductID: product.ID, Quantity: -1}})
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, -1, loaded.Items[0].Quantity)
	})
}

func TestGormCartRepository_FindByIDResolved(t *testing.T) {
	db := newCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "RES-1", 7)

	c := cart.NewCart()
	c.AddProduct(product.ID)
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByIDResolved(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "RES-1", loaded.Items[0].Product.Code)
	assert.Equal(t, 7, loaded.Items[0].Product.Stock)
}

func TestGormTicketRepository(t *testing.T) {
	db := newCartTestDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	ticket := cart.NewTicket(decimal.NewFromInt(40), "jane@example.com")
	require.NoError(t, repo.Save(ctx, ticket))

	loaded, err := repo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.Code, loaded.Code)
	assert.True(t, loaded.Amount.Equal(decimal.NewFromInt(40)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
