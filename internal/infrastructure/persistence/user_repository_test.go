package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}))
	return db
}

func TestGormUserRepository_Create(t *testing.T) {
	db := newUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("creates and finds by email", func(t *testing.T) {
		user, err := identity.NewUser("Jane", "Doe", "jane@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, user))

		loaded, err := repo.FindByEmail(ctx, "JANE@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loaded.ID)
	})

	t.Run("duplicate email maps to AlreadyExists", func(t *testing.T) {
		dup, err := identity.NewUser("John", "Doe", "jane@example.com", "s3cret-pass")
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrAlreadyExists.Code, domainErr.Code)
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing user maps to NotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
