package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return shared.ErrAlreadyExists.WithMessage("A user with this email already exists")
	}
	return err
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks whether a user with the email exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// isUniqueViolation detects a unique constraint failure across the postgres
// and sqlite drivers used in production and tests
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
