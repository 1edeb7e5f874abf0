package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the access level of a user
type Role string

const (
	RoleUser    Role = "user"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered customer. Carts stay anonymous and
// session-bound; users exist for the authentication surface.
type User struct {
	shared.BaseAggregateRoot
	FirstName        string     `gorm:"type:varchar(100);not null"`
	LastName         string     `gorm:"type:varchar(100);not null"`
	Email            string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	PasswordHash     string     `gorm:"type:varchar(100);not null"`
	Role             Role       `gorm:"type:varchar(20);not null;default:'user'"`
	CartID           *uuid.UUID `gorm:"type:uuid"`
	LastConnectionAt *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the default role
func NewUser(firstName, lastName, email, password string) (*User, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, shared.ErrInvalidInput.WithMessage("First and last name are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              RoleUser,
	}

	return user, nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// VerifyPassword checks the supplied password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordConnection stores the time of the latest successful login
func (u *User) RecordConnection() {
	now := time.Now()
	u.LastConnectionAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// AttachCart links the user to a cart
func (u *User) AttachCart(cartID uuid.UUID) {
	u.CartID = &cartID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.ErrInvalidInput.WithMessage("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return shared.ErrInvalidInput.WithMessage("Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.ErrInvalidInput.WithMessage("Password must be at least 8 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
