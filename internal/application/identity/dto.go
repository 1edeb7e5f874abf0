package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
)

// RegisterInput carries the fields for creating an account
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginInput carries the credentials for authentication
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo is the outward representation of a user
type UserInfo struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	CartID           *uuid.UUID `json:"cartId,omitempty"`
	LastConnectionAt *time.Time `json:"lastConnection,omitempty"`
}

// LoginResult contains the issued token and the authenticated user
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

// ToUserInfo maps a domain user to its response form
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Role:             string(u.Role),
		CartID:           u.CartID,
		LastConnectionAt: u.LastConnectionAt,
	}
}
