package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account with the default role
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.FirstName, input.LastName, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	info := ToUserInfo(user)
	return &info, nil
}

// Login authenticates a user and issues a token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		// same answer for unknown email and bad password
		return nil, shared.ErrUnauthorized.WithMessage("Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrUnauthorized.WithMessage("Invalid email or password")
	}

	token, expiresAt, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	user.RecordConnection()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the login still succeeded
		s.logger.Error("failed to record connection time", zap.Error(err))
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserInfo(user),
	}, nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// AttachCart links the authenticated user to their session cart
func (s *AuthService) AttachCart(ctx context.Context, userID, cartID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.AttachCart(cartID)
	return s.userRepo.Update(ctx, user)
}
