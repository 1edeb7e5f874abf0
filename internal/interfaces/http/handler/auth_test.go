package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters!",
		Expiration: time.Hour,
		Issuer:     "storefront-test",
	})
}

func setupAuthHandler(userRepo *MockUserRepository) *AuthHandler {
	jwtService := testJWTService()
	service := identityapp.NewAuthService(userRepo, jwtService, zap.NewNop())
	return NewAuthHandler(service, jwtService, zap.NewNop())
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler := setupAuthHandler(userRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "jo@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	router := setupTestRouter()
	router.POST("/api/auth/register", handler.Register)

	body, _ := json.Marshal(identityapp.RegisterInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "sup3r-secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	userRepo.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler := setupAuthHandler(userRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "jo@example.com").Return(true, nil)

	router := setupTestRouter()
	router.POST("/api/auth/register", handler.Register)

	body, _ := json.Marshal(identityapp.RegisterInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "sup3r-secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler := setupAuthHandler(userRepo)

	user, err := identity.NewUser("Jo", "Doe", "jo@example.com", "sup3r-secret")
	require.NoError(t, err)
	userRepo.On("FindByEmail", mock.Anything, "jo@example.com").Return(user, nil)

	router := setupTestRouter()
	router.POST("/api/auth/login", handler.Login)

	body, _ := json.Marshal(identityapp.LoginInput{
		Email:    "jo@example.com",
		Password: "wrong-password",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusError, resp.Status)
}

func TestAuthHandler_Me_RoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler := setupAuthHandler(userRepo)

	user, err := identity.NewUser("Jo", "Doe", "jo@example.com", "sup3r-secret")
	require.NoError(t, err)
	userRepo.On("FindByEmail", mock.Anything, "jo@example.com").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	router := setupTestRouter()
	handler.RegisterRoutes(router.Group("/api"))

	// Login to obtain a token
	body, _ := json.Marshal(identityapp.LoginInput{
		Email:    "jo@example.com",
		Password: "sup3r-secret",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Payload identityapp.LoginResult `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Payload.Token)

	// Use the token against /auth/me
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Payload.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var meResp struct {
		Payload identityapp.UserInfo `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meResp))
	assert.Equal(t, "jo@example.com", meResp.Payload.Email)
}

func TestAuthHandler_Me_MissingToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	handler := setupAuthHandler(userRepo)

	router := setupTestRouter()
	handler.RegisterRoutes(router.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
