package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration, login and the current-user endpoint
type AuthHandler struct {
	BaseHandler
	users      *identityapp.AuthService
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *identityapp.AuthService, jwtService *auth.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.Named("auth_handler"),
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", middleware.JWTAuth(h.jwtService), h.Me)
	}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, user)
}

// Login authenticates credentials and issues a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.users.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	user, err := h.users.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}
