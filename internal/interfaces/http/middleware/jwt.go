package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth returns a middleware that requires a valid bearer token.
// Validated claims are stored in the gin context for handlers.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				abortUnauthorized(c, "Token has expired")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth validates a bearer token when present but lets
// unauthenticated requests through. Used by page routes that render
// differently for logged-in visitors.
func OptionalJWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if ok {
			if claims, err := jwtService.ValidateToken(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTRoleKey, claims.Role)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}

// GetJWTClaims returns the validated claims stored by JWTAuth, if any
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user ID, or "" when anonymous
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}
