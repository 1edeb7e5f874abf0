package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// Session context and cookie keys
const (
	SessionKey       = "session"
	SessionCartIDKey = "session_cart_id"
	sessionCartField = "cart_id"
)

// CartProvisioner creates carts for first-time visitors
type CartProvisioner interface {
	CreateCart(ctx context.Context) (*cartapp.CartResponse, error)
}

// NewSessionStore builds the cookie store backing visitor sessions
func NewSessionStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
	}
	return store
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CartSession binds every visitor to a cart. A first visit creates a cart
// and stores its ID in the session cookie; later visits resolve the stored
// ID. The cart ID is exposed via the gin context for handlers.
func CartSession(store sessions.Store, cfg config.SessionConfig, carts CartProvisioner, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, cfg.Name)
		if err != nil {
			// A stale or tampered cookie decodes to a fresh session
			logger.Debug("Resetting visitor session", zap.Error(err))
		}

		cartID, ok := sessionCartID(session)
		if !ok {
			created, err := carts.CreateCart(c.Request.Context())
			if err != nil {
				logger.Error("Failed to provision session cart", zap.Error(err))
				c.Next()
				return
			}
			cartID = created.ID
			session.Values[sessionCartField] = cartID.String()
			if err := session.Save(c.Request, c.Writer); err != nil {
				logger.Error("Failed to save visitor session", zap.Error(err))
			}
		}

		c.Set(SessionKey, session)
		c.Set(SessionCartIDKey, cartID)
		c.Next()
	}
}

func sessionCartID(session *sessions.Session) (uuid.UUID, bool) {
	raw, ok := session.Values[sessionCartField].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetSessionCartID returns the cart bound to the current visitor session
func GetSessionCartID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(SessionCartIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
