package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart and checkout endpoints
type CartHandler struct {
	BaseHandler
	carts  *cartapp.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cartapp.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger.Named("cart_handler"),
	}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/carts")
	{
		carts.POST("", h.Create)
		carts.GET("/:cid", h.Get)
		carts.POST("/:cid/product/:pid", h.AddItem)
		carts.PUT("/:cid", h.ReplaceItems)
		carts.PUT("/:cid/products/:pid", h.SetItemQuantity)
		carts.DELETE("/:cid", h.Clear)
		carts.DELETE("/:cid/products/:pid", h.RemoveItem)
		carts.POST("/:cid/purchase", h.Purchase)
	}
}

// Create starts a new empty cart
func (h *CartHandler) Create(c *gin.Context) {
	cart, err := h.carts.CreateCart(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, cart)
}

// Get returns a cart with its items resolved to full product data
func (h *CartHandler) Get(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem adds one unit of a product to the cart, incrementing the
// quantity when the product is already present
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), cartID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// ReplaceItems swaps the entire contents of the cart
func (h *CartHandler) ReplaceItems(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}

	var items []cartapp.ItemInput
	if err := c.ShouldBindJSON(&items); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.carts.ReplaceItems(c.Request.Context(), cartID, items)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// SetItemQuantity sets the quantity of a single cart line
func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.carts.SetItemQuantity(c.Request.Context(), cartID, productID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear removes every item from the cart
func (h *CartHandler) Clear(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}

	cart, err := h.carts.Clear(c.Request.Context(), cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem removes a product line from the cart. Removing a product
// that is not in the cart is a no-op.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), cartID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// purchaseRequest is the optional checkout body
type purchaseRequest struct {
	Purchaser string `json:"purchaser"`
}

// Purchase checks out the cart, producing a ticket. The purchaser label
// comes from the request body when supplied, falling back to the JWT email
// for authenticated callers; anonymous checkouts get a default label.
func (h *CartHandler) Purchase(c *gin.Context) {
	cartID, ok := h.parseUUIDParam(c, "cid")
	if !ok {
		return
	}

	var req purchaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	purchaser := req.Purchaser
	if purchaser == "" {
		if claims, ok := middleware.GetJWTClaims(c); ok {
			purchaser = claims.Email
		}
	}

	ticket, err := h.carts.Checkout(c.Request.Context(), cartID, purchaser)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}
