package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// maxThumbnailBytes caps uploaded product images at 5MB
const maxThumbnailBytes = 5 << 20

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *catalogapp.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.Named("product_handler"),
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:pid", h.Get)
		products.POST("", h.Create)
		products.PUT("/:pid", h.Update)
		products.DELETE("/:pid", h.Delete)
		products.POST("/:pid/thumbnail", h.UploadThumbnail)
	}
}

// List returns a page of products with navigation metadata
func (h *ProductHandler) List(c *gin.Context) {
	query, ok := h.parseListQuery(c)
	if !ok {
		return
	}

	page, err := h.products.List(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, page)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if userID, err := uuid.Parse(middleware.GetJWTUserID(c)); err == nil {
		req.OwnerID = &userID
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		// A duplicate code is a client input fault on this endpoint, the
		// same 400 contract the legacy storefront exposed.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrAlreadyExists.Code {
			h.BadRequest(c, domainErr.Message)
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": productID})
}

// UploadThumbnail stores a product image and links it to the product
func (h *ProductHandler) UploadThumbnail(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		h.BadRequest(c, "Missing thumbnail file")
		return
	}
	if fileHeader.Size > maxThumbnailBytes {
		h.BadRequest(c, "Thumbnail exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxThumbnailBytes+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	product, err := h.products.SetThumbnail(c.Request.Context(), productID, fileHeader.Filename, data, contentType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

func (h *ProductHandler) parseListQuery(c *gin.Context) (catalogapp.ListProductsQuery, bool) {
	var query catalogapp.ListProductsQuery

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.BadRequest(c, "Invalid limit parameter")
			return query, false
		}
		query.Limit = limit
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			h.BadRequest(c, "Invalid page parameter")
			return query, false
		}
		query.Page = page
	}
	query.Sort = c.Query("sort")
	query.Query = c.Query("query")

	return query, true
}
