package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// PageHandler serves the server-rendered storefront pages
type PageHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	carts    *cartapp.CartService
	logger   *zap.Logger
	printer  *message.Printer
}

// NewPageHandler creates a new page handler
func NewPageHandler(products *catalogapp.ProductService, carts *cartapp.CartService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		products: products,
		carts:    carts,
		logger:   logger.Named("page_handler"),
		printer:  message.NewPrinter(language.English),
	}
}

// RegisterRoutes registers the page routes on the engine root
func (h *PageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Index)
	rg.GET("/products/:pid", h.ProductDetail)
	rg.GET("/cart", h.CartPage)
	rg.GET("/realtimeproducts", h.RealTimeProducts)
}

// productView is the template-facing product representation
type productView struct {
	ID          string
	Title       string
	Description string
	Price       string
	Stock       int
	Category    string
	Thumbnail   string
	Available   bool
}

// cartLineView is the template-facing cart line representation
type cartLineView struct {
	Product  productView
	Quantity int
	Subtotal string
}

func (h *PageHandler) formatPrice(price decimal.Decimal) string {
	value, _ := price.Float64()
	return h.printer.Sprintf("$%v", number.Decimal(value, number.Scale(2)))
}

func (h *PageHandler) toProductView(p catalogapp.ProductResponse) productView {
	return productView{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Price:       h.formatPrice(p.Price),
		Stock:       p.Stock,
		Category:    p.Category,
		Thumbnail:   p.Thumbnail,
		Available:   p.Status && p.Stock > 0,
	}
}

// Index renders the paginated catalog page
func (h *PageHandler) Index(c *gin.Context) {
	var query catalogapp.ListProductsQuery
	query.Sort = c.Query("sort")
	query.Query = c.Query("query")
	if page, err := atoiQuery(c, "page"); err == nil {
		query.Page = page
	}
	if limit, err := atoiQuery(c, "limit"); err == nil {
		query.Limit = limit
	}

	listing, err := h.products.List(c.Request.Context(), query)
	if err != nil {
		h.renderError(c, "Could not load the catalog")
		return
	}

	views := make([]productView, 0, len(listing.Products))
	for _, p := range listing.Products {
		views = append(views, h.toProductView(p))
	}

	cartID, _ := middleware.GetSessionCartID(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Products":    views,
		"Page":        listing.Page,
		"TotalPages":  listing.TotalPages,
		"HasPrevPage": listing.HasPrevPage,
		"HasNextPage": listing.HasNextPage,
		"PrevLink":    pageNavLink(listing.PrevLink),
		"NextLink":    pageNavLink(listing.NextLink),
		"CartID":      cartID.String(),
	})
}

// ProductDetail renders a single product with an add-to-cart control
func (h *PageHandler) ProductDetail(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "pid")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.renderError(c, "Product not found")
		return
	}

	cartID, _ := middleware.GetSessionCartID(c)
	c.HTML(http.StatusOK, "product.html", gin.H{
		"Product": h.toProductView(*product),
		"CartID":  cartID.String(),
	})
}

// CartPage renders the visitor's session cart
func (h *PageHandler) CartPage(c *gin.Context) {
	cartID, ok := middleware.GetSessionCartID(c)
	if !ok {
		h.renderError(c, "No cart bound to this session")
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.renderError(c, "Could not load your cart")
		return
	}

	lines := make([]cartLineView, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		lines = append(lines, cartLineView{
			Product:  h.toProductView(*item.Product),
			Quantity: item.Quantity,
			Subtotal: h.formatPrice(subtotal),
		})
	}

	c.HTML(http.StatusOK, "cart.html", gin.H{
		"CartID": cartID.String(),
		"Lines":  lines,
		"Total":  h.formatPrice(total),
		"Empty":  len(lines) == 0,
	})
}

// RealTimeProducts renders the live feed page
func (h *PageHandler) RealTimeProducts(c *gin.Context) {
	c.HTML(http.StatusOK, "realtimeproducts.html", gin.H{
		"FeedURL": "/api/feed/products",
	})
}

func (h *PageHandler) renderError(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "error.html", gin.H{"Message": message})
}

// pageNavLink turns an API listing link into a link to the index page
// with the same pagination parameters
func pageNavLink(link *string) string {
	if link == nil {
		return ""
	}
	return strings.Replace(*link, "/api/products", "/", 1)
}

func atoiQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}
