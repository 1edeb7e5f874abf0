package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"path"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	defaultPageLimit = 10

	// virtual category selecting products that are enabled and in stock
	queryAvailable = "available"

	sortPriceAsc  = "asc"
	sortPriceDesc = "desc"
)

// ListCache caches serialized listing pages keyed by the normalized
// query signature
type ListCache interface {
	GetList(ctx context.Context, key string) ([]byte, bool)
	SetList(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
}

// ObjectStorage stores uploaded product media and returns public URLs
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       ListCache
	storage     ObjectStorage
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	cache ListCache,
	storage ObjectStorage,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		storage:     storage,
		events:      events,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.Price == nil {
		return nil, shared.ErrInvalidInput.WithMessage("Product price is required")
	}

	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Product with this code already exists")
	}

	product, err := catalog.NewProduct(req.Title, req.Description, req.Code, req.Category, *req.Price, req.Stock)
	if err != nil {
		return nil, err
	}
	if req.Thumbnail != "" {
		product.SetThumbnail(req.Thumbnail)
	}
	product.OwnerID = req.OwnerID

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a catalog page with filtering, sorting and navigation links
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) (*ProductListPage, error) {
	if query.Limit <= 0 {
		query.Limit = defaultPageLimit
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	cacheKey := listCacheKey(query)
	if s.cache != nil {
		if payload, ok := s.cache.GetList(ctx, cacheKey); ok {
			var page ProductListPage
			if err := json.Unmarshal(payload, &page); err == nil {
				return &page, nil
			}
			s.logger.Warn("discarding unreadable cached listing", zap.String("key", cacheKey))
		}
	}

	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.Limit,
		Filters:  make(map[string]interface{}),
	}

	switch query.Query {
	case "":
	case queryAvailable:
		filter.Filters["available"] = true
	default:
		filter.Filters["category"] = query.Query
	}

	// only price sorting is supported, anything else keeps insertion order
	switch query.Sort {
	case sortPriceAsc:
		filter.OrderBy = "price"
		filter.OrderDir = "ASC"
	case sortPriceDesc:
		filter.OrderBy = "price"
		filter.OrderDir = "DESC"
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := buildListPage(query, ToProductResponses(products), total)

	if s.cache != nil {
		if payload, err := json.Marshal(page); err == nil {
			s.cache.SetList(ctx, cacheKey, payload)
		}
	}

	return page, nil
}

// ListAll retrieves the whole catalog without pagination, used by the
// real-time feed to broadcast the full product list
func (s *ProductService) ListAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, shared.Filter{Filters: make(map[string]interface{})})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update applies a partial update, re-validating the product invariants
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	update := catalog.ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      req.Status,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
	}
	if err := product.Apply(update); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	if s.events != nil {
		if err := s.events.Publish(ctx, catalog.NewProductDeletedEvent(product)); err != nil {
			s.logger.Warn("failed to publish product deleted event", zap.Error(err))
		}
	}

	return nil
}

// SetThumbnail uploads a product image and stores its public URL
func (s *ProductService) SetThumbnail(ctx context.Context, productID uuid.UUID, filename string, data []byte, contentType string) (*ProductResponse, error) {
	if s.storage == nil {
		return nil, shared.ErrInvalidInput.WithMessage("Thumbnail storage is not configured")
	}
	if len(data) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("Thumbnail file is empty")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(filename)
	storageKey := fmt.Sprintf("thumbnails/%s/%s%s", productID, uuid.New(), ext)

	publicURL, err := s.storage.Upload(ctx, storageKey, data, contentType)
	if err != nil {
		return nil, err
	}

	product.SetThumbnail(publicURL)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) invalidateListings(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.events == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish product events", zap.Error(err))
	}
	product.ClearDomainEvents()
}

// listCacheKey normalizes the query into a stable cache key
func listCacheKey(q ListProductsQuery) string {
	return fmt.Sprintf("limit=%d&page=%d&sort=%s&query=%s", q.Limit, q.Page, q.Sort, url.QueryEscape(q.Query))
}

// buildListPage assembles the pagination envelope around the product slice
func buildListPage(q ListProductsQuery, products []ProductResponse, total int64) *ProductListPage {
	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))

	page := &ProductListPage{
		Products:    products,
		TotalPages:  totalPages,
		Page:        q.Page,
		HasPrevPage: q.Page > 1,
		HasNextPage: q.Page < totalPages,
	}

	if page.HasPrevPage {
		prev := q.Page - 1
		link := pageLink(q, prev)
		page.PrevPage = &prev
		page.PrevLink = &link
	}
	if page.HasNextPage {
		next := q.Page + 1
		link := pageLink(q, next)
		page.NextPage = &next
		page.NextLink = &link
	}

	return page
}

// pageLink renders a navigation link echoing the request parameters
func pageLink(q ListProductsQuery, page int) string {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(q.Limit))
	values.Set("page", strconv.Itoa(page))
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	if q.Query != "" {
		values.Set("query", q.Query)
	}
	return "/api/products?" + values.Encode()
}
