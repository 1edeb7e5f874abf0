package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MetricsRecorder receives business counters from the cart flow
type MetricsRecorder interface {
	RecordCheckout(ctx context.Context, amount float64)
	RecordCheckoutFailure(ctx context.Context, reason string)
	RecordCartItemAdded(ctx context.Context)
}

// CartService handles cart and checkout business operations
type CartService struct {
	cartRepo    cart.CartRepository
	ticketRepo  cart.TicketRepository
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
	metrics     MetricsRecorder
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo cart.CartRepository,
	ticketRepo cart.TicketRepository,
	productRepo catalog.ProductRepository,
	events shared.EventPublisher,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		ticketRepo:  ticketRepo,
		productRepo: productRepo,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateCart creates a new empty cart
func (s *CartService) CreateCart(ctx context.Context) (*CartResponse, error) {
	c := cart.NewCart()
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToCartResponse(c)
	return &response, nil
}

// GetCart retrieves a cart with its line items resolved to product data
func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByIDResolved(ctx, cartID)
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds one unit of a product to the cart, incrementing the quantity
// if the product is already present. Stock is not checked here.
func (s *CartService) AddItem(ctx context.Context, cartID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	c.AddProduct(productID)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordCartItemAdded(ctx)
	}

	return s.GetCart(ctx, cartID)
}

// RemoveItem removes a product's line item from the cart. Removing a product
// that is not in the cart succeeds without change.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.RemoveProduct(productID)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, cartID)
}

// ReplaceItems replaces the whole line-item list. The supplied product ids
// and quantities are stored as-is, problems surface at checkout.
func (s *CartService) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []ItemInput) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	inputs := make([]cart.ItemInput, len(items))
	for i, in := range items {
		inputs[i] = cart.ItemInput{ProductID: in.ProductID, Quantity: in.Quantity}
	}
	c.ReplaceItems(inputs)

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, cartID)
}

// SetItemQuantity overwrites the quantity of an existing line item
func (s *CartService) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := c.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, cartID)
}

// Clear empties the cart, keeping the cart itself alive
func (s *CartService) Clear(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Checkout converts the cart into a purchase ticket. The whole purchase is
// aborted when any line cannot be satisfied; stock for each line is taken
// with an atomic conditional decrement so concurrent checkouts can never
// oversell.
func (s *CartService) Checkout(ctx context.Context, cartID uuid.UUID, purchaser string) (*TicketResponse, error) {
	c, err := s.cartRepo.FindByIDResolved(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		s.recordFailure(ctx, "empty_cart")
		return nil, shared.ErrEmptyCart
	}

	failed := unsatisfiableLines(c)
	if len(failed) > 0 {
		s.recordFailure(ctx, "insufficient_stock")
		return nil, shared.ErrInsufficientStock.WithDetails(map[string]any{
			"failedProducts": failed,
		})
	}

	total := decimal.Zero
	for _, item := range c.Items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	// Pre-checks above ran against a snapshot; the conditional decrement is
	// the authoritative guard against concurrent checkouts.
	for _, item := range c.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				s.recordFailure(ctx, "insufficient_stock")
				return nil, shared.ErrInsufficientStock.WithDetails(map[string]any{
					"failedProducts": []FailedProduct{lineFailure(&item)},
				})
			}
			return nil, err
		}
	}

	ticket := cart.NewTicket(total, purchaser)
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	c.Clear()
	c.AddDomainEvent(cart.NewCartCheckedOutEvent(c, ticket))
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	if s.metrics != nil {
		amount, _ := total.Float64()
		s.metrics.RecordCheckout(ctx, amount)
	}

	s.logger.Info("checkout completed",
		zap.String("cart_id", cartID.String()),
		zap.String("ticket_code", ticket.Code),
		zap.String("amount", total.StringFixed(2)),
	)

	response := ToTicketResponse(ticket)
	return &response, nil
}

// GetTicket retrieves a purchase ticket by its ID
func (s *CartService) GetTicket(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// GetTicketRecord retrieves the domain ticket, used for receipt rendering
func (s *CartService) GetTicketRecord(ctx context.Context, ticketID uuid.UUID) (*cart.Ticket, error) {
	return s.ticketRepo.FindByID(ctx, ticketID)
}

// unsatisfiableLines returns the lines the current catalog state cannot
// satisfy: missing products or not enough stock. A disabled product with
// stock on hand still sells; status only drives catalog presentation.
func unsatisfiableLines(c *cart.Cart) []FailedProduct {
	var failed []FailedProduct
	for i := range c.Items {
		item := &c.Items[i]
		if item.Product == nil || !item.Product.CanSatisfy(item.Quantity) {
			failed = append(failed, lineFailure(item))
		}
	}
	return failed
}

func lineFailure(item *cart.LineItem) FailedProduct {
	f := FailedProduct{
		Title:     "unknown product",
		Requested: item.Quantity,
	}
	if item.Product != nil {
		f.Title = item.Product.Title
		f.Available = item.Product.Stock
	}
	return f
}

func (s *CartService) recordFailure(ctx context.Context, reason string) {
	if s.metrics != nil {
		s.metrics.RecordCheckoutFailure(ctx, reason)
	}
}

func (s *CartService) publishEvents(ctx context.Context, c *cart.Cart) {
	if s.events == nil {
		return
	}
	events := c.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish cart events", zap.Error(err))
	}
	c.ClearDomainEvents()
}
