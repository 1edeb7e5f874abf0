package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SSEClient represents a connected feed client
type SSEClient struct {
	ID   string
	Chan chan SSEMessage
	Done chan struct{}
}

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// ProductFeedHandler streams the product catalog to connected clients.
// Every client receives the full product list on connect and again after
// each product creation.
type ProductFeedHandler struct {
	BaseHandler
	products   *catalogapp.ProductService
	logger     *zap.Logger
	clients    sync.Map // map[string]*SSEClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	maxClients int
	started    bool
	startMu    sync.Mutex
}

// ProductFeedOption is a functional option for configuring the handler
type ProductFeedOption func(*ProductFeedHandler)

// WithFeedLogger sets the logger for the handler
func WithFeedLogger(logger *zap.Logger) ProductFeedOption {
	return func(h *ProductFeedHandler) {
		h.logger = logger
	}
}

// WithFeedHeartbeat sets the heartbeat interval
func WithFeedHeartbeat(interval time.Duration) ProductFeedOption {
	return func(h *ProductFeedHandler) {
		h.heartbeat = interval
	}
}

// WithFeedMaxClients sets the maximum number of concurrent clients
func WithFeedMaxClients(max int) ProductFeedOption {
	return func(h *ProductFeedHandler) {
		h.maxClients = max
	}
}

// NewProductFeedHandler creates a new product feed handler
func NewProductFeedHandler(products *catalogapp.ProductService, opts ...ProductFeedOption) *ProductFeedHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &ProductFeedHandler{
		products:   products,
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		maxClients: 10000,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RegisterRoutes registers the feed route
func (h *ProductFeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/feed/products", h.Stream)
}

// Start begins the heartbeat loop and subscribes to product events
func (h *ProductFeedHandler) Start(bus shared.EventSubscriber) error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("product feed already started")
	}

	go h.sendHeartbeats()
	bus.Subscribe(h, catalog.EventTypeProductCreated)

	h.started = true
	h.logger.Info("Product feed started")
	return nil
}

// Stop disconnects all clients and stops the handler
func (h *ProductFeedHandler) Stop() {
	h.cancel()

	h.clients.Range(func(key, value any) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		return true
	})

	h.logger.Info("Product feed stopped")
}

// EventTypes implements shared.EventHandler
func (h *ProductFeedHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductCreated}
}

// Handle implements shared.EventHandler. A product creation triggers a
// broadcast of the full catalog to every connected client.
func (h *ProductFeedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, err := h.catalogMessage(ctx)
	if err != nil {
		return err
	}
	msg.ID = event.EventID().String()

	h.broadcast(*msg)
	return nil
}

// catalogMessage builds a products SSE message carrying the full list
func (h *ProductFeedHandler) catalogMessage(ctx context.Context) (*SSEMessage, error) {
	products, err := h.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products for feed: %w", err)
	}

	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("marshal feed payload: %w", err)
	}

	return &SSEMessage{
		Event: "products",
		Data:  string(data),
	}, nil
}

// broadcast sends a message to all connected clients. Clients with a full
// channel miss the message rather than blocking the broadcast.
func (h *ProductFeedHandler) broadcast(msg SSEMessage) {
	h.clients.Range(func(key, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok {
			return true
		}

		select {
		case client.Chan <- msg:
			h.logger.Debug("Sent feed message to client",
				zap.String("client_id", client.ID),
				zap.String("event", msg.Event))
		default:
			h.logger.Warn("Client channel full, dropping message",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

// sendHeartbeats periodically sends heartbeat messages to keep connections alive
func (h *ProductFeedHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

// Stream handles a client connection to the product feed
func (h *ProductFeedHandler) Stream(c *gin.Context) {
	if h.maxClients > 0 && h.GetClientCount() >= h.maxClients {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse("Maximum number of feed connections reached"))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	const feedMessageBufferSize = 16
	client := &SSEClient{
		ID:   uuid.New().String(),
		Chan: make(chan SSEMessage, feedMessageBufferSize),
		Done: make(chan struct{}),
	}

	// The message channel is never closed: broadcast may still hold a
	// reference after deregistration, and a send to a departed client's
	// buffered channel is harmless.
	h.clients.Store(client.ID, client)
	defer h.clients.Delete(client.ID)

	h.logger.Info("Feed client connected", zap.String("client_id", client.ID))

	// New clients get the full catalog immediately
	if msg, err := h.catalogMessage(c.Request.Context()); err == nil {
		h.sendEvent(c.Writer, *msg)
		c.Writer.Flush()
	} else {
		h.logger.Error("Failed to send initial catalog", zap.Error(err))
	}

	reqCtx := c.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("Feed client disconnected",
				zap.String("client_id", client.ID))
			return
		case <-client.Done:
			h.logger.Info("Feed client disconnected (done signal)",
				zap.String("client_id", client.ID))
			return
		case <-h.ctx.Done():
			h.logger.Info("Feed stopped, disconnecting client",
				zap.String("client_id", client.ID))
			return
		case msg := <-client.Chan:
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func (h *ProductFeedHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// GetClientCount returns the number of connected feed clients
func (h *ProductFeedHandler) GetClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
