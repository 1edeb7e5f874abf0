package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func setupFeedHandler(productRepo *MockProductRepository) *ProductFeedHandler {
	service := catalogapp.NewProductService(productRepo, nil, nil, nil, zap.NewNop())
	return NewProductFeedHandler(service,
		WithFeedLogger(zap.NewNop()),
		WithFeedHeartbeat(time.Hour))
}

func TestProductFeedHandler_StreamSendsInitialCatalog(t *testing.T) {
	productRepo := new(MockProductRepository)
	product := makeProduct(t, "Live Widget", "SKU-LIVE")
	productRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

	handler := setupFeedHandler(productRepo)
	defer handler.Stop()

	router := setupTestRouter()
	router.GET("/api/feed/products", handler.Stream)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/feed/products", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: products")
	assert.Contains(t, body, "Live Widget")
}

func TestProductFeedHandler_HandleBroadcastsToConnectedClients(t *testing.T) {
	productRepo := new(MockProductRepository)
	product := makeProduct(t, "Live Widget", "SKU-LIVE")
	productRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

	handler := setupFeedHandler(productRepo)
	defer handler.Stop()

	router := setupTestRouter()
	router.GET("/api/feed/products", handler.Stream)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/feed/products", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		router.ServeHTTP(w, req)
	}()

	require.Eventually(t, func() bool {
		return handler.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	event := catalog.NewProductCreatedEvent(product)
	require.NoError(t, handler.Handle(context.Background(), event))

	// Give the stream loop a moment to drain the client channel
	time.Sleep(50 * time.Millisecond)
	cancel()
	wg.Wait()

	body := w.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event: products"), 2)
}

func TestProductFeedHandler_BroadcastAfterClientDeparts(t *testing.T) {
	productRepo := new(MockProductRepository)
	product := makeProduct(t, "Live Widget", "SKU-LIVE")
	productRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

	handler := setupFeedHandler(productRepo)
	defer handler.Stop()

	router := setupTestRouter()
	router.GET("/api/feed/products", handler.Stream)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/feed/products", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		router.ServeHTTP(w, req)
	}()

	require.Eventually(t, func() bool {
		return handler.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	// Hold a reference the way an in-flight broadcast would
	var departed *SSEClient
	handler.clients.Range(func(_, value any) bool {
		departed = value.(*SSEClient)
		return false
	})
	require.NotNil(t, departed)

	cancel()
	wg.Wait()
	require.Eventually(t, func() bool {
		return handler.GetClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	// A broadcast racing the disconnect must not panic on the departed
	// client's channel
	require.NotPanics(t, func() {
		departed.Chan <- SSEMessage{Event: "products", Data: "[]"}
		handler.broadcast(SSEMessage{Event: "products", Data: "[]"})
	})
}

func TestProductFeedHandler_StartTwiceFails(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupFeedHandler(productRepo)
	defer handler.Stop()

	bus := &stubSubscriber{}
	require.NoError(t, handler.Start(bus))
	assert.Error(t, handler.Start(bus))
	assert.Equal(t, []string{catalog.EventTypeProductCreated}, bus.types)
}

type stubSubscriber struct {
	types []string
}

func (s *stubSubscriber) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	s.types = eventTypes
}

func (s *stubSubscriber) Unsubscribe(handler shared.EventHandler) {}
