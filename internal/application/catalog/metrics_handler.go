package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductMetricsRecorder receives catalog business counters
type ProductMetricsRecorder interface {
	RecordProductCreated(ctx context.Context)
}

// ProductMetricsHandler counts product creations off the event bus
type ProductMetricsHandler struct {
	metrics ProductMetricsRecorder
}

// NewProductMetricsHandler creates a new ProductMetricsHandler
func NewProductMetricsHandler(metrics ProductMetricsRecorder) *ProductMetricsHandler {
	return &ProductMetricsHandler{metrics: metrics}
}

// EventTypes returns the event types this handler subscribes to
func (h *ProductMetricsHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductCreated}
}

// Handle records the counter for a created product
func (h *ProductMetricsHandler) Handle(ctx context.Context, _ shared.DomainEvent) error {
	h.metrics.RecordProductCreated(ctx)
	return nil
}
