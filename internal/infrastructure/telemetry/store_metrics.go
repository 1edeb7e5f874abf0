package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StoreMetrics holds the business-level instruments for the storefront.
type StoreMetrics struct {
	checkoutsTotal  metric.Int64Counter
	checkoutsFailed metric.Int64Counter
	saleAmount      metric.Float64Histogram
	cartItemsAdded  metric.Int64Counter
	productsCreated metric.Int64Counter
}

// NewStoreMetrics registers the storefront instruments on the given meter provider.
func NewStoreMetrics(mp *MeterProvider) (*StoreMetrics, error) {
	meter := mp.Meter("storefront.store")

	checkoutsTotal, err := meter.Int64Counter("store.checkouts.total",
		metric.WithDescription("Number of completed checkouts"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkouts counter: %w", err)
	}

	checkoutsFailed, err := meter.Int64Counter("store.checkouts.failed",
		metric.WithDescription("Number of checkouts rejected for empty cart or insufficient stock"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failed checkouts counter: %w", err)
	}

	saleAmount, err := meter.Float64Histogram("store.sale.amount",
		metric.WithDescription("Total amount of each completed sale"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale amount histogram: %w", err)
	}

	cartItemsAdded, err := meter.Int64Counter("store.cart.items_added",
		metric.WithDescription("Number of items added to carts"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart items counter: %w", err)
	}

	productsCreated, err := meter.Int64Counter("store.products.created",
		metric.WithDescription("Number of products created"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create products counter: %w", err)
	}

	return &StoreMetrics{
		checkoutsTotal:  checkoutsTotal,
		checkoutsFailed: checkoutsFailed,
		saleAmount:      saleAmount,
		cartItemsAdded:  cartItemsAdded,
		productsCreated: productsCreated,
	}, nil
}

// RecordCheckout records a completed checkout and its sale amount.
func (m *StoreMetrics) RecordCheckout(ctx context.Context, amount float64) {
	m.checkoutsTotal.Add(ctx, 1)
	m.saleAmount.Record(ctx, amount)
}

// RecordCheckoutFailure records a rejected checkout with its reason code.
func (m *StoreMetrics) RecordCheckoutFailure(ctx context.Context, reason string) {
	m.checkoutsFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordCartItemAdded records an item added to a cart.
func (m *StoreMetrics) RecordCartItemAdded(ctx context.Context) {
	m.cartItemsAdded.Add(ctx, 1)
}

// RecordProductCreated records a product creation.
func (m *StoreMetrics) RecordProductCreated(ctx context.Context) {
	m.productsCreated.Add(ctx, 1)
}
