package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// LoggerProvider wraps the OpenTelemetry LoggerProvider with lifecycle management.
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
	logger   *zap.Logger
	enabled  bool
}

// NewLoggerProvider creates a LoggerProvider exporting logs over OTLP gRPC.
// If log export is disabled, it returns a no-op provider.
func NewLoggerProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{
		logger:  logger,
		enabled: cfg.Enabled && cfg.LogExportEnabled,
	}

	if !lp.enabled {
		logger.Info("OTEL log export disabled, using no-op logger provider")
		return lp, nil
	}

	exporterOpts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlploggrpc.WithInsecure())
	}

	exporter, err := otlploggrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)

	global.SetLoggerProvider(lp.provider)

	logger.Info("OpenTelemetry LoggerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
	)

	return lp, nil
}

// IsEnabled returns whether OTEL log export is enabled.
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.enabled && lp.provider != nil
}

// Shutdown flushes pending logs and releases exporter resources.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := lp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}
	return nil
}

// BridgeZapLogger returns a logger that writes to the original core and,
// when log export is enabled, also forwards entries to the OTEL collector
// through the otelzap bridge.
func (lp *LoggerProvider) BridgeZapLogger(base *zap.Logger, serviceName string) *zap.Logger {
	if !lp.IsEnabled() {
		return base
	}

	otelCore := otelzap.NewCore(serviceName, otelzap.WithLoggerProvider(lp.provider))
	return zap.New(
		zapcore.NewTee(base.Core(), otelCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}
