package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts continuous profiling against the configured Pyroscope
// server. If profiling is disabled, it returns a no-op profiler.
func NewProfiler(cfg config.ProfilingConfig, appName string, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}

	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}

	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          newPyroscopeLogger(logger),
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}

	p.profiler = profiler
	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", appName),
	)

	return p, nil
}

// IsEnabled returns whether profiling is running.
func (p *Profiler) IsEnabled() bool {
	return p.profiler != nil
}

// Stop flushes pending profiles. It is safe to call Stop multiple times.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true

	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

// pyroscopeLogger adapts zap.Logger to the pyroscope.Logger interface.
type pyroscopeLogger struct {
	sugar *zap.SugaredLogger
}

func newPyroscopeLogger(logger *zap.Logger) pyroscope.Logger {
	return &pyroscopeLogger{sugar: logger.Named("pyroscope").Sugar()}
}

func (l *pyroscopeLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *pyroscopeLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *pyroscopeLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
