package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/pglock/v1/logger"
	"github.com/Aleph-Alpha/pglock/v1/observability"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides the NewMetrics factory function to the dependency injection
//     container, making the Metrics instance available to other components.
//  2. Provides a LockObserver registered on the service registry, bound to
//     the observability.Observer interface consumed by the lock module.
//  3. Invokes RegisterMetricsLifecycle to manage startup and graceful
//     shutdown of the Prometheus HTTP server.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{
//	            Address:                 ":9090",
//	            ServiceName:             "lock-service",
//	            EnableDefaultCollectors: true,
//	        }
//	    }),
//	    // other modules...
//	)
//
// A metrics.Config instance must be available in the dependency injection
// container; a logger is optional but recommended for startup/shutdown logs.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) *LockObserver { return NewLockObserver(m.Registerer()) },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies needed for metrics
// lifecycle management.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    *logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle of the
// Prometheus metrics HTTP server.
//
// The lifecycle hook:
//   - OnStart: Launches the Prometheus HTTP server in a background goroutine.
//   - OnStop: Gracefully shuts down the metrics server.
//
// This function is invoked by FXModule and does not need to be called
// directly in application code.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	m := params.Metrics
	log := params.Logger

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if log != nil {
					log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}

				if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					if log != nil {
						log.Error("Error starting Prometheus metrics server", err, nil)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("Shutting down Prometheus metrics server", nil, nil)
			}
			return m.Server.Shutdown(ctx)
		},
	})
}
