package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides an Fx module that configures distributed tracing.
//
// The module:
//  1. Provides the tracer client through the NewClient constructor
//  2. Registers shutdown hooks to flush spans on application termination
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// A tracer.Config instance and a Logger must be available in the dependency
// injection container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
		NewLockObserver,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the
// Fx lifecycle, ensuring pending spans reach the exporter before the
// application terminates.
//
// This function is invoked by FXModule and does not need to be called
// directly in application code.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if t == nil {
				return nil
			}
			return t.Shutdown(ctx)
		},
	})
}
