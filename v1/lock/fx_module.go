package lock

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/pglock/v1/observability"
)

// FXModule is an fx.Module that provides a lock.Manager wired with the
// application's logger and observer, when those are present in the
// container.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    lock.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("lock",
	fx.Provide(
		NewManagerWithDI,
	),
)

// ManagerParams groups the optional dependencies a Manager picks up from the
// dependency injection container.
type ManagerParams struct {
	fx.In

	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewManagerWithDI creates a Manager using dependency injection. Both
// dependencies are optional; a Manager without them simply constructs silent
// Locks.
func NewManagerWithDI(params ManagerParams) *Manager {
	var opts []Option
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return NewManager(opts...)
}
