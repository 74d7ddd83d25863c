package postgres

import "go.uber.org/fx"

// FXModule is an fx.Module that provides the connection Factory.
//
// Usage:
//
//	app := fx.New(
//	    postgres.FXModule,
//	    fx.Provide(func() postgres.Config {
//	        return loadPostgresConfig()
//	    }),
//	    // other modules...
//	)
//
// A postgres.Config instance must be available in the dependency injection
// container. Connection handles themselves are opened on demand through the
// Factory, since their lifetimes belong to the caller (a lock session, a
// migration run), not to the application.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewFactory,
	),
)
