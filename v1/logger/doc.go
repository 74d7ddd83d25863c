// Package logger provides structured logging for the pglock packages.
//
// It wraps Uber's Zap logger with a small, stable surface
// (Debug/Info/Warn/Error/Fatal with optional error and field maps) and
// integrates with the fx dependency injection framework.
//
// Direct usage:
//
//	import "github.com/Aleph-Alpha/pglock/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level: logger.Info,
//	})
//
//	log.Info("Lock acquired", nil, map[string]interface{}{
//		"key": "migrations",
//	})
//
// FX usage:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info}
//		}),
//	)
//
// Other packages in this module declare their own minimal Logger interface
// (Info/Warn/Error/...) which *logger.Logger satisfies, so the dependency
// flows in one direction only.
package logger
