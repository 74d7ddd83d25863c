package lock

import "github.com/Aleph-Alpha/pglock/v1/observability"

// Scope controls the lifetime of an advisory lock.
type Scope string

const (
	// ScopeSession binds the lock to the owning database session. The lock
	// is held until released explicitly or the connection closes.
	ScopeSession Scope = "session"

	// ScopeTransaction binds the lock to the current transaction. The server
	// releases it at commit or rollback; explicit Release is a no-op.
	ScopeTransaction Scope = "transaction"
)

// Interface names a database client family. Pass one to WithInterface to
// skip auto-detection, e.g. when the connection is wrapped in a custom type
// the resolver cannot see through.
type Interface string

const (
	// InterfaceAuto detects the client family from the connection's type.
	InterfaceAuto Interface = "auto"

	// InterfacePgx drives *pgx.Conn, pgx.Tx, *pgxpool.Conn, or any value
	// exposing pgx-style Exec/QueryRow methods.
	InterfacePgx Interface = "pgx"

	// InterfacePgxPool drives *pgxpool.Pool, pinning one pooled connection
	// for as long as the lock is held.
	InterfacePgxPool Interface = "pgxpool"

	// InterfaceSQL drives *sql.DB (pinned), *sql.Conn, *sql.Tx, or any value
	// exposing database/sql-style ExecContext/QueryRowContext methods.
	InterfaceSQL Interface = "sql"

	// InterfaceGorm drives *gorm.DB handles.
	InterfaceGorm Interface = "gorm"
)

// Logger is an interface that matches the pglock/v1/logger.Logger.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// options collects the configurable behavior of a Lock.
type options struct {
	scope           Scope
	shared          bool
	iface           Interface
	rollbackOnError bool
	logger          Logger
	observer        observability.Observer
}

func defaultOptions() options {
	return options{
		scope:           ScopeSession,
		iface:           InterfaceAuto,
		rollbackOnError: true,
	}
}

// Option customizes a Lock at construction time.
type Option func(*options)

// WithScope selects the lock scope. The default is ScopeSession.
func WithScope(scope Scope) Option {
	return func(o *options) { o.scope = scope }
}

// WithSharedLock requests a shared lock. Shared holders of a key coexist
// with each other and contend only against exclusive holders of the same key.
// The default is an exclusive lock.
func WithSharedLock() Option {
	return func(o *options) { o.shared = true }
}

// WithInterface overrides database interface auto-detection.
func WithInterface(iface Interface) Option {
	return func(o *options) { o.iface = iface }
}

// WithoutRollbackOnError disables the transaction rollback that WithLock and
// HandleError otherwise perform before releasing when an error occurred.
func WithoutRollbackOnError() Option {
	return func(o *options) { o.rollbackOnError = false }
}

// WithLogger sets an optional logger for lock lifecycle events.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver sets an optional observability hook that is notified about
// every acquire, release, and rollback round trip.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}
