// Package lock provides distributed mutual exclusion built on PostgreSQL
// advisory locks, exposed uniformly across the Postgres client libraries used
// in this module.
//
// The database server is the single arbiter: this package performs no
// client-side queuing, retrying, or fairness control. What it adds is a
// consistent acquire/release/error-recovery protocol over connections with
// very different shapes.
//
// Supported database interfaces:
//   - pgx: *pgx.Conn, pgx.Tx, *pgxpool.Conn
//   - pgxpool: *pgxpool.Pool (a connection is pinned while the lock is held)
//   - sql: *sql.DB (pinned), *sql.Conn, *sql.Tx
//   - gorm: *gorm.DB (top-level handles pin a connection; transactional
//     handles use the transaction's session)
//
// Lock scopes:
//   - session: the lock is held by the owning database session until released
//     explicitly or the connection closes
//   - transaction: the lock is released automatically at transaction end;
//     explicit Release is a documented no-op returning false
//
// Basic usage:
//
//	conn, _ := pgx.Connect(ctx, dsn)
//
//	l, err := lock.New(conn, "migrations")
//	if err != nil {
//	    return err
//	}
//
//	err = l.WithLock(ctx, func(ctx context.Context) error {
//	    return runMigrations(ctx)
//	})
//
// WithLock blocks until the lock is granted, runs the callback, and
// guarantees release on every exit path. If the callback fails and rollback
// on error is enabled (the default), the owning connection's transaction is
// rolled back before release and the callback's error is returned unchanged.
//
// Manual control:
//
//	ok, err := l.TryAcquire(ctx) // single round trip, never waits
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    return errBusy
//	}
//	defer l.Release(ctx)
//
// Acquire while already held and Release while not held are defined no-ops,
// so cleanup paths can call them unconditionally.
//
// Keys:
//
// Any value can serve as a lock key. Integer keys are used directly;
// everything else is reduced to a signed 64-bit lock id with a stable hash,
// so independent processes using the same key contend for the same lock.
// Two distinct keys can, with low probability, reduce to the same lock id
// and would then contend with each other; this false-contention risk is
// accepted rather than guarded against.
//
// Concurrency:
//
// A Lock wraps exactly one logical lock attempt over one connection and is
// not safe for concurrent use by multiple goroutines. Cross-process
// contention is exactly what the server's advisory lock mechanism arbitrates.
// Blocking acquisition has no built-in timeout; cancel the context or close
// the underlying connection, which surfaces as the driver's connection error.
package lock
