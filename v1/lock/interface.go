package lock

import "context"

// adapter is the capability interface every database client family
// implements. The set is closed: adapters are selected by resolveAdapter,
// either through type detection or an explicit Interface override.
//
// Each operation issues exactly one database round trip against the
// connection the adapter was bound to. Adapters hold no state beyond the
// connection binding itself, except for pool-backed families, which pin one
// pooled connection while a session lock is held (advisory locks bind to a
// server session, so every round trip must reach the same session).
type adapter interface {
	// name identifies the client family, e.g. "pgx" or "gorm".
	name() string

	// tryAcquire issues the non-blocking acquisition call and reports
	// whether the lock was obtained. It never waits beyond the single
	// round trip.
	tryAcquire(ctx context.Context, lockID int64, scope Scope, shared bool) (bool, error)

	// acquire issues the blocking acquisition call and returns once the
	// server grants the lock. Cancellation happens through ctx or by
	// closing the connection, and surfaces as the driver's own error.
	acquire(ctx context.Context, lockID int64, scope Scope, shared bool) error

	// release issues the session-scope unlock call and reports whether a
	// lock was actually held. Releasing a lock that is not held returns
	// false without error. Transaction-scope locks never reach this method;
	// the coordinator short-circuits them.
	release(ctx context.Context, lockID int64, shared bool) (bool, error)

	// rollback rolls back the connection's current transaction. It is safe
	// to call outside an active transaction.
	rollback(ctx context.Context) error

	// detach drops the adapter's client-side session binding without a
	// database call, returning any pinned connection to its pool. Adapters
	// without a pin do nothing. Used for transaction-scope locks, where the
	// server releases the lock at transaction end and no unlock is sent.
	detach()
}

// advisoryFuncs returns the advisory lock function names for a scope and
// sharing mode: pg_advisory{_xact}_lock{_shared},
// pg_try_advisory{_xact}_lock{_shared}, and pg_advisory_unlock{_shared}.
// Transaction-scope locks have no unlock function; the server releases them
// at transaction end.
func advisoryFuncs(scope Scope, shared bool) (block, try, unlock string) {
	infix := ""
	if scope == ScopeTransaction {
		infix = "_xact"
	}

	suffix := ""
	if shared {
		suffix = "_shared"
	}

	block = "pg_advisory" + infix + "_lock" + suffix
	try = "pg_try_advisory" + infix + "_lock" + suffix
	unlock = "pg_advisory_unlock" + suffix
	return block, try, unlock
}

// lockQuery builds the statement for one advisory function call. The
// pg_catalog qualification keeps the call immune to search_path changes.
func lockQuery(fn string) string {
	return "SELECT pg_catalog." + fn + "($1)"
}
