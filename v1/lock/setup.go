package lock

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/pglock/v1/observability"
)

// lockState tracks the coordinator's position in the
// unacquired -> acquired -> released state machine.
type lockState int

const (
	stateUnacquired lockState = iota
	stateAcquired
	stateReleased
)

// Lock coordinates one advisory lock attempt over one database connection.
//
// A Lock does not own the connection; the caller establishes it, supplies it
// to New, and closes it. The Lock owns only the encoded key, its own state,
// and the adapter binding resolved at construction.
//
// A Lock is not safe for concurrent use by multiple goroutines. It wraps a
// single logical lock attempt; contention between processes is arbitrated by
// the database server, not client-side.
type Lock struct {
	key    interface{}
	lockID int64

	adpt  adapter
	iface Interface

	scope           Scope
	shared          bool
	rollbackOnError bool

	state lockState

	logger   Logger
	observer observability.Observer
}

// New creates a Lock over the given connection and key.
//
// conn must be one of the supported connection types, already open and
// configured by the caller (see package documentation for the list). key can
// be any value; see EncodeKey for how it maps to the server-side lock id.
//
// Defaults: session scope, exclusive lock, interface auto-detection, and
// rollback on error enabled. Each can be changed with an Option.
//
// Returns ErrUnsupportedInterface when the connection cannot be matched to a
// known client family and no WithInterface override was given.
//
// Example:
//
//	l, err := lock.New(conn, "reindex",
//	    lock.WithScope(lock.ScopeTransaction),
//	)
func New(conn interface{}, key interface{}, opts ...Option) (*Lock, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	adpt, err := resolveAdapter(conn, o.iface)
	if err != nil {
		return nil, err
	}

	return &Lock{
		key:             key,
		lockID:          EncodeKey(key),
		adpt:            adpt,
		iface:           Interface(adpt.name()),
		scope:           o.scope,
		shared:          o.shared,
		rollbackOnError: o.rollbackOnError,
		logger:          o.logger,
		observer:        o.observer,
	}, nil
}

// Acquire obtains the lock, suspending the calling goroutine until the
// server grants it. There is no built-in timeout; cancel ctx or close the
// underlying connection to abort, which surfaces as the driver's connection
// error.
//
// Acquire while the lock is already held is idempotent: it returns true
// immediately without a database call, so a holder can never deadlock
// against itself.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	if l.state == stateAcquired {
		return true, nil
	}

	err := l.timedOp(ctx, "acquire", func(ctx context.Context) error {
		return l.adpt.acquire(ctx, l.lockID, l.scope, l.shared)
	})
	if err != nil {
		return false, err
	}

	l.state = stateAcquired
	l.logEvent("Lock acquired", nil)
	return true, nil
}

// TryAcquire attempts to obtain the lock without waiting: a single round
// trip that reports whether the lock was granted. Like Acquire, it is
// idempotent while the lock is held.
func (l *Lock) TryAcquire(ctx context.Context) (bool, error) {
	if l.state == stateAcquired {
		return true, nil
	}

	var acquired bool
	err := l.timedOp(ctx, "try_acquire", func(ctx context.Context) error {
		var opErr error
		acquired, opErr = l.adpt.tryAcquire(ctx, l.lockID, l.scope, l.shared)
		return opErr
	})
	if err != nil {
		return false, err
	}

	if acquired {
		l.state = stateAcquired
		l.logEvent("Lock acquired", nil)
	}
	return acquired, nil
}

// Release releases the lock and reports whether the server actually held it
// for this session. It is safe to call unconditionally:
//
//   - while not acquired (never acquired, or already released) it returns
//     false without a database call and never errors, so cleanup paths can
//     always call it;
//   - for transaction-scope locks it returns false without a database call,
//     since the server releases those at transaction end and Postgres has no
//     explicit unlock for them. The Lock still transitions to released, and
//     any connection the adapter pinned goes back to its pool.
func (l *Lock) Release(ctx context.Context) (bool, error) {
	if l.state != stateAcquired {
		return false, nil
	}

	if l.scope == ScopeTransaction {
		// Held until commit or rollback; nothing to send. The local
		// transition still happens, and a pinned connection must not stay
		// out of its pool.
		l.adpt.detach()
		l.state = stateReleased
		l.logEvent("Lock released", nil)
		return false, nil
	}

	var released bool
	err := l.timedOp(ctx, "release", func(ctx context.Context) error {
		var opErr error
		released, opErr = l.adpt.release(ctx, l.lockID, l.shared)
		return opErr
	})
	if err != nil {
		return false, err
	}

	l.state = stateReleased
	l.logEvent("Lock released", nil)
	return released, nil
}

// HandleError performs the configured error recovery for cause: when
// rollback on error is enabled, it rolls back the connection's current
// transaction. Re-raising cause is the caller's responsibility; HandleError
// only reports a failure of the rollback itself.
func (l *Lock) HandleError(ctx context.Context, cause error) error {
	if !l.rollbackOnError {
		return nil
	}

	err := l.timedOp(ctx, "rollback", func(ctx context.Context) error {
		return l.adpt.rollback(ctx)
	})
	if err != nil {
		l.logEvent("Rollback after error failed", err)
		return err
	}

	l.logEvent("Rolled back after error", cause)
	return nil
}

// WithLock runs fn while holding the lock. Acquisition always blocks,
// regardless of how the lock was constructed. On every exit path the lock is
// released; when fn fails and rollback on error is enabled, the connection's
// transaction is rolled back first. fn's error is returned unchanged.
//
// A failure of the blocking acquisition itself (not expected barring
// connection failure) is returned wrapped in ErrLockNotAcquired.
//
//	err := l.WithLock(ctx, func(ctx context.Context) error {
//	    return doExclusiveWork(ctx)
//	})
func (l *Lock) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, err := l.Acquire(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrLockNotAcquired, err)
	}

	fnErr := fn(ctx)

	if fnErr != nil {
		// Recovery failures are reported through the logger and observer;
		// fn's original error stays the one the caller sees.
		_ = l.HandleError(ctx, fnErr)
	}

	if _, relErr := l.Release(ctx); relErr != nil {
		if fnErr == nil {
			return relErr
		}
		l.logEvent("Release after error failed", relErr)
	}

	return fnErr
}

// Key returns the caller-supplied lock key.
func (l *Lock) Key() interface{} { return l.key }

// LockID returns the signed 64-bit id the key encoded to. Two Locks with
// equal LockIDs contend for the same server-side lock.
func (l *Lock) LockID() int64 { return l.lockID }

// Scope returns the lock scope.
func (l *Lock) Scope() Scope { return l.scope }

// Shared reports whether this is a shared lock.
func (l *Lock) Shared() bool { return l.shared }

// Locked reports whether this Lock currently holds the advisory lock.
// For transaction-scope locks it keeps reporting true until the Lock is
// released locally; the server-side release at transaction end is not
// observable client-side.
func (l *Lock) Locked() bool { return l.state == stateAcquired }

// InterfaceName returns the resolved client family driving this Lock.
func (l *Lock) InterfaceName() Interface { return l.iface }

func (l *Lock) logEvent(msg string, err error) {
	if l.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"key":       fmt.Sprintf("%v", l.key),
		"lock_id":   l.lockID,
		"scope":     string(l.scope),
		"shared":    l.shared,
		"interface": string(l.iface),
	}
	if err != nil {
		l.logger.Error(msg, err, fields)
		return
	}
	l.logger.Debug(msg, nil, fields)
}
