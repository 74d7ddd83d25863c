package lock

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPoolAdapter drives lock operations over a *pgxpool.Pool.
//
// Session advisory locks bind to one server session, while a pool hands out
// a different connection per call. The adapter therefore pins a single
// pooled connection at acquisition time and keeps it out of the pool until
// the lock is released (or immediately returns it when a try-acquire comes
// back empty-handed or any round trip fails). The caller still owns and
// closes the pool itself.
type pgxPoolAdapter struct {
	pool   *pgxpool.Pool
	pinned *pgxpool.Conn
}

func newPgxPoolAdapter(pool *pgxpool.Pool) *pgxPoolAdapter {
	return &pgxPoolAdapter{pool: pool}
}

func (a *pgxPoolAdapter) name() string { return "pgxpool" }

func (a *pgxPoolAdapter) pin(ctx context.Context) (*pgxpool.Conn, error) {
	if a.pinned != nil {
		return a.pinned, nil
	}
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("lock: pgxpool pin connection: %w", err)
	}
	a.pinned = conn
	return conn, nil
}

func (a *pgxPoolAdapter) unpin() {
	if a.pinned != nil {
		a.pinned.Release()
		a.pinned = nil
	}
}

func (a *pgxPoolAdapter) detach() { a.unpin() }

func (a *pgxPoolAdapter) tryAcquire(ctx context.Context, lockID int64, scope Scope, shared bool) (bool, error) {
	conn, err := a.pin(ctx)
	if err != nil {
		return false, err
	}

	_, try, _ := advisoryFuncs(scope, shared)

	var acquired bool
	if err := conn.QueryRow(ctx, lockQuery(try), lockID).Scan(&acquired); err != nil {
		a.unpin()
		return false, fmt.Errorf("lock: pgxpool try acquire: %w", err)
	}
	if !acquired {
		a.unpin()
	}
	return acquired, nil
}

func (a *pgxPoolAdapter) acquire(ctx context.Context, lockID int64, scope Scope, shared bool) error {
	conn, err := a.pin(ctx)
	if err != nil {
		return err
	}

	block, _, _ := advisoryFuncs(scope, shared)

	if _, err := conn.Exec(ctx, lockQuery(block), lockID); err != nil {
		a.unpin()
		return fmt.Errorf("lock: pgxpool acquire: %w", err)
	}
	return nil
}

func (a *pgxPoolAdapter) release(ctx context.Context, lockID int64, shared bool) (bool, error) {
	if a.pinned == nil {
		// No pinned session means no lock was held through this adapter.
		return false, nil
	}

	_, _, unlock := advisoryFuncs(ScopeSession, shared)

	var released bool
	err := a.pinned.QueryRow(ctx, lockQuery(unlock), lockID).Scan(&released)
	a.unpin()
	if err != nil {
		return false, fmt.Errorf("lock: pgxpool release: %w", err)
	}
	return released, nil
}

func (a *pgxPoolAdapter) rollback(ctx context.Context) error {
	if a.pinned == nil {
		// Without a pinned session there is no transaction to roll back.
		return nil
	}
	if _, err := a.pinned.Exec(ctx, "ROLLBACK"); err != nil {
		return fmt.Errorf("lock: pgxpool rollback: %w", err)
	}
	return nil
}
