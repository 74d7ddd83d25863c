package lock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the subset of the pgx API the lock protocol needs.
// *pgx.Conn, pgx.Tx, and *pgxpool.Conn all satisfy it.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxAdapter drives lock operations over a single pgx-backed session.
// When the session is a transaction, rollback goes through the pgx.Tx so the
// driver keeps its transaction state consistent.
type pgxAdapter struct {
	q  pgxQuerier
	tx pgx.Tx
}

func newPgxAdapter(q pgxQuerier) *pgxAdapter {
	a := &pgxAdapter{q: q}
	if tx, ok := q.(pgx.Tx); ok {
		a.tx = tx
	}
	return a
}

func (a *pgxAdapter) name() string { return "pgx" }

// detach is a no-op: the caller owns the session handle directly.
func (a *pgxAdapter) detach() {}

func (a *pgxAdapter) tryAcquire(ctx context.Context, lockID int64, scope Scope, shared bool) (bool, error) {
	_, try, _ := advisoryFuncs(scope, shared)

	var acquired bool
	if err := a.q.QueryRow(ctx, lockQuery(try), lockID).Scan(&acquired); err != nil {
		return false, fmt.Errorf("lock: pgx try acquire: %w", err)
	}
	return acquired, nil
}

func (a *pgxAdapter) acquire(ctx context.Context, lockID int64, scope Scope, shared bool) error {
	block, _, _ := advisoryFuncs(scope, shared)

	// The blocking functions return void; Exec consumes the empty result.
	if _, err := a.q.Exec(ctx, lockQuery(block), lockID); err != nil {
		return fmt.Errorf("lock: pgx acquire: %w", err)
	}
	return nil
}

func (a *pgxAdapter) release(ctx context.Context, lockID int64, shared bool) (bool, error) {
	_, _, unlock := advisoryFuncs(ScopeSession, shared)

	var released bool
	if err := a.q.QueryRow(ctx, lockQuery(unlock), lockID).Scan(&released); err != nil {
		return false, fmt.Errorf("lock: pgx release: %w", err)
	}
	return released, nil
}

func (a *pgxAdapter) rollback(ctx context.Context) error {
	if a.tx != nil {
		err := a.tx.Rollback(ctx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return fmt.Errorf("lock: pgx rollback: %w", err)
		}
		return nil
	}

	// Outside an explicit transaction the server answers a bare ROLLBACK
	// with a warning, not an error.
	if _, err := a.q.Exec(ctx, "ROLLBACK"); err != nil {
		return fmt.Errorf("lock: pgx rollback: %w", err)
	}
	return nil
}
