package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqlQuerier is the subset of the database/sql API the lock protocol needs.
// *sql.Conn and *sql.Tx both satisfy it.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlAdapter drives lock operations over a single database/sql session:
// a *sql.Conn, a *sql.Tx, or a connection pinned from a *sql.DB.
//
// A *sql.DB is a pool, so the adapter pins one *sql.Conn at acquisition time
// and returns it to the pool when the lock is released, mirroring
// pgxPoolAdapter. Direct *sql.Conn and *sql.Tx handles are used as-is and
// remain the caller's to close.
type sqlAdapter struct {
	q      sqlQuerier
	db     *sql.DB
	tx     *sql.Tx
	pinned *sql.Conn
}

// newSQLAdapter wraps a direct session handle (*sql.Conn, *sql.Tx, or a
// compatible wrapper type when the interface override is used).
func newSQLAdapter(q sqlQuerier) *sqlAdapter {
	a := &sqlAdapter{q: q}
	if tx, ok := q.(*sql.Tx); ok {
		a.tx = tx
	}
	return a
}

// newSQLDBAdapter wraps a *sql.DB pool with pin-on-acquire behavior.
func newSQLDBAdapter(db *sql.DB) *sqlAdapter {
	return &sqlAdapter{db: db}
}

func (a *sqlAdapter) name() string { return "sql" }

// session returns the querier all round trips must go through, pinning a
// pool connection first when the adapter wraps a *sql.DB.
func (a *sqlAdapter) session(ctx context.Context) (sqlQuerier, error) {
	if a.q != nil {
		return a.q, nil
	}
	if a.pinned != nil {
		return a.pinned, nil
	}
	conn, err := a.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("lock: sql pin connection: %w", err)
	}
	a.pinned = conn
	return conn, nil
}

func (a *sqlAdapter) unpin() {
	if a.pinned != nil {
		_ = a.pinned.Close()
		a.pinned = nil
	}
}

func (a *sqlAdapter) detach() { a.unpin() }

func (a *sqlAdapter) tryAcquire(ctx context.Context, lockID int64, scope Scope, shared bool) (bool, error) {
	q, err := a.session(ctx)
	if err != nil {
		return false, err
	}

	_, try, _ := advisoryFuncs(scope, shared)

	var acquired bool
	if err := q.QueryRowContext(ctx, lockQuery(try), lockID).Scan(&acquired); err != nil {
		a.unpin()
		return false, fmt.Errorf("lock: sql try acquire: %w", err)
	}
	if !acquired {
		a.unpin()
	}
	return acquired, nil
}

func (a *sqlAdapter) acquire(ctx context.Context, lockID int64, scope Scope, shared bool) error {
	q, err := a.session(ctx)
	if err != nil {
		return err
	}

	block, _, _ := advisoryFuncs(scope, shared)

	if _, err := q.ExecContext(ctx, lockQuery(block), lockID); err != nil {
		a.unpin()
		return fmt.Errorf("lock: sql acquire: %w", err)
	}
	return nil
}

func (a *sqlAdapter) release(ctx context.Context, lockID int64, shared bool) (bool, error) {
	if a.q == nil && a.pinned == nil {
		// Pool-backed adapter with no pinned session: nothing was held.
		return false, nil
	}

	q, err := a.session(ctx)
	if err != nil {
		return false, err
	}

	_, _, unlock := advisoryFuncs(ScopeSession, shared)

	var released bool
	scanErr := q.QueryRowContext(ctx, lockQuery(unlock), lockID).Scan(&released)
	a.unpin()
	if scanErr != nil {
		return false, fmt.Errorf("lock: sql release: %w", scanErr)
	}
	return released, nil
}

func (a *sqlAdapter) rollback(ctx context.Context) error {
	if a.tx != nil {
		err := a.tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			return fmt.Errorf("lock: sql rollback: %w", err)
		}
		return nil
	}

	if a.q == nil && a.pinned == nil {
		// Pool-backed adapter with no pinned session: no transaction exists.
		return nil
	}

	q, err := a.session(ctx)
	if err != nil {
		return err
	}

	// Outside an explicit transaction the server answers a bare ROLLBACK
	// with a warning, not an error.
	if _, err := q.ExecContext(ctx, "ROLLBACK"); err != nil {
		return fmt.Errorf("lock: sql rollback: %w", err)
	}
	return nil
}
