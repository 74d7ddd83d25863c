package lock

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// gormAdapter drives lock operations over a *gorm.DB handle.
//
// GORM sits on database/sql, so the adapter peels the handle down to its
// session: a handle inside db.Transaction carries a *sql.Tx and uses that
// exact session, while a top-level handle is pool-backed and pins one
// connection the same way the plain sql adapter does.
type gormAdapter struct {
	inner *sqlAdapter
}

func newGormAdapter(db *gorm.DB) (*gormAdapter, error) {
	var connPool gorm.ConnPool
	if db.Statement != nil && db.Statement.ConnPool != nil {
		connPool = db.Statement.ConnPool
	} else {
		connPool = db.ConnPool
	}

	if tx, ok := connPool.(*sql.Tx); ok {
		return &gormAdapter{inner: newSQLAdapter(tx)}, nil
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("lock: gorm connection: %w", err)
	}
	return &gormAdapter{inner: newSQLDBAdapter(sqldb)}, nil
}

func (a *gormAdapter) name() string { return "gorm" }

func (a *gormAdapter) tryAcquire(ctx context.Context, lockID int64, scope Scope, shared bool) (bool, error) {
	return a.inner.tryAcquire(ctx, lockID, scope, shared)
}

func (a *gormAdapter) acquire(ctx context.Context, lockID int64, scope Scope, shared bool) error {
	return a.inner.acquire(ctx, lockID, scope, shared)
}

func (a *gormAdapter) release(ctx context.Context, lockID int64, shared bool) (bool, error) {
	return a.inner.release(ctx, lockID, shared)
}

func (a *gormAdapter) rollback(ctx context.Context) error {
	return a.inner.rollback(ctx)
}

func (a *gormAdapter) detach() {
	a.inner.detach()
}
