package lock

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// resolveAdapter binds a connection to the adapter that can drive it, either
// by inspecting the connection's type or per an explicit interface override.
// Resolution performs no I/O against the connection.
func resolveAdapter(conn interface{}, iface Interface) (adapter, error) {
	switch iface {
	case InterfaceAuto, "":
		return detectAdapter(conn)
	case InterfacePgx:
		if q, ok := conn.(pgxQuerier); ok {
			return newPgxAdapter(q), nil
		}
		return nil, fmt.Errorf("%w: %T does not satisfy the pgx interface", ErrUnsupportedInterface, conn)
	case InterfacePgxPool:
		if pool, ok := conn.(*pgxpool.Pool); ok {
			return newPgxPoolAdapter(pool), nil
		}
		return nil, fmt.Errorf("%w: %T is not a *pgxpool.Pool", ErrUnsupportedInterface, conn)
	case InterfaceSQL:
		if db, ok := conn.(*sql.DB); ok {
			return newSQLDBAdapter(db), nil
		}
		if q, ok := conn.(sqlQuerier); ok {
			return newSQLAdapter(q), nil
		}
		return nil, fmt.Errorf("%w: %T does not satisfy the database/sql interface", ErrUnsupportedInterface, conn)
	case InterfaceGorm:
		if db, ok := conn.(*gorm.DB); ok {
			return newGormAdapter(db)
		}
		return nil, fmt.Errorf("%w: %T is not a *gorm.DB", ErrUnsupportedInterface, conn)
	}
	return nil, fmt.Errorf("%w: unknown interface name %q", ErrUnsupportedInterface, iface)
}

// detectAdapter classifies a connection into one of the supported client
// families by its concrete type.
func detectAdapter(conn interface{}) (adapter, error) {
	switch c := conn.(type) {
	case *pgx.Conn:
		return newPgxAdapter(c), nil
	case *pgxpool.Conn:
		return newPgxAdapter(c), nil
	case pgx.Tx:
		return newPgxAdapter(c), nil
	case *pgxpool.Pool:
		return newPgxPoolAdapter(c), nil
	case *sql.DB:
		return newSQLDBAdapter(c), nil
	case *sql.Conn:
		return newSQLAdapter(c), nil
	case *sql.Tx:
		return newSQLAdapter(c), nil
	case *gorm.DB:
		return newGormAdapter(c)
	}
	return nil, fmt.Errorf("%w: cannot classify %T, specify one with WithInterface", ErrUnsupportedInterface, conn)
}
