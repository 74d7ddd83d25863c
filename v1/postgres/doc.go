// Package postgres opens PostgreSQL connections for every client family the
// lock package can drive: pgx, pgxpool, database/sql (lib/pq), and GORM.
//
// The lock package deliberately does not manage connections; callers supply
// an already-open handle and keep ownership of it. This package is the
// matching factory side: one Config, four ways to open it.
//
//	cfg := postgres.Config{
//	    Connection: postgres.Connection{
//	        Host:   "localhost",
//	        Port:   "5432",
//	        User:   "app",
//	        DbName: "app",
//	    },
//	}
//
//	conn, err := postgres.OpenPgx(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close(ctx)
//
//	l, err := lock.New(conn, "nightly-report")
//
// For session-scope locks prefer a dedicated session handle (OpenPgx, or
// Conn from a pool): the lock lives exactly as long as that session. Pool
// handles work too; the lock package pins one pooled connection while the
// lock is held.
package postgres
