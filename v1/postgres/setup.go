package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPgx establishes a single pgx connection. The returned *pgx.Conn is a
// dedicated server session, which makes it the natural handle for
// session-scope advisory locks. The caller owns and closes it.
func OpenPgx(ctx context.Context, cfg Config) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL via pgx: %w", err)
	}
	return conn, nil
}

// OpenPgxPool establishes a pgx connection pool with the configured pool
// parameters.
func OpenPgxPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL pool config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.maxOpenConns())
	poolCfg.MaxConnLifetime = cfg.connMaxLifetime()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL pool: %w", err)
	}
	return pool, nil
}

// OpenSQL establishes a database/sql pool using the lib/pq driver, with the
// configured pool parameters applied.
func OpenSQL(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL via database/sql: %w", err)
	}

	db.SetMaxOpenConns(cfg.maxOpenConns())
	db.SetMaxIdleConns(cfg.maxIdleConns())
	db.SetConnMaxLifetime(cfg.connMaxLifetime())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	return db, nil
}

// OpenGorm establishes a GORM handle over the pgx stdlib driver, with the
// configured pool parameters applied to the underlying database/sql pool.
func OpenGorm(ctx context.Context, cfg Config) (*gorm.DB, error) {
	database, err := gorm.Open(
		gormpostgres.Open(cfg.DSN()),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL via GORM: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	databaseInstance.SetMaxOpenConns(cfg.maxOpenConns())
	databaseInstance.SetMaxIdleConns(cfg.maxIdleConns())
	databaseInstance.SetConnMaxLifetime(cfg.connMaxLifetime())

	if err := databaseInstance.PingContext(ctx); err != nil {
		_ = databaseInstance.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL via GORM: %w", err)
	}
	return database, nil
}

// Factory opens connections of every supported client family from one
// Config. It exists mainly for dependency injection; the package-level Open
// functions carry the actual logic.
type Factory struct {
	cfg Config
}

// NewFactory creates a Factory bound to cfg.
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// Pgx opens a dedicated pgx connection.
func (f *Factory) Pgx(ctx context.Context) (*pgx.Conn, error) { return OpenPgx(ctx, f.cfg) }

// PgxPool opens a pgx connection pool.
func (f *Factory) PgxPool(ctx context.Context) (*pgxpool.Pool, error) {
	return OpenPgxPool(ctx, f.cfg)
}

// SQL opens a database/sql pool.
func (f *Factory) SQL(ctx context.Context) (*sql.DB, error) { return OpenSQL(ctx, f.cfg) }

// Gorm opens a GORM handle.
func (f *Factory) Gorm(ctx context.Context) (*gorm.DB, error) { return OpenGorm(ctx, f.cfg) }
