package postgres

import (
	"fmt"
	"time"
)

// Config holds the PostgreSQL connection configuration shared by all client
// families this package can open.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

// Connection identifies the database server and credentials.
type Connection struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"POSTGRES_DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"POSTGRES_SSL_MODE"`
}

// ConnectionDetails tunes pool-backed handles. Zero values fall back to the
// package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`
}

// Default pool parameters, applied when the corresponding config field is
// zero.
const (
	DefaultMaxOpenConns    = 50
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 1 * time.Minute
)

// DSN renders the configuration in key=value connection string form, which
// every client family in this package understands.
func (c Config) DSN() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		sslMode)
}

func (c Config) maxOpenConns() int {
	if c.ConnectionDetails.MaxOpenConns == 0 {
		return DefaultMaxOpenConns
	}
	return c.ConnectionDetails.MaxOpenConns
}

func (c Config) maxIdleConns() int {
	if c.ConnectionDetails.MaxIdleConns == 0 {
		return DefaultMaxIdleConns
	}
	return c.ConnectionDetails.MaxIdleConns
}

func (c Config) connMaxLifetime() time.Duration {
	if c.ConnectionDetails.ConnMaxLifetime == 0 {
		return DefaultConnMaxLifetime
	}
	return c.ConnectionDetails.ConnMaxLifetime
}
