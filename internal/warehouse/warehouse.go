// Package warehouse provides the relational store target for the load
// stage. The default target is a local sqlite file; a mysql server can
// be configured instead.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "modernc.org/sqlite"             // sqlite driver

	"github.com/dbsmedya/gopipeline/internal/config"
)

// Manager owns the warehouse connection. It is scoped to a single load
// call: opened, used for all writes, and closed before the call
// returns, on both the success and the failure path.
type Manager struct {
	DB     *sql.DB
	config *config.WarehouseConfig
}

// Open establishes the warehouse connection and verifies it with a ping.
func Open(ctx context.Context, cfg *config.WarehouseConfig) (*Manager, error) {
	db, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("warehouse ping failed: %w", err)
	}

	return &Manager{DB: db, config: cfg}, nil
}

// connect creates a database connection for the configured driver.
func connect(cfg *config.WarehouseConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return nil, fmt.Errorf("failed to create warehouse directory: %w", mkErr)
			}
		}
		db, err = sql.Open("sqlite", cfg.Path)
	case "mysql":
		db, err = sql.Open("mysql", BuildDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported warehouse driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.WarehouseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true&multiStatements=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// Close closes the warehouse connection.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("warehouse close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("warehouse not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("warehouse ping failed: %w", err)
	}
	return nil
}
