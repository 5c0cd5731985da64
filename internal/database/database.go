package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"craftpin/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Manager wraps the database connection with logging, health checks and
// migration support.
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
	config *config.DatabaseConfig
}

// NewManager opens a connection pool and verifies connectivity, retrying
// with exponential backoff before giving up.
func NewManager(cfg *config.DatabaseConfig, logger *zap.Logger) (*Manager, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return db.PingContext(ctx)
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.ConnectRetries)
	if err := backoff.RetryNotify(ping, policy, func(err error, next time.Duration) {
		logger.Warn("Database not reachable, retrying",
			zap.Error(err),
			zap.Duration("next_attempt_in", next),
		)
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
	)

	return &Manager{
		db:     db,
		logger: logger,
		config: cfg,
	}, nil
}

// DB returns the underlying database connection
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Migrate runs database migrations using a separate connection so the
// migrator cannot close the main pool.
func (m *Manager) Migrate(migrationsPath string) error {
	migrationDB, err := sql.Open("postgres", m.config.URL)
	if err != nil {
		return fmt.Errorf("failed to create migration connection: %w", err)
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	currentVersion, dirty, err := migrator.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := migrator.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}

	m.logger.Info("Migrations completed",
		zap.Uint("from_version", currentVersion),
		zap.Uint("to_version", newVersion),
	)

	return nil
}

// ExecContext executes a query with slow-query logging
func (m *Manager) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := m.db.ExecContext(ctx, query, args...)
	m.observe("exec", query, start, err)
	return result, err
}

// QueryContext executes a query that returns rows
func (m *Manager) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query, args...)
	m.observe("query", query, start, err)
	return rows, err
}

// QueryRowContext executes a query that returns a single row
func (m *Manager) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := m.db.QueryRowContext(ctx, query, args...)
	m.observe("query_row", query, start, nil)
	return row
}

// BeginTx starts a new transaction
func (m *Manager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		m.logger.Error("Failed to begin transaction", zap.Error(err))
	}
	return tx, err
}

func (m *Manager) observe(kind, query string, start time.Time, err error) {
	duration := time.Since(start)
	if duration > m.config.SlowQueryThreshold {
		m.logger.Warn("Slow query detected",
			zap.String("type", kind),
			zap.Duration("duration", duration),
			zap.String("query", truncateQuery(query)),
		)
	}

	if err != nil && err != sql.ErrNoRows {
		m.logger.Error("Query execution failed",
			zap.String("type", kind),
			zap.Error(err),
			zap.String("query", truncateQuery(query)),
		)
	}
}

// Stats returns database connection pool statistics
func (m *Manager) Stats() sql.DBStats {
	return m.db.Stats()
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		m.logger.Info("Closing database connection")
		return m.db.Close()
	}
	return nil
}

// truncateQuery truncates long queries for logging
func truncateQuery(query string) string {
	const maxLength = 200
	if len(query) <= maxLength {
		return query
	}
	return query[:maxLength] + "..."
}
