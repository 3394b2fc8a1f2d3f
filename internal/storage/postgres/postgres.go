// Package postgres provides a PostgreSQL-backed implementation of the storage.Store
// interface built on gorm. Cascade transactions take row-level locks
// (SELECT ... FOR UPDATE) and are retried on serialization conflicts.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okayama-mayu/rails-engine/internal/storage"
)

// PostgreSQL error codes the store reacts to.
const (
	// Class 23: integrity constraint violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation

	// Class 40: transaction rollback
	PgErrSerializationFailure = "40001" // serialization_failure
	PgErrDeadlockDetected     = "40P01" // deadlock_detected
)

// maxTxAttempts bounds how often WithTx re-runs a transaction that lost a conflict.
const maxTxAttempts = 3

var _ storage.Store = (*PostgresStore)(nil)

// PostgresStore implements storage.Store using gorm and PostgreSQL.
type PostgresStore struct {
	db  *gorm.DB
	now func() time.Time
}

// New connects to the database at dsn and migrates the schema.
func New(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &PostgresStore{db: db, now: time.Now}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates or updates the catalog tables.
func (s *PostgresStore) Migrate() error {
	// Parents first so foreign keys resolve.
	if err := s.db.AutoMigrate(
		&merchantRow{},
		&customerRow{},
		&itemRow{},
		&invoiceRow{},
		&invoiceItemRow{},
		&transactionRow{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTx runs fn in a transaction, retrying when PostgreSQL aborts it with a
// serialization failure or deadlock.
func (s *PostgresStore) WithTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&pgTx{db: tx})
		})
		if !isRetryable(err) {
			return err
		}
		slog.Warn("Retrying transaction after conflict", "attempt", attempt, "error", err)
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", maxTxAttempts, err)
}

func (s *PostgresStore) timestamp() int64 {
	return s.now().Unix()
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == PgErrSerializationFailure || pgErr.Code == PgErrDeadlockDetected
}

// isForeignKeyViolation reports whether err was caused by a missing referenced row.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrForeignKeyViolation
}

func notFound(resource string, id int64) error {
	return fmt.Errorf("%s not found: %d: %w", resource, id, storage.ErrNotFound)
}

// firstErr converts gorm.ErrRecordNotFound into a not-found error.
func firstErr(err error, resource string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(resource, id)
	}
	return fmt.Errorf("failed to get %s: %w", resource, err)
}
