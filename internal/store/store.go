// Package store implements the durable key-value storage behind the app:
// a local SQLite database with a single kv table holding whole collections
// as JSON blobs, one per key.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rideflow-labs/rideflow/internal/dbx"
	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/store/migrations"
)

// Collection keys. The names and the JSON layout stored under them are kept
// exactly compatible with previously persisted data.
const (
	KeyUsers       = "users"
	KeyRides       = "rides"
	KeyCurrentUser = "currentUser"
)

// KV is the read/write surface repositories work against. Both the Store
// itself (auto-commit) and the handle passed to WithTx implement it.
type KV interface {
	// Get returns the value stored under key, or nil when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set upserts the value under key. The value is fully serialized by the
	// caller before the write, so a failed write leaves the old value intact.
	Set(ctx context.Context, key string, value []byte) error
}

// Store owns the SQLite database.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (creating if needed) the database at dsn, applies migrations
// and seeds the collection keys.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// init seeds the three collection keys when missing: empty arrays for the
// users and rides collections, JSON null for the session pointer. All three
// are written in one transaction.
func (s *Store) init(ctx context.Context) error {
	defaults := []struct {
		key   string
		value []byte
	}{
		{KeyUsers, []byte("[]")},
		{KeyRides, []byte("[]")},
		{KeyCurrentUser, []byte("null")},
	}

	return s.WithTx(ctx, func(ctx context.Context, kv KV) error {
		for _, d := range defaults {
			existing, err := kv.Get(ctx, d.key)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := kv.Set(ctx, d.key, d.value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return queryer{s.db}.Get(ctx, key)
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return queryer{s.db}.Set(ctx, key, value)
}

// WithTx runs fn against a transactional KV handle, committing on success
// and rolling back on error.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, queryer{tx})
	})
}

// queryer implements KV over any dbx.DBTX.
type queryer struct {
	db dbx.DBTX
}

func (q queryer) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := q.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (q queryer) Set(ctx context.Context, key string, value []byte) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}
