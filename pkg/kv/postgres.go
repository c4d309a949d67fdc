package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/codelish/institute/pkg/config"
)

// PostgresStore persists slots as rows of a single key-value table:
//
//	CREATE TABLE IF NOT EXISTS slots (key TEXT PRIMARY KEY, value TEXT NOT NULL)
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the slot table exists.
func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &PostgresStore{db: db}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure slots table: %w", err)
	}
	return store, nil
}

// NewPostgresStoreWithDB wraps an existing connection (used by tests).
func NewPostgresStoreWithDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM slots WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value string) error {
	const query = `INSERT INTO slots (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("remove slot %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
