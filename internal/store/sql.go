// internal/store/sql.go
//
// SQL backend.
//
// Context
// -------
// One table holds every setting:
//
//	theme_config (`key` VARCHAR(191) PK, value TEXT)
//
// `key` is a reserved word in MySQL, so it is always back-quoted.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SQLStore is safe for concurrent use; the pool does the locking.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQL wraps an open pool.
func NewSQL(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

// Migrate creates the table when missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	const q = "CREATE TABLE IF NOT EXISTS theme_config (" +
		"`key` VARCHAR(191) NOT NULL PRIMARY KEY, " +
		"value TEXT NOT NULL)"
	_, err := s.db.ExecContext(ctx, q)
	return err
}

// Get returns the value for key or "" when absent.
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	const q = "SELECT value FROM theme_config WHERE `key` = ? LIMIT 1"
	var v string
	if err := s.db.GetContext(ctx, &v, q, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

// Set upserts key.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	const q = "INSERT INTO theme_config (`key`, value) VALUES (?, ?) " +
		"ON DUPLICATE KEY UPDATE value = VALUES(value)"
	_, err := s.db.ExecContext(ctx, q, key, value)
	return err
}

// Delete removes key; missing keys are not an error.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	const q = "DELETE FROM theme_config WHERE `key` = ?"
	_, err := s.db.ExecContext(ctx, q, key)
	return err
}

// All returns every row as a map.
func (s *SQLStore) All(ctx context.Context) (map[string]string, error) {
	const q = "SELECT `key`, value FROM theme_config"
	rows := make([]struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}, 0, 8)
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// Close closes the pool.
func (s *SQLStore) Close() error { return s.db.Close() }
