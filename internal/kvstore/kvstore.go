// Package kvstore keeps small integer values in a SQLite file, grouped by
// namespace. It is the durable store behind bookmarks.
package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "rtxt.db"

const (
	maxRetries  = 5
	initialWait = 50 * time.Millisecond
	busyTimeout = 5000 // milliseconds
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    namespace  TEXT    NOT NULL,
    key        TEXT    NOT NULL,
    value      INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,  -- UnixNano
    PRIMARY KEY (namespace, key)
);
`

// Store is a namespaced integer key-value store.
type Store struct {
	conn *sql.DB
}

// Open creates or opens the database in dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, FileName)

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", dbPath, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer is all the pager ever needs.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	ctx := context.Background()
	if err := s.pingWithRetry(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// PutInt stores value under (namespace, key), replacing any previous value.
func (s *Store) PutInt(ctx context.Context, namespace, key string, value int) error {
	const q = `
INSERT INTO kv (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	err := withRetry(ctx, func() error {
		_, err := s.conn.ExecContext(ctx, q, namespace, key, value, time.Now().UnixNano())
		return err
	})
	if err != nil {
		return fmt.Errorf("kv put %s/%s: %w", namespace, key, err)
	}
	return nil
}

// GetInt returns the value under (namespace, key). ok is false when the key
// is absent.
func (s *Store) GetInt(ctx context.Context, namespace, key string) (value int, ok bool, err error) {
	row := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("kv get %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, namespace, key string) error {
	err := withRetry(ctx, func() error {
		_, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
		return err
	})
	if err != nil {
		return fmt.Errorf("kv delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Keys lists the keys of a namespace in sorted order.
func (s *Store) Keys(ctx context.Context, namespace string) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT key FROM kv WHERE namespace = ? ORDER BY key`, namespace)
	if err != nil {
		return nil, fmt.Errorf("kv keys %s: %w", namespace, err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("kv keys %s: %w", namespace, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv keys %s: %w", namespace, err)
	}
	return keys, nil
}

func (s *Store) pingWithRetry(ctx context.Context) error {
	wait := initialWait
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = s.conn.PingContext(ctx); err == nil {
			return nil
		}
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
		wait *= 2
	}
	return err
}

// withRetry re-runs fn while SQLite reports the database as busy.
func withRetry(ctx context.Context, fn func() error) error {
	wait := initialWait
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if !IsBusyError(err) {
			return err
		}
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
		wait *= 2
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
