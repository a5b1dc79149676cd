// internal/archive/sqlite.go
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists extraction records in a local SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteStore opens (creating if needed) the SQLite archive at the DSN
// path.
func NewSQLiteStore(options Options) (*SQLiteStore, error) {
	if options.DSN == "" {
		return nil, fmt.Errorf("sqlite archive requires a database path")
	}

	if dir := filepath.Dir(options.DSN); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", options.DSN+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, table: options.Table}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		strategy TEXT NOT NULL,
		image_count INTEGER NOT NULL,
		video_count INTEGER NOT NULL,
		document_count INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`, s.table))
	if err != nil {
		return fmt.Errorf("failed to create archive table: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s
		(id, url, strategy, image_count, video_count, document_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.URL, record.Strategy,
		record.ImageCount, record.VideoCount, record.DocumentCount,
		string(record.Payload), record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert archive record: %w", err)
	}
	return nil
}

// Recent implements Store.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := fmt.Sprintf(`SELECT id, url, strategy, image_count, video_count,
		document_count, payload, created_at FROM %s
		ORDER BY created_at DESC LIMIT ?`, s.table)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanRecords reads the shared SQL row shape used by all SQL backends.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var payload string
		if err := rows.Scan(&record.ID, &record.URL, &record.Strategy,
			&record.ImageCount, &record.VideoCount, &record.DocumentCount,
			&payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive record: %w", err)
		}
		record.Payload = []byte(payload)
		records = append(records, record)
	}
	return records, rows.Err()
}
