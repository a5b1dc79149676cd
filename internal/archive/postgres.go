// internal/archive/postgres.go
package archive

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore persists extraction records in PostgreSQL.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore connects to the PostgreSQL archive at the DSN.
func NewPostgresStore(options Options) (*PostgresStore, error) {
	if options.DSN == "" {
		return nil, fmt.Errorf("postgres archive requires a connection string")
	}

	db, err := sql.Open("postgres", options.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	store := &PostgresStore{db: db, table: options.Table}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema() error {
	_, err := s.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		strategy TEXT NOT NULL,
		image_count INTEGER NOT NULL,
		video_count INTEGER NOT NULL,
		document_count INTEGER NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`, s.table))
	if err != nil {
		return fmt.Errorf("failed to create archive table: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	query := fmt.Sprintf(`INSERT INTO %s
		(id, url, strategy, image_count, video_count, document_count, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`, s.table)
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
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := fmt.Sprintf(`SELECT id, url, strategy, image_count, video_count,
		document_count, payload::text, created_at FROM %s
		ORDER BY created_at DESC LIMIT $1`, s.table)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
