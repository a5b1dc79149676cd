// internal/archive/mysql.go
package archive

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLStore persists extraction records in MySQL.
type MySQLStore struct {
	db    *sql.DB
	table string
}

// NewMySQLStore connects to the MySQL archive at the DSN. The DSN should
// carry parseTime=true so timestamps scan into time.Time.
func NewMySQLStore(options Options) (*MySQLStore, error) {
	if options.DSN == "" {
		return nil, fmt.Errorf("mysql archive requires a connection string")
	}

	db, err := sql.Open("mysql", options.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	store := &MySQLStore{db: db, table: options.Table}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *MySQLStore) ensureSchema() error {
	_, err := s.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ("+
		"id VARCHAR(64) PRIMARY KEY, "+
		"url TEXT NOT NULL, "+
		"strategy VARCHAR(32) NOT NULL, "+
		"image_count INT NOT NULL, "+
		"video_count INT NOT NULL, "+
		"document_count INT NOT NULL, "+
		"payload JSON NOT NULL, "+
		"created_at TIMESTAMP NOT NULL"+
		")", s.table))
	if err != nil {
		return fmt.Errorf("failed to create archive table: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *MySQLStore) Save(ctx context.Context, record *Record) error {
	query := fmt.Sprintf(`INSERT IGNORE INTO %s
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
func (s *MySQLStore) Recent(ctx context.Context, limit int) ([]Record, error) {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
