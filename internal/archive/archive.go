// internal/archive/archive.go
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Record is one persisted extraction: which post, which strategy served
// it, how much media it yielded, and the full result payload as JSON.
type Record struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Strategy      string    `json:"strategy"`
	ImageCount    int       `json:"image_count"`
	VideoCount    int       `json:"video_count"`
	DocumentCount int       `json:"document_count"`
	Payload       []byte    `json:"payload"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store persists extraction records. Implementations exist for SQLite,
// PostgreSQL, MySQL, and MongoDB.
type Store interface {
	Save(ctx context.Context, record *Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend    string
	DSN        string
	Table      string // SQL backends
	Database   string // MongoDB
	Collection string // MongoDB
}

// New creates the store selected by options.Backend. An empty backend
// returns nil with no error: archiving is optional.
func New(options Options) (Store, error) {
	switch strings.ToLower(options.Backend) {
	case "":
		return nil, nil
	case "sqlite":
		return NewSQLiteStore(options)
	case "postgres", "postgresql":
		return NewPostgresStore(options)
	case "mysql":
		return NewMySQLStore(options)
	case "mongodb":
		return NewMongoStore(options)
	default:
		return nil, fmt.Errorf("unknown archive backend: %s", options.Backend)
	}
}
