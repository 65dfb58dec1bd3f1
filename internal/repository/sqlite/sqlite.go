package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/portfolio/backend/internal/domain"
)

// timeLayout is fixed width so created_at sorts as text in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements domain.ContactRepository on a local SQLite file
// (pure Go driver modernc.org/sqlite). Used when no Postgres is configured.
type SQLiteRepository struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema.
func New(path string, logger *zap.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	// One writer; SQLite serialises writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		logger.Warn("Could not set WAL mode", zap.Error(err))
	}

	schema := `CREATE TABLE IF NOT EXISTS contact_messages (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		message     TEXT NOT NULL,
		remote_addr TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveContact persists a contact message
func (r *SQLiteRepository) SaveContact(ctx context.Context, msg domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages(id, name, email, message, remote_addr, created_at) VALUES(?,?,?,?,?,?)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.RemoteAddr, msg.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save contact message: %w", err)
	}
	return nil
}

// ListContacts returns the newest messages first
func (r *SQLiteRepository) ListContacts(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, message, remote_addr, created_at FROM contact_messages ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query contact messages: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ContactMessage, 0, limit)
	for rows.Next() {
		var (
			m  domain.ContactMessage
			ts string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.RemoteAddr, &ts); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan contact row: %w", err)
		}
		if t, err := time.Parse(timeLayout, ts); err == nil {
			m.CreatedAt = t
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate contact rows: %w", err)
	}
	return out, nil
}

// Health checks the database handle
func (r *SQLiteRepository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
