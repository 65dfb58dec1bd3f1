package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portfolio/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS contact_messages (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		message     TEXT NOT NULL,
		remote_addr TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS contact_messages_created_at_idx
		ON contact_messages (created_at DESC);
`

// PostgresRepository implements domain.ContactRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the contact table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// SaveContact persists a contact message to PostgreSQL
func (r *PostgresRepository) SaveContact(ctx context.Context, msg domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message, remote_addr, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.RemoteAddr, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save contact message: %w", err)
	}

	return nil
}

// ListContacts retrieves the newest contact messages from PostgreSQL
func (r *PostgresRepository) ListContacts(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	query := `
		SELECT id::text, name, email, message, remote_addr, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query contact messages: %w", err)
	}
	defer rows.Close()

	results := make([]domain.ContactMessage, 0, limit)
	for rows.Next() {
		var m domain.ContactMessage
		err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.RemoteAddr, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan contact row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate contact rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
