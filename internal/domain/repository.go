package domain

import (
	"context"
)

// ContactRepository defines the interface for contact message persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type ContactRepository interface {
	// SaveContact persists a contact message
	SaveContact(ctx context.Context, msg ContactMessage) error

	// ListContacts returns the most recent messages, newest first
	ListContacts(ctx context.Context, limit int) ([]ContactMessage, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
