package postgres

import (
	"context"
	"sort"
	"sync"

	"github.com/portfolio/backend/internal/domain"
)

// MockRepository implements domain.ContactRepository in memory for demo mode
type MockRepository struct {
	mu       sync.RWMutex
	messages []domain.ContactMessage
	capacity int
}

// NewMockRepository creates a new mock repository keeping the last 500 messages
func NewMockRepository() *MockRepository {
	return &MockRepository{capacity: 500}
}

// SaveContact keeps the message in memory
func (r *MockRepository) SaveContact(ctx context.Context, msg domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	if len(r.messages) > r.capacity {
		r.messages = r.messages[len(r.messages)-r.capacity:]
	}
	return nil
}

// ListContacts returns the newest messages first
func (r *MockRepository) ListContacts(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	r.mu.RLock()
	out := make([]domain.ContactMessage, len(r.messages))
	copy(out, r.messages)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op in mock mode
func (r *MockRepository) Close() error {
	return nil
}
