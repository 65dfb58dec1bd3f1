package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/domain"
)

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishContact(context.Background(), domain.ContactMessage{ID: "x"}))
	p.Close()
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notify: failed to connect to NATS")
}

func TestContactEventOmitsRemoteAddr(t *testing.T) {
	data, err := json.Marshal(ContactEvent{
		ID:        "3f1c",
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hi",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"3f1c","name":"Ada","email":"ada@example.com","message":"Hi","created_at":"2025-01-02T03:04:05Z"}`, string(data))
}
