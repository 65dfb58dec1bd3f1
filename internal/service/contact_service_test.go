package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/domain"
)

type memoryRepo struct {
	mu      sync.Mutex
	saved   []domain.ContactMessage
	saveErr error
	limit   int
}

func (r *memoryRepo) SaveContact(_ context.Context, msg domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, msg)
	return nil
}

func (r *memoryRepo) ListContacts(_ context.Context, limit int) ([]domain.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limit = limit
	return r.saved, nil
}

func (r *memoryRepo) Health(context.Context) error { return nil }
func (r *memoryRepo) Close() error                 { return nil }

type recordingPublisher struct {
	published []domain.ContactMessage
	err       error
}

func (p *recordingPublisher) PublishContact(_ context.Context, msg domain.ContactMessage) error {
	p.published = append(p.published, msg)
	return p.err
}

func (p *recordingPublisher) Close() {}

func validRequest() domain.ContactRequest {
	return domain.ContactRequest{
		Name:    "  Ada Lovelace ",
		Email:   "ada@example.com",
		Message: "Let's build something.",
	}
}

func TestSubmitStoresAndPublishes(t *testing.T) {
	repo := &memoryRepo{}
	pub := &recordingPublisher{}
	svc := NewContactService(repo, pub, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	msg, err := svc.Submit(context.Background(), validRequest(), "203.0.113.9")
	require.NoError(t, err)

	assert.Len(t, msg.ID, 36)
	assert.Equal(t, "Ada Lovelace", msg.Name)
	assert.Equal(t, "203.0.113.9", msg.RemoteAddr)
	assert.Equal(t, time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC), msg.CreatedAt)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, msg, repo.saved[0])
	require.Len(t, pub.published, 1)
	assert.Equal(t, msg.ID, pub.published[0].ID)
}

func TestSubmitValidation(t *testing.T) {
	cases := map[string]func(*domain.ContactRequest){
		"no name":          func(r *domain.ContactRequest) { r.Name = "   " },
		"no message":       func(r *domain.ContactRequest) { r.Message = "" },
		"long message":     func(r *domain.ContactRequest) { r.Message = strings.Repeat("x", maxMessageLength+1) },
		"bad email":        func(r *domain.ContactRequest) { r.Email = "not-an-email" },
		"no dot in domain": func(r *domain.ContactRequest) { r.Email = "ada@localhost" },
		"display name":     func(r *domain.ContactRequest) { r.Email = "Ada <ada@example.com>" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &memoryRepo{}
			svc := NewContactService(repo, nil, nil, nil)
			req := validRequest()
			mutate(&req)

			_, err := svc.Submit(context.Background(), req, "")
			assert.ErrorIs(t, err, ErrInvalidContact)
			assert.Empty(t, repo.saved)
		})
	}
}

func TestSubmitStorageFailure(t *testing.T) {
	repo := &memoryRepo{saveErr: errors.New("disk full")}
	pub := &recordingPublisher{}
	svc := NewContactService(repo, pub, nil, nil)

	_, err := svc.Submit(context.Background(), validRequest(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, pub.published)
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	repo := &memoryRepo{}
	pub := &recordingPublisher{err: errors.New("nats down")}
	svc := NewContactService(repo, pub, nil, nil)

	_, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestRecentClampsLimit(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewContactService(repo, nil, nil, nil)

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.limit)

	_, err = svc.Recent(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, repo.limit)
}
