package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/pkg/utils"
)

const (
	maxNameLength    = 200
	maxMessageLength = 5000
	maxListLimit     = 100
)

// ContactService accepts and stores messages from the contact section
type ContactService struct {
	repo      ContactRepository
	publisher notify.Publisher
	logger    *zap.Logger
	recorder  metrics.Recorder
	now       func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(repo ContactRepository, publisher notify.Publisher, logger *zap.Logger, recorder metrics.Recorder) *ContactService {
	if publisher == nil {
		publisher = notify.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Submit validates, stores and announces a contact message
func (s *ContactService) Submit(ctx context.Context, req domain.ContactRequest, remoteAddr string) (domain.ContactMessage, error) {
	req, err := normalizeContact(req)
	if err != nil {
		s.recorder.IncContactSubmission(metrics.ResultInvalid)
		return domain.ContactMessage{}, err
	}

	msg := domain.ContactMessage{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		RemoteAddr: remoteAddr,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.SaveContact(ctx, msg); err != nil {
		s.recorder.IncContactSubmission(metrics.ResultFailed)
		return domain.ContactMessage{}, fmt.Errorf("contact: failed to save message: %w", err)
	}

	// The message is stored; a failed notification is only logged.
	if err := s.publisher.PublishContact(ctx, msg); err != nil {
		s.logger.Warn("Failed to publish contact message", zap.String("id", msg.ID), zap.Error(err))
	}

	s.recorder.IncContactSubmission(metrics.ResultSuccess)
	s.logger.Info("Contact message received", zap.String("id", msg.ID), zap.String("email", msg.Email))
	return msg, nil
}

// Recent lists stored messages, newest first
func (s *ContactService) Recent(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	limit = utils.Clamp(limit, 1, maxListLimit)
	msgs, err := s.repo.ListContacts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("contact: failed to list messages: %w", err)
	}
	return msgs, nil
}

func normalizeContact(req domain.ContactRequest) (domain.ContactRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		return req, fmt.Errorf("%w: name is required", ErrInvalidContact)
	case utf8.RuneCountInString(req.Name) > maxNameLength:
		return req, fmt.Errorf("%w: name is too long", ErrInvalidContact)
	case req.Message == "":
		return req, fmt.Errorf("%w: message is required", ErrInvalidContact)
	case utf8.RuneCountInString(req.Message) > maxMessageLength:
		return req, fmt.Errorf("%w: message exceeds %d characters", ErrInvalidContact, maxMessageLength)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email || !strings.Contains(req.Email[strings.LastIndex(req.Email, "@")+1:], ".") {
		return req, fmt.Errorf("%w: email address is not valid", ErrInvalidContact)
	}
	return req, nil
}
