// Package notify fans contact submissions out to whatever delivers them
// (an email relay, a chat bot) over NATS.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/domain"
)

// ContactSubject is the subject contact submissions are published on.
const ContactSubject = "portfolio.contact.submitted"

// Publisher delivers contact submissions downstream.
type Publisher interface {
	PublishContact(ctx context.Context, msg domain.ContactMessage) error
	Close()
}

// NoopPublisher drops every message. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishContact(context.Context, domain.ContactMessage) error { return nil }
func (NoopPublisher) Close()                                                      {}

// ContactEvent is the payload published for each submission.
type ContactEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NATSPublisher publishes contact events on a NATS connection.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

// NewNATSPublisher connects to the server at url.
func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := nats.Connect(url,
		nats.Name("portfolio-backend"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to connect to NATS: %w", err)
	}
	logger.Info("NATS publisher connected", zap.String("url", url), zap.String("subject", ContactSubject))
	return &NATSPublisher{conn: conn, subject: ContactSubject, logger: logger}, nil
}

// PublishContact publishes msg and flushes so delivery errors surface here.
func (p *NATSPublisher) PublishContact(ctx context.Context, msg domain.ContactMessage) error {
	data, err := json.Marshal(ContactEvent{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("notify: failed to marshal contact event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("notify: failed to publish contact event: %w", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("notify: failed to flush: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", zap.Error(err))
	}
}
