package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/linkcheck/internal/logfields"
	"git.home.luguber.info/inful/linkcheck/internal/retry"
)

// NATSPublisher publishes events to a JetStream subject.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	policy  retry.Policy
	logger  *slog.Logger
}

// NewNATSPublisher connects to url and prepares publishing on subject.
// A stream capturing subject must already exist on the server.
func NewNATSPublisher(url, subject string, timeout time.Duration, logger *slog.Logger) (*NATSPublisher, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(url, nats.Name("linkcheck"), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	logger.Debug("NATS publisher connected", logfields.URL(url), logfields.Subject(subject))
	return &NATSPublisher{conn: conn, js: js, subject: subject, logger: logger}, nil
}

// WithRetry makes failed publishes retry according to policy. Without it each
// event is attempted once.
func (p *NATSPublisher) WithRetry(policy retry.Policy) *NATSPublisher {
	p.policy = policy
	return p
}

// PublishBrokenLink publishes a single event as JSON.
func (p *NATSPublisher) PublishBrokenLink(ctx context.Context, event *BrokenLinkEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	attempt := 0
	err = p.policy.Do(ctx, func(ctx context.Context) error {
		attempt++
		_, err := p.js.Publish(ctx, p.subject, data)
		if err != nil && attempt <= p.policy.MaxRetries {
			p.logger.Debug("Publish failed, retrying", logfields.URL(event.URL), logfields.Error(err))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published broken link event",
		logfields.URL(event.URL),
		logfields.File(event.SourcePath),
		logfields.Kind(event.Kind))
	return nil
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
