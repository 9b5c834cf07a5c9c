package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/linkcheck/internal/linkcheck"
)

// Publisher delivers broken link events.
type Publisher interface {
	PublishBrokenLink(ctx context.Context, event *BrokenLinkEvent) error
	Close() error
}

// NoopPublisher drops every event (default when no NATS URL is configured).
type NoopPublisher struct{}

func (NoopPublisher) PublishBrokenLink(context.Context, *BrokenLinkEvent) error { return nil }
func (NoopPublisher) Close() error                                              { return nil }

// Notify publishes one event per finding, in order. Every finding is
// attempted; failures are joined into the returned error.
func Notify(ctx context.Context, pub Publisher, runID string, findings []linkcheck.Finding) (int, error) {
	now := time.Now()
	published := 0
	var errs []error
	for i, f := range findings {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%d events not sent: %w", len(findings)-i, err))
			break
		}
		if err := pub.PublishBrokenLink(ctx, NewBrokenLinkEvent(runID, f, now)); err != nil {
			errs = append(errs, err)
			continue
		}
		published++
	}
	return published, errors.Join(errs...)
}
