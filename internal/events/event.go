// Package events publishes link check findings to NATS for downstream
// processing (issue creation, dashboards).
package events

import (
	"time"

	"git.home.luguber.info/inful/linkcheck/internal/linkcheck"
)

// BrokenLinkEvent represents one finding of a link check run.
type BrokenLinkEvent struct {
	RunID string `json:"run_id"`
	Kind  string `json:"kind"` // broken_link, invalid_path, missing_file or read_error

	// Source document
	SourcePath string `json:"source_path"`

	// Link information (empty for file-level findings)
	LinkText     string `json:"link_text,omitempty"`
	URL          string `json:"url,omitempty"`
	ResolvedPath string `json:"resolved_path,omitempty"`

	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBrokenLinkEvent converts a finding into an event stamped with runID.
func NewBrokenLinkEvent(runID string, f linkcheck.Finding, at time.Time) *BrokenLinkEvent {
	return &BrokenLinkEvent{
		RunID:        runID,
		Kind:         string(f.Kind),
		SourcePath:   f.Source,
		LinkText:     f.Text,
		URL:          f.URL,
		ResolvedPath: f.Resolved,
		Message:      f.Message(),
		Timestamp:    at.UTC(),
	}
}
