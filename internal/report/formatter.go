// Package report renders link check results.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"git.home.luguber.info/inful/linkcheck/internal/linkcheck"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formatter formats link check results for output.
type Formatter interface {
	Format(w io.Writer, result *linkcheck.Result) error
}

// TextFormatter writes the plain report: a header plus one indented line per
// finding, or a single success line.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *linkcheck.Result) error {
	if !result.HasErrors() {
		_, err := fmt.Fprintln(w, "All links validated successfully")
		return err
	}

	if _, err := fmt.Fprintln(w, "Link validation errors found:"); err != nil {
		return err
	}
	for _, msg := range result.Messages() {
		if _, err := fmt.Fprintf(w, " %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	RunID string
}

// NewJSONFormatter creates a JSON formatter that stamps output with runID.
func NewJSONFormatter(runID string) *JSONFormatter {
	return &JSONFormatter{RunID: runID}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	RunID        string         `json:"run_id,omitempty"`
	Valid        bool           `json:"valid"`
	FilesTotal   int            `json:"files_total"`
	LinksTotal   int            `json:"links_total"`
	LinksByClass map[string]int `json:"links_by_class"`
	ErrorCount   int            `json:"error_count"`
	Errors       []JSONFinding  `json:"errors"`
}

// JSONFinding represents a single finding in JSON format.
type JSONFinding struct {
	Kind     string `json:"kind"`
	Source   string `json:"source"`
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
	Resolved string `json:"resolved,omitempty"`
	Cause    string `json:"cause,omitempty"`
	Message  string `json:"message"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *linkcheck.Result) error {
	output := JSONOutput{
		RunID:        f.RunID,
		Valid:        !result.HasErrors(),
		FilesTotal:   result.FilesTotal,
		LinksTotal:   result.LinksTotal,
		LinksByClass: make(map[string]int, len(result.LinksByClass)),
		ErrorCount:   len(result.Findings),
		Errors:       make([]JSONFinding, 0, len(result.Findings)),
	}

	for class, n := range result.LinksByClass {
		output.LinksByClass[string(class)] = n
	}

	for _, finding := range result.Findings {
		jf := JSONFinding{
			Kind:     string(finding.Kind),
			Source:   finding.Source,
			Text:     finding.Text,
			URL:      finding.URL,
			Resolved: finding.Resolved,
			Message:  finding.Message(),
		}
		if finding.Err != nil {
			jf.Cause = finding.Err.Error()
		}
		output.Errors = append(output.Errors, jf)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format, runID string) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(runID)
	default:
		return NewTextFormatter()
	}
}
