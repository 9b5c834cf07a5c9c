package linkcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"git.home.luguber.info/inful/linkcheck/internal/logfields"
	"git.home.luguber.info/inful/linkcheck/internal/markdown"
	"git.home.luguber.info/inful/linkcheck/internal/metrics"
)

// Checker validates the internal links of Markdown documents.
type Checker struct {
	syntax   markdown.Syntax
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithSyntax selects the link extraction strategy (markdown.SyntaxInline by default).
func WithSyntax(s markdown.Syntax) Option {
	return func(c *Checker) { c.syntax = s }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Checker) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger used for per-link debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		syntax:   markdown.SyntaxInline,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run checks every path in order and aggregates the findings. A failing file
// never stops the remaining files from being checked.
func (c *Checker) Run(paths []string) *Result {
	start := time.Now()
	result := &Result{
		Findings:     []Finding{},
		LinksByClass: make(map[Class]int),
	}

	for _, path := range paths {
		result.FilesTotal++
		result.Findings = append(result.Findings, c.checkFile(path, result)...)
	}

	elapsed := time.Since(start)
	c.recorder.ObserveRunDuration(elapsed)
	c.logger.Debug("Link check finished",
		logfields.Count(result.FilesTotal),
		slog.Int("findings", len(result.Findings)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return result
}

// CheckFile returns the findings for a single document. An empty slice means
// every internal link resolves to an existing file.
func (c *Checker) CheckFile(path string) []Finding {
	return c.checkFile(path, nil)
}

// Validate is CheckFile rendered to human-readable messages.
func (c *Checker) Validate(path string) []string {
	findings := c.CheckFile(path)
	messages := make([]string, 0, len(findings))
	for _, f := range findings {
		messages = append(messages, f.Message())
	}
	return messages
}

func (c *Checker) checkFile(path string, result *Result) []Finding {
	c.recorder.IncFilesChecked()
	source := displayPath(path)
	logger := c.logger.With(logfields.File(source))

	findings := make([]Finding, 0)
	report := func(f Finding) {
		c.recorder.IncFinding(string(f.Kind))
		findings = append(findings, f)
	}

	if _, err := os.Stat(path); isNotExist(err) {
		report(Finding{Kind: KindMissingFile, Source: source})
		return findings
	}

	content, err := readDocument(path)
	if err != nil {
		logger.Debug("Cannot read document", logfields.Error(err))
		report(Finding{Kind: KindReadError, Source: source, Err: err})
		return findings
	}

	links, err := markdown.ExtractLinks(content, markdown.Options{Syntax: c.syntax})
	if err != nil {
		report(Finding{Kind: KindReadError, Source: source, Err: err})
		return findings
	}

	for _, link := range links {
		class := Classify(link.Destination)
		c.recorder.IncLink(string(class))
		if result != nil {
			result.LinksTotal++
			result.LinksByClass[class]++
		}
		if !class.Checked() {
			continue
		}

		resolved, err := Resolve(source, link.Destination)
		if err != nil {
			logger.Debug("Invalid link target", logfields.URL(link.Destination), logfields.Error(err))
			report(Finding{Kind: KindInvalidPath, Source: source, Text: link.Text, URL: link.Destination, Err: err})
			continue
		}

		if _, err := os.Stat(resolved); err != nil {
			logger.Debug("Broken link",
				logfields.URL(link.Destination),
				logfields.LinkClass(string(class)),
				logfields.Resolved(resolved))
			report(Finding{
				Kind:     KindBrokenLink,
				Source:   source,
				Text:     link.Text,
				URL:      link.Destination,
				Resolved: resolved,
			})
		}
	}

	return findings
}

// isNotExist reports whether err means the path names no file, including a
// path that runs through a regular file.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// displayPath normalizes a path for messages the way a lexical path object
// would: empty and "." segments go, ".." segments stay.
func displayPath(p string) string {
	if p == "" {
		return "."
	}
	slashed := filepath.ToSlash(p)
	parts := make([]string, 0, strings.Count(slashed, "/")+1)
	for _, part := range strings.Split(slashed, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	out := strings.Join(parts, "/")
	if strings.HasPrefix(slashed, "/") {
		out = "/" + out
	} else if out == "" {
		out = "."
	}
	return filepath.FromSlash(out)
}

// readDocument reads a document and insists on UTF-8 content.
func readDocument(path string) ([]byte, error) {
	// #nosec G304 -- path is a document named on the command line
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("invalid UTF-8 at byte offset %d", invalidUTF8Offset(content))
	}
	return content, nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
