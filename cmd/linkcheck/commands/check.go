package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/linkcheck/internal/config"
	lcerrors "git.home.luguber.info/inful/linkcheck/internal/errors"
	"git.home.luguber.info/inful/linkcheck/internal/events"
	"git.home.luguber.info/inful/linkcheck/internal/linkcheck"
	"git.home.luguber.info/inful/linkcheck/internal/logfields"
	"git.home.luguber.info/inful/linkcheck/internal/markdown"
	"git.home.luguber.info/inful/linkcheck/internal/metrics"
	"git.home.luguber.info/inful/linkcheck/internal/report"
	"git.home.luguber.info/inful/linkcheck/internal/retry"
	"git.home.luguber.info/inful/linkcheck/internal/watch"
)

// session holds what one invocation shares between repeated checks.
type session struct {
	cfg      *config.Config
	files    []string
	stdout   io.Writer
	logger   *slog.Logger
	adapter  *lcerrors.CLIErrorAdapter
	checker  *linkcheck.Checker
	registry *metrics.PrometheusRecorder
}

func (c *CLI) run(stdout, stderr io.Writer) int {
	cfg, err := c.loadConfig()
	if err != nil {
		return newErrorAdapter(c.Verbose, stderr).Handle(err)
	}

	logger := cfg.Logging.NewLogger(stderr)
	s := &session{
		cfg:     cfg,
		files:   c.Files,
		stdout:  stdout,
		logger:  logger,
		adapter: lcerrors.NewCLIErrorAdapter(c.Verbose, logger).WithOutput(stderr),
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.File != "" {
		s.registry = metrics.NewPrometheusRecorder(nil)
		recorder = s.registry
	}
	s.checker = linkcheck.New(
		linkcheck.WithSyntax(markdown.Syntax(cfg.Syntax)),
		linkcheck.WithRecorder(recorder),
		linkcheck.WithLogger(logger),
	)

	code := s.check()
	if !c.Watch {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(c.Files, c.Debounce, func(context.Context) {
		code = s.check()
	}, logger)
	if err != nil {
		return s.adapter.Handle(lcerrors.Wrap(err, lcerrors.CategoryFileSystem, lcerrors.SeverityFatal, "cannot watch documents"))
	}
	if err := w.Run(ctx); err != nil {
		return s.adapter.Handle(lcerrors.Wrap(err, lcerrors.CategoryFileSystem, lcerrors.SeverityFatal, "cannot watch documents"))
	}
	return code
}

// check performs one full pass over the input files and returns the exit status.
func (s *session) check() int {
	runID := uuid.NewString()
	logger := s.logger.With(logfields.RunID(runID))

	result := s.checker.Run(s.files)
	logger.Info("Link check completed",
		slog.Int("files", result.FilesTotal),
		slog.Int("links", result.LinksTotal),
		logfields.Count(len(result.Findings)))

	if err := report.NewFormatter(s.cfg.Format, runID).Format(s.stdout, result); err != nil {
		return s.adapter.Handle(lcerrors.ReportWriteError(err))
	}

	if s.registry != nil {
		if err := s.registry.WriteTextfile(s.cfg.Metrics.File); err != nil {
			return s.adapter.Handle(lcerrors.MetricsWriteError(s.cfg.Metrics.File, err))
		}
		logger.Debug("Metrics written", logfields.Path(s.cfg.Metrics.File))
	}

	if s.cfg.Events.Enabled() && result.HasErrors() {
		publishFindings(s.cfg, runID, result.Findings, logger)
	}

	if result.HasErrors() {
		return 1
	}
	return 0
}

// loadConfig layers CLI flags over the file and environment configuration.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.Syntax != "" {
		cfg.Syntax = c.Syntax
	}
	if c.MetricsFile != "" {
		cfg.Metrics.File = c.MetricsFile
	}
	if c.Verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// publishFindings sends findings to NATS. Failures are logged and never
// change the exit status.
func publishFindings(cfg *config.Config, runID string, findings []linkcheck.Finding, logger *slog.Logger) {
	timeout, _ := cfg.EventTimeout()
	policy, err := retry.FromConfig(cfg.Events.Retry)
	if err != nil {
		policy = retry.DefaultPolicy()
	}

	pub, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject, timeout, logger)
	if err != nil {
		logger.Warn("Skipping link events", logfields.Error(lcerrors.EventPublishError(cfg.Events.Subject, err)))
		return
	}
	pub.WithRetry(policy)
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", logfields.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sent, err := events.Notify(ctx, pub, runID, findings)
	if err != nil {
		logger.Warn("Some link events were not published",
			logfields.Count(sent),
			logfields.Error(lcerrors.EventPublishError(cfg.Events.Subject, err)))
		return
	}
	logger.Info("Published link events", logfields.Count(sent), logfields.Subject(cfg.Events.Subject))
}
