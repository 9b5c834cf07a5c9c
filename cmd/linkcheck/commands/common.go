package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"

	lcerrors "git.home.luguber.info/inful/linkcheck/internal/errors"
	"git.home.luguber.info/inful/linkcheck/internal/version"
)

// Usage is printed to stdout when no files are given.
const Usage = "Usage: linkcheck <markdown_file> [<markdown_file> ...]"

// CLI definition & flags. Every flag is optional; without flags the tool
// prints the plain text report.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (optional)" type:"path"`
	Format      string           `short:"f" help:"Output format (text or json)" placeholder:"FORMAT"`
	Syntax      string           `help:"Link extraction (inline or commonmark)" placeholder:"SYNTAX"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file after the run" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Watch       bool             `short:"w" help:"Re-check whenever files next to the documents change"`
	Debounce    time.Duration    `default:"500ms" help:"Quiet period before a watch re-check"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Files []string `arg:"" optional:"" name:"markdown_file" help:"Markdown files to check, in order"`
}

// Execute parses args, runs the check and returns the process exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exited, exitCode := false, 0

	parser, err := kong.New(&cli,
		kong.Name("linkcheck"),
		kong.Description("Verify that internal links in Markdown files point at existing files."),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
		kong.Exit(func(code int) {
			exited, exitCode = true, code
		}),
	)
	if err != nil {
		return newErrorAdapter(false, stderr).Handle(lcerrors.InternalError("building command line parser", err))
	}

	_, err = parser.Parse(args)
	if exited {
		// --help or --version already printed their output.
		return exitCode
	}
	if err != nil {
		_, _ = fmt.Fprintln(stdout, Usage)
		return newErrorAdapter(false, stderr).Handle(lcerrors.UsageError(err.Error()))
	}

	if len(cli.Files) == 0 {
		_, _ = fmt.Fprintln(stdout, Usage)
		return 1
	}

	return cli.run(stdout, stderr)
}

// newErrorAdapter builds the adapter used before the configured logger exists.
func newErrorAdapter(verbose bool, stderr io.Writer) *lcerrors.CLIErrorAdapter {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return lcerrors.NewCLIErrorAdapter(verbose, logger).WithOutput(stderr)
}
