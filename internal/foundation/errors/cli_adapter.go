package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter prints a command's error and exits with its category's code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr, exit: os.Exit}
}

// ExitCodeFor maps err to a process exit code. Unclassified errors exit 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	c, ok := AsClassified(err)
	if !ok {
		return 1
	}
	return specFor(c.category).exitCode
}

// FormatError renders err for the terminal. Verbose mode prints the full chain.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	c, ok := AsClassified(err)
	if !ok || a.verbose {
		return "Error: " + err.Error()
	}
	msg := "Error: " + c.Message()
	if path, ok := c.context.GetString("path"); ok {
		msg += " (" + path + ")"
	}
	return msg
}

// HandleError logs err, prints it and exits.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.log(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) log(err error) {
	c, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Command failed", slog.String("error", err.Error()))
		return
	}

	attrs := make([]slog.Attr, 0, len(c.context)+3)
	attrs = append(attrs, slog.String("category", string(c.category)))
	if c.CanRetry() {
		attrs = append(attrs, slog.Bool("retryable", true))
	}
	for k, v := range c.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	if c.cause != nil {
		attrs = append(attrs, slog.String("cause", c.cause.Error()))
	}

	attrs = append(attrs, slog.String("severity", string(c.severity)))
	a.logger.LogAttrs(context.Background(), slog.LevelError, c.Message(), attrs...)
}
