package config

import (
	"log/slog"

	"git.home.luguber.info/inful/showcase/internal/foundation/normalization"
)

// LogLevel is the logging.level setting.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var slogLevels = map[LogLevel]slog.Level{
	LogLevelDebug: slog.LevelDebug,
	LogLevelInfo:  slog.LevelInfo,
	LogLevelWarn:  slog.LevelWarn,
	LogLevelError: slog.LevelError,
}

var logLevels = normalization.NewEnum(LogLevelInfo, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError).
	Alias("warning", LogLevelWarn)

// SlogLevel maps the level onto slog. Unknown levels log at Info.
func (l LogLevel) SlogLevel() slog.Level {
	return slogLevels[l]
}

// LogFormat is the logging.format setting.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = normalization.NewEnum(LogFormatText, LogFormatText, LogFormatJSON)
