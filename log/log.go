package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level is a logging severity, matching slog's four standard levels.
type Level string

const (
	// LevelError is the error severity.
	LevelError Level = "error"
	// LevelWarn is the warning severity.
	LevelWarn Level = "warn"
	// LevelInfo is the info severity.
	LevelInfo Level = "info"
	// LevelDebug is the debug severity.
	LevelDebug Level = "debug"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt (key=value) format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs as plain, unquoted text lines.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

var levelNames = map[string]Level{
	"error":   LevelError,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"info":    LevelInfo,
	"debug":   LevelDebug,
}

var formatNames = map[string]Format{
	"json":   FormatJSON,
	"logfmt": FormatLogfmt,
	"text":   FormatText,
}

// ParseLevel parses a log level string, case-insensitively.
func ParseLevel(level string) (Level, error) {
	lvl, ok := levelNames[strings.ToLower(level)]
	if !ok {
		return "", ErrUnknownLogLevel
	}

	return lvl, nil
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(format string) (Format, error) {
	f, ok := formatNames[strings.ToLower(format)]
	if !ok {
		return "", ErrUnknownLogFormat
	}

	return f, nil
}

// GetAllLevelStrings returns the canonical level strings, for CLI
// completion. [ParseLevel] also accepts "warning" as an alias of "warn".
func GetAllLevelStrings() []string {
	return []string{"debug", "error", "info", "warn"}
}

// GetAllFormatStrings returns every accepted format string, for CLI
// completion.
func GetAllFormatStrings() []string {
	return []string{"json", "logfmt", "text"}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Handler is the [slog.Handler] type [NewHandler] and
// [Config.NewHandler] build.
type Handler = slog.Handler

// NewHandler creates a [Handler] writing to w at the given level and
// format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level.slogLevel(),
	}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		return newTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// NewHandlerFromStrings parses levelStr/formatStr and creates a
// [Handler].
func NewHandlerFromStrings(w io.Writer, levelStr, formatStr string) (Handler, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	format, err := ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, level, format), nil
}
