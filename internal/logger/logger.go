// Package logger provides leveled logging for interpretation runs.
//
// Loggers are thread-safe and filter by level (trace, debug, info, warn,
// error). The interpretation engine logs every knowledge-store miss and
// text fallback at warn level; transports choose console or file output.
package logger

import "strings"

// Logger is the logging interface consumed by the interpretation engine
// and the CLI.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Numeric log levels for filtering.
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// normalizeLogLevel lowercases and validates a log level string.
// Empty or invalid levels default to "info".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Nop is a Logger that discards everything. Useful as a default for
// library consumers that do not care about observability.
type Nop struct{}

func (Nop) Tracef(string, ...any) {}
func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}
