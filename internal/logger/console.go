package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger writes leveled, timestamped log lines to a writer.
// Every line is prefixed with [HH:MM:SS] and the level tag. Color output
// is enabled automatically when writing to a TTY.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to the provided writer.
// If writer is nil, messages are silently discarded. logLevel sets the
// minimum level to output; empty or invalid values default to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether the writer is a color-capable TTY.
// Only os.Stdout and os.Stderr are ever considered terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	// color.NoColor honours the NO_COLOR convention
	return !color.NoColor && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// shouldLog reports whether a message at messageLevel passes the filter.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// levelColors maps level tags to their terminal color functions.
var levelColors = map[string]func(format string, a ...interface{}) string{
	"trace": color.HiBlackString,
	"debug": color.CyanString,
	"info":  color.GreenString,
	"warn":  color.YellowString,
	"error": color.RedString,
}

// log writes a single formatted line if the level passes the filter.
func (cl *ConsoleLogger) log(level, format string, args ...any) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	tag := fmt.Sprintf("%-5s", level)
	if cl.colorOutput {
		if colorize, ok := levelColors[level]; ok {
			tag = colorize("%-5s", level)
		}
	}

	fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, tag, fmt.Sprintf(format, args...))
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.log("trace", format, args...)
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.log("debug", format, args...)
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.log("info", format, args...)
}

// Warnf logs at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.log("warn", format, args...)
}

// Errorf logs at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.log("error", format, args...)
}
