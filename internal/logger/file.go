package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger writes leveled log lines to a timestamped run log file and
// maintains a latest.log symlink pointing at the most recent run. It is
// thread-safe and filters by level like ConsoleLogger.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing under .stellium/logs/ with
// the default "info" level.
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(filepath.Join(".stellium", "logs"), "info")
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log
// directory and level. The directory is created if missing; a run log
// named run-YYYYMMDD-HHMMSS.log is opened and latest.log is repointed.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Repoint latest.log at the new run file
	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.write(fmt.Sprintf("=== Stellium Run Log ===\nStarted at: %s\n\n", time.Now().Format(time.RFC3339)))
	return fl, nil
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

func (fl *FileLogger) write(s string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fmt.Fprint(fl.runLog, s)
}

func (fl *FileLogger) log(level, format string, args ...any) {
	if logLevelToInt(level) < logLevelToInt(fl.logLevel) {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	fl.write(fmt.Sprintf("[%s] %-5s %s\n", timestamp, level, fmt.Sprintf(format, args...)))
}

// Tracef logs at trace level.
func (fl *FileLogger) Tracef(format string, args ...any) {
	fl.log("trace", format, args...)
}

// Debugf logs at debug level.
func (fl *FileLogger) Debugf(format string, args ...any) {
	fl.log("debug", format, args...)
}

// Infof logs at info level.
func (fl *FileLogger) Infof(format string, args ...any) {
	fl.log("info", format, args...)
}

// Warnf logs at warn level.
func (fl *FileLogger) Warnf(format string, args ...any) {
	fl.log("warn", format, args...)
}

// Errorf logs at error level.
func (fl *FileLogger) Errorf(format string, args ...any) {
	fl.log("error", format, args...)
}
