package logger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// noopFunc is a reusable no-op function to avoid allocations
var noopFunc = func() {}

// Trace returns a function that logs operation duration when called.
// Returns a no-op function when TRACE level is disabled to avoid overhead.
// Usage: defer logger.Trace("operation")()
func Trace(name string) func() {
	l := current()
	if !l.shouldLog(LogLevelTrace) {
		return noopFunc
	}
	start := time.Now()
	return func() {
		l.logWithLevel(LogLevelTrace, "%s: %v", name, time.Since(start))
	}
}

// MaxLogLines defines the maximum number of lines to keep in a log file
const MaxLogLines = 5000

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a level name. An empty string selects INFO.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LogLevelTrace, nil
	case "DEBUG":
		return LogLevelDebug, nil
	case "", "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes timestamped, leveled lines to an io.Writer. When the writer
// is a regular file opened by NewFileLogger, the file is trimmed to the
// newest MaxLogLines lines as it grows.
type Logger struct {
	out       io.Writer
	file      *os.File
	lineCount int
	level     LogLevel
	mutex     sync.Mutex
}

// defaultLogger is used until SetDefault installs another logger
var defaultLogger = New(os.Stderr, LogLevelInfo)

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// New creates a Logger writing to w.
func New(w io.Writer, level LogLevel) *Logger {
	return &Logger{out: w, level: level}
}

// NewFileLogger opens (or creates) path for appending and returns a Logger
// writing to it. Caller must Close the logger.
func NewFileLogger(path string, level LogLevel) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := &Logger{out: f, file: f, level: level}
	l.countExistingLines()
	return l, nil
}

// SetDefault makes l the target of the package-level logging functions.
// Passing nil restores the stderr logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

func current() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return defaultLogger
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
}

// shouldLog returns true if the given level should be logged
func (l *Logger) shouldLog(level LogLevel) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return level >= l.level
}

// logWithLevel logs a message at the specified level
func (l *Logger) logWithLevel(level LogLevel, format string, v ...any) {
	if !l.shouldLog(level) {
		return
	}
	msg := fmt.Sprintf("%s [%s] %s\n", time.Now().Format("2006/01/02 15:04:05"), level.String(), fmt.Sprintf(format, v...))
	_, _ = l.Write([]byte(msg))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...any) {
	l.logWithLevel(LogLevelDebug, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...any) {
	l.logWithLevel(LogLevelInfo, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...any) {
	l.logWithLevel(LogLevelWarn, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...any) {
	l.logWithLevel(LogLevelError, format, v...)
}

// Package-level logging functions that use the installed logger (or stderr if none)
func Debug(format string, v ...any) { current().Debug(format, v...) }

func Info(format string, v ...any) { current().Info(format, v...) }

func Warn(format string, v ...any) { current().Warn(format, v...) }

func Error(format string, v ...any) { current().Error(format, v...) }

// countExistingLines counts the number of lines already in the log file
func (l *Logger) countExistingLines() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.file.Seek(0, io.SeekStart)
	scanner := bufio.NewScanner(l.file)

	count := 0
	for scanner.Scan() {
		count++
	}
	l.lineCount = count

	l.file.Seek(0, io.SeekEnd)
}

// Write implements io.Writer interface
func (l *Logger) Write(p []byte) (n int, err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	n, err = l.out.Write(p)
	if err != nil || l.file == nil {
		return n, err
	}

	l.lineCount += strings.Count(string(p), "\n")
	if l.lineCount > MaxLogLines {
		l.rotateLogFile()
	}

	return n, err
}

// rotateLogFile trims the log file to keep only the last MaxLogLines lines
func (l *Logger) rotateLogFile() {
	l.file.Seek(0, io.SeekStart)
	scanner := bufio.NewScanner(l.file)
	var lines []string

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if len(lines) > MaxLogLines {
		lines = lines[len(lines)-MaxLogLines:]
	}

	l.file.Truncate(0)
	l.file.Seek(0, io.SeekStart)

	for _, line := range lines {
		l.file.WriteString(line + "\n")
	}

	l.lineCount = len(lines)
}

// Close closes the underlying file, if the logger owns one
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
