package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/core/markup"
)

// Config holds logger configuration.
type Config struct {
	Capacity int              // Maximum number of retained entries (default: 50)
	Writer   io.Writer        // Console output when no document is given (default: stdout)
	Clock    func() time.Time // Source of entry timestamps (default: time.Now)
}

// DefaultConfig returns default logger configuration.
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		Writer:   os.Stdout,
		Clock:    time.Now,
	}
}

// Logger renders log messages into a display surface and keeps the most
// recent entries in a bounded store. The surface always shows exactly the
// entries held by the store.
type Logger struct {
	mu      sync.Mutex
	store   *EntryStore
	surface Surface
	writer  io.Writer
	goLog   *log.Logger
	now     func() time.Time
	seq     uint64
}

// New binds a Logger to the surface registered under panelID in doc.
// A nil doc means there is no UI: entries are written as plain text to
// cfg.Writer instead. A missing panel yields a *NotFoundError.
func New(doc Document, panelID string, cfg Config) (*Logger, error) {
	var surface Surface
	if doc == nil {
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		surface = NewConsole(w)
	} else {
		s, ok := doc.Lookup(panelID)
		if !ok || s == nil {
			return nil, &NotFoundError{PanelID: panelID}
		}
		surface = s
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	l := &Logger{
		store:   NewEntryStore(cfg.Capacity),
		surface: surface,
		writer:  io.Discard, // Default to discarding the plain-text mirror
		now:     now,
	}
	l.goLog = log.New(l, "", 0) // The mirror writes through our Write method
	return l, nil
}

// NewConsoleLogger creates a Logger without a UI that writes plain text to w.
func NewConsoleLogger(w io.Writer) *Logger {
	cfg := DefaultConfig()
	cfg.Writer = w
	l, _ := New(nil, "", cfg)
	return l
}

// Write implements the io.Writer interface for the plain-text mirror.
func (l *Logger) Write(p []byte) (n int, err error) {
	if l.writer == nil {
		return len(p), nil
	}
	return l.writer.Write(p)
}

// SetWriter sets a destination that receives every entry as plain text, in
// addition to the surface.
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// GetWriter returns the current mirror writer.
func (l *Logger) GetWriter() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer
}

// Store returns the internal EntryStore.
func (l *Logger) Store() *EntryStore {
	return l.store
}

// Surface returns the surface the logger renders into.
func (l *Logger) Surface() Surface {
	return l.surface
}

// Log renders message at the given level and displays it. Unknown levels are
// shown in the neutral style. Log never fails and never panics on a value.
func (l *Logger) Log(level string, message any) {
	node := markup.Build(message, 0)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := newRenderedEntry(l.seq, l.now(), level, node)

	if evicted := l.store.Push(entry); evicted != nil {
		l.surface.Remove(evicted)
	}
	l.surface.Append(entry)
	l.surface.ScrollToEnd()
	l.surface.BindToggles(entry)

	l.goLog.Println(entry.PlainText())
}

// logf is the internal handler for formatted logging.
func (l *Logger) logf(level LogLevel, format string, v ...interface{}) {
	l.Log(level.String(), fmt.Sprintf(format, v...))
}

// Info logs an informational message.
func (l *Logger) Info(message any) {
	l.Log("info", message)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.logf(LevelInfo, format, v...)
}

// Warn logs a warning message.
func (l *Logger) Warn(message any) {
	l.Log("warn", message)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logf(LevelWarn, format, v...)
}

// Error logs an error message.
func (l *Logger) Error(message any) {
	l.Log("error", message)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logf(LevelError, format, v...)
}

// Debug logs a debug message.
func (l *Logger) Debug(message any) {
	l.Log("debug", message)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logf(LevelDebug, format, v...)
}

// ---- Global / Default Logger ----

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewConsoleLogger(io.Discard)
	debug         bool
)

// SetDefault replaces the default logger instance.
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Default returns the default logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDebug enables or disables the package-level Debug and Debugf helpers.
func SetDebug(enable bool) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	debug = enable
}

// IsDebugEnabled reports whether the package-level debug helpers log.
func IsDebugEnabled() bool {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return debug
}

// Info logs an informational message using the default logger.
func Info(message any) {
	Default().Info(message)
}

// Infof logs a formatted informational message using the default logger.
func Infof(format string, v ...interface{}) {
	Default().Infof(format, v...)
}

// Warn logs a warning message using the default logger.
func Warn(message any) {
	Default().Warn(message)
}

// Warnf logs a formatted warning message using the default logger.
func Warnf(format string, v ...interface{}) {
	Default().Warnf(format, v...)
}

// Error logs an error message using the default logger.
func Error(message any) {
	Default().Error(message)
}

// Errorf logs a formatted error message using the default logger.
func Errorf(format string, v ...interface{}) {
	Default().Errorf(format, v...)
}

// Debug logs a debug message using the default logger if debug is enabled.
func Debug(message any) {
	if !IsDebugEnabled() {
		return
	}
	Default().Debug(message)
}

// Debugf logs a formatted debug message using the default logger if debug
// is enabled.
func Debugf(format string, v ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	Default().Debugf(format, v...)
}
