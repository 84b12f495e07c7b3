package logging

import (
	"strings"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/core/markup"
)

// LogLevel defines the severity of a log entry.
type LogLevel int

// Enum for log levels. LevelUnknown covers every label outside the fixed set.
const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelUnknown
)

// TimestampLayout is the wall-clock format of the timestamp fragment.
const TimestampLayout = "15:04:05.000"

// String returns the string representation of a LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StyleClass returns the CSS class of the level fragment.
func (l LogLevel) StyleClass() string {
	switch l {
	case LevelDebug:
		return "adl-text-debug"
	case LevelInfo:
		return "adl-text-info"
	case LevelWarn:
		return "adl-text-warn"
	case LevelError:
		return "adl-text-error"
	default:
		return "adl-text-gray"
	}
}

// ParseLevel maps a level label to a LogLevel, ignoring case.
// Unrecognised labels yield LevelUnknown.
func ParseLevel(label string) LogLevel {
	switch strings.ToLower(label) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelUnknown
	}
}

// RenderedEntry is a single log message rendered once at log time.
// It is never modified after creation.
type RenderedEntry struct {
	Seq       uint64
	Timestamp time.Time
	Level     LogLevel
	// Label is the caller's level label, upper-cased.
	Label   string
	Message *markup.Node
	Markup  string
}

func newRenderedEntry(seq uint64, ts time.Time, label string, message *markup.Node) *RenderedEntry {
	e := &RenderedEntry{
		Seq:       seq,
		Timestamp: ts,
		Level:     ParseLevel(label),
		Label:     strings.ToUpper(label),
		Message:   message,
	}
	e.Markup = e.RenderWith(message)
	return e
}

// RenderWith composes the entry markup around an alternative message tree,
// typically one carrying toggle state.
func (e *RenderedEntry) RenderWith(message *markup.Node) string {
	var sb strings.Builder
	sb.WriteString(`<span class="adl-timestamp">[`)
	sb.WriteString(e.Timestamp.UTC().Format(TimestampLayout))
	sb.WriteString(`]</span> <span class="adl-level `)
	sb.WriteString(e.Level.StyleClass())
	sb.WriteString(`">[`)
	sb.WriteString(markup.Escape(e.Label))
	sb.WriteString(`]</span> <span class="adl-message">`)
	sb.WriteString(markup.Render(message))
	sb.WriteString(`</span>`)
	return sb.String()
}

// PlainText returns the entry with all markup stripped.
func (e *RenderedEntry) PlainText() string {
	return markup.Strip(e.Markup)
}
