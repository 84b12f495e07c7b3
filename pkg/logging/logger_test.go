package logging_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/core/markup"
	"github.com/adl-tools/pretty-logger/pkg/logging"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

func newPanelLogger(t *testing.T, capacity int) (*logging.Logger, *logging.HTMLPanel) {
	t.Helper()
	panel := logging.NewHTMLPanel("debug-panel")
	doc := logging.NewRegistry()
	doc.Register(panel.ID(), panel)

	cfg := logging.DefaultConfig()
	cfg.Capacity = capacity
	cfg.Clock = func() time.Time { return fixedTime }

	logger, err := logging.New(doc, panel.ID(), cfg)
	if err != nil {
		t.Fatalf("New returned an unexpected error: %v", err)
	}
	return logger, panel
}

func TestNewMissingPanel(t *testing.T) {
	_, err := logging.New(logging.NewRegistry(), "nope", logging.DefaultConfig())
	if err == nil {
		t.Fatalf("Expected an error for a missing panel")
	}
	if !errors.Is(err, logging.ErrPanelNotFound) {
		t.Errorf("Expected ErrPanelNotFound, got %v", err)
	}
	var nf *logging.NotFoundError
	if !errors.As(err, &nf) || nf.PanelID != "nope" {
		t.Errorf("Expected *NotFoundError for 'nope', got %#v", err)
	}
	if err.Error() != "debug panel with id 'nope' not found" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestNewWithoutDocumentWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig()
	cfg.Writer = &buf
	cfg.Clock = func() time.Time { return fixedTime }

	logger, err := logging.New(nil, "ignored", cfg)
	if err != nil {
		t.Fatalf("New returned an unexpected error: %v", err)
	}
	logger.Warn(map[string]any{"a": "<b>"})

	expected := "[03:04:05.006] [WARN] {...a: <b>}\n"
	if buf.String() != expected {
		t.Errorf("Expected console output %q, got %q", expected, buf.String())
	}
}

func TestEntryMarkup(t *testing.T) {
	logger, panel := newPanelLogger(t, 0)
	logger.Log("Info", "hello")

	entries := panel.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	expected := `<span class="adl-timestamp">[03:04:05.006]</span> ` +
		`<span class="adl-level adl-text-info">[INFO]</span> ` +
		`<span class="adl-message"><span class="adl-value">hello</span></span>`
	if entries[0].Markup != expected {
		t.Errorf("Expected markup\n%s\ngot\n%s", expected, entries[0].Markup)
	}
	if panel.Markup() != `<div class="adl-log-entry">`+expected+`</div>` {
		t.Errorf("Unexpected panel markup %q", panel.Markup())
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		label string
		class string
		shown string
	}{
		{"error", "adl-text-error", "[ERROR]"},
		{"WARN", "adl-text-warn", "[WARN]"},
		{"Info", "adl-text-info", "[INFO]"},
		{"debug", "adl-text-debug", "[DEBUG]"},
		{"trace", "adl-text-gray", "[TRACE]"},
		{"", "adl-text-gray", "[]"},
		{"<x>", "adl-text-gray", "[&lt;X&gt;]"},
	}

	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			logger, panel := newPanelLogger(t, 0)
			logger.Log(test.label, "m")
			if panel.Len() != 1 {
				t.Fatalf("Expected exactly one entry, got %d", panel.Len())
			}
			got := panel.Entries()[0].Markup
			if !strings.Contains(got, `<span class="adl-level `+test.class+`">`+test.shown+`</span>`) {
				t.Errorf("Expected class %s and label %s in %q", test.class, test.shown, got)
			}
		})
	}
}

func TestLevelAliases(t *testing.T) {
	logger, panel := newPanelLogger(t, 0)
	logger.Error("e")
	logger.Warn("w")
	logger.Info("i")
	logger.Debug("d")
	logger.Errorf("%d", 1)

	expected := []logging.LogLevel{logging.LevelError, logging.LevelWarn, logging.LevelInfo, logging.LevelDebug, logging.LevelError}
	entries := panel.Entries()
	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(entries))
	}
	for i, e := range entries {
		if e.Level != expected[i] {
			t.Errorf("Entry %d: expected level %s, got %s", i, expected[i], e.Level)
		}
	}
}

func TestRingBufferEviction(t *testing.T) {
	const capacity = 5
	logger, panel := newPanelLogger(t, capacity)

	for i := 1; i <= capacity+1; i++ {
		logger.Info(fmt.Sprintf("message %d", i))
	}

	stored := logger.Store().GetAll()
	if len(stored) != capacity {
		t.Fatalf("Expected store size %d, got %d", capacity, len(stored))
	}
	displayed := panel.Entries()
	if len(displayed) != capacity {
		t.Fatalf("Expected %d displayed entries, got %d", capacity, len(displayed))
	}

	for i := 0; i < capacity; i++ {
		want := fmt.Sprintf("message %d", i+2)
		if got := stored[i].Message.Text; got != want {
			t.Errorf("Store position %d: expected %q, got %q", i, want, got)
		}
		if stored[i] != displayed[i] {
			t.Errorf("Store and panel disagree at position %d", i)
		}
	}
	if strings.Contains(panel.Markup(), "message 1<") {
		t.Errorf("First entry must be gone from the panel")
	}
	if panel.ScrolledTo() != displayed[capacity-1].Seq {
		t.Errorf("Expected the newest entry to be scrolled into view")
	}
}

func TestDefaultCapacity(t *testing.T) {
	logger, panel := newPanelLogger(t, 0)
	for i := 0; i < logging.DefaultCapacity+10; i++ {
		logger.Debug(i)
	}
	if panel.Len() != logging.DefaultCapacity || logger.Store().Len() != logging.DefaultCapacity {
		t.Errorf("Expected %d entries, got panel=%d store=%d", logging.DefaultCapacity, panel.Len(), logger.Store().Len())
	}
}

type explosive struct{}

func (explosive) String() string { panic("boom") }

func TestLogNeverPanics(t *testing.T) {
	logger, panel := newPanelLogger(t, 0)
	logger.Info(explosive{})
	if !strings.Contains(panel.Markup(), markup.Unprintable) {
		t.Errorf("Expected unprintable sentinel in %q", panel.Markup())
	}
}

func TestWriterMirror(t *testing.T) {
	logger, _ := newPanelLogger(t, 0)
	var buf bytes.Buffer
	logger.SetWriter(&buf)
	logger.Error([]int{1, 2})
	if buf.String() != "[03:04:05.006] [ERROR] [...0: 11: 2]\n" {
		t.Errorf("Unexpected mirror output %q", buf.String())
	}
}

func TestDefaultLogger(t *testing.T) {
	previous := logging.Default()
	defer logging.SetDefault(previous)

	var buf bytes.Buffer
	logging.SetDefault(logging.NewConsoleLogger(&buf))

	logging.SetDebug(false)
	logging.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Debug output should be suppressed, got %q", buf.String())
	}

	logging.SetDebug(true)
	defer logging.SetDebug(false)
	logging.Debugf("shown %d", 2)
	logging.Infof("info %s", "x")
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") || !strings.Contains(buf.String(), "[INFO] info x") {
		t.Errorf("Unexpected default logger output %q", buf.String())
	}
}
