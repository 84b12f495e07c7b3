package ui_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/core/markup"
	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/adl-tools/pretty-logger/pkg/ui"
	"github.com/rivo/tview"
)

func newTerminalLogger(t *testing.T, capacity int) (*logging.Logger, *ui.LogPanel) {
	t.Helper()
	panel := ui.NewLogPanel(nil)
	doc := logging.NewRegistry()
	doc.Register("tui", panel)

	cfg := logging.DefaultConfig()
	cfg.Capacity = capacity
	cfg.Clock = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	logger, err := logging.New(doc, "tui", cfg)
	if err != nil {
		t.Fatalf("New returned an unexpected error: %v", err)
	}
	return logger, panel
}

func TestLogPanelAppendAndEvict(t *testing.T) {
	logger, panel := newTerminalLogger(t, 3)
	for i := 1; i <= 4; i++ {
		logger.Info(fmt.Sprintf("line %d", i))
	}

	entries := panel.Entries()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entry nodes, got %d", len(entries))
	}
	for i, node := range entries {
		want := fmt.Sprintf("line %d", i+2)
		if !strings.HasSuffix(node.GetText(), want) {
			t.Errorf("Node %d: expected text ending in %q, got %q", i, want, node.GetText())
		}
	}
	if panel.GetCurrentNode() != entries[2] {
		t.Errorf("Expected the newest entry to be selected")
	}
	if !strings.Contains(entries[0].GetText(), tview.Escape("[07:08:09.000] [INFO]")) {
		t.Errorf("Unexpected entry text %q", entries[0].GetText())
	}
}

func TestLogPanelToggleOnlyOwnSubtree(t *testing.T) {
	logger, panel := newTerminalLogger(t, 0)
	logger.Warn(markup.Fields{
		{Key: "outer", Value: markup.Fields{{Key: "inner", Value: "x"}}},
		{Key: "leaf", Value: 1},
	})

	entry := panel.Entries()[0]
	if entry.IsExpanded() {
		t.Fatalf("Entries should start collapsed")
	}
	children := entry.GetChildren()
	if len(children) != 2 {
		t.Fatalf("Expected 2 child nodes, got %d", len(children))
	}
	outer, leaf := children[0], children[1]
	panel.ToggleNode(outer)
	if !outer.IsExpanded() {
		t.Errorf("Expected the toggled branch to expand")
	}
	if entry.IsExpanded() {
		t.Errorf("Toggling a child must not expand its parent")
	}

	panel.ToggleNode(leaf)
	if leaf.IsExpanded() {
		t.Errorf("Leaves have nothing to toggle")
	}

	panel.ToggleNode(entry)
	panel.ToggleNode(outer)
	if !entry.IsExpanded() || outer.IsExpanded() {
		t.Errorf("Expected entry expanded and outer collapsed")
	}
}

func TestLogPanelElementRows(t *testing.T) {
	panel := ui.NewLogPanel(nil)
	el := &stubElement{tag: "UL", children: []markup.Child{
		{Kind: markup.ChildText, Text: "  item  "},
		{Kind: markup.ChildOther},
	}}
	entry := &logging.RenderedEntry{Seq: 1, Label: "DEBUG", Message: markup.Build(el, 0)}
	panel.Append(entry)

	children := panel.Entries()[0].GetChildren()
	if len(children) != 2 {
		t.Fatalf("Expected text row and closing tag row, got %d", len(children))
	}
	if children[0].GetText() != "item" {
		t.Errorf("Expected trimmed text child, got %q", children[0].GetText())
	}
	if children[1].GetText() != "</ul>" {
		t.Errorf("Expected closing tag row, got %q", children[1].GetText())
	}

	// Toggles are inert until bound.
	panel.ToggleNode(panel.Entries()[0])
	if panel.Entries()[0].IsExpanded() {
		t.Errorf("Unbound entry must not toggle")
	}
	panel.BindToggles(entry)
	panel.ToggleNode(panel.Entries()[0])
	if !panel.Entries()[0].IsExpanded() {
		t.Errorf("Bound entry should toggle")
	}

	panel.Remove(entry)
	if len(panel.Entries()) != 0 {
		t.Errorf("Expected no entries after Remove")
	}
}

func TestLogPanelQueuedUpdatesKeepOrder(t *testing.T) {
	queued := make(chan func(), 4)
	panel := ui.NewLogPanel(func(f func()) { queued <- f })

	first := &logging.RenderedEntry{Seq: 1, Label: "INFO", Message: markup.Leaf("a")}
	second := &logging.RenderedEntry{Seq: 2, Label: "INFO", Message: markup.Leaf("b")}
	panel.Append(first)
	panel.Append(second)
	panel.Remove(first)

	var flush func()
	select {
	case flush = <-queued:
	case <-time.After(2 * time.Second):
		t.Fatalf("Expected a queued flush")
	}
	if len(panel.Entries()) != 0 {
		t.Fatalf("Updates must not apply before the queue runs")
	}
	flush()

	entries := panel.Entries()
	if len(entries) != 1 || entries[0].GetText() != tview.Escape("[00:00:00.000] [INFO] b") {
		t.Errorf("Expected only the second entry, got %d entries", len(entries))
	}
}

type stubElement struct {
	tag      string
	attrs    []markup.Attr
	children []markup.Child
}

func (e *stubElement) TagName() string            { return e.tag }
func (e *stubElement) Attributes() []markup.Attr  { return e.attrs }
func (e *stubElement) ChildNodes() []markup.Child { return e.children }
