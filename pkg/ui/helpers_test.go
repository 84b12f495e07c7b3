package ui_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/adl-tools/pretty-logger/pkg/ui"
)

func TestFormatErrorChain(t *testing.T) {
	base := errors.New("file not found")
	wrapped := fmt.Errorf("loading a.json: %w", fmt.Errorf("opening input: %w", base))

	expected := "- loading a.json:\n - opening input:\n  - file not found"
	if got := ui.FormatErrorChain(wrapped); got != expected {
		t.Errorf("Expected\n%s\ngot\n%s", expected, got)
	}
	if got := ui.FormatErrorChain(base); got != "- file not found" {
		t.Errorf("Unexpected single error output %q", got)
	}

	joined := errors.Join(wrapped, fmt.Errorf("loading b.log: %w", errors.New("denied")))
	expected = expected + "\n- loading b.log:\n - denied"
	if got := ui.FormatErrorChain(joined); got != expected {
		t.Errorf("Expected\n%s\ngot\n%s", expected, got)
	}
}

func TestCountLevels(t *testing.T) {
	entries := []*logging.RenderedEntry{
		{Level: logging.LevelError},
		{Level: logging.LevelWarn},
		{Level: logging.LevelInfo},
		{Level: logging.LevelError},
		{Level: logging.LevelUnknown},
	}
	warnCount, errorCount := ui.CountLevels(entries)
	if warnCount != 1 || errorCount != 2 {
		t.Errorf("Expected 1 warning and 2 errors, got %d and %d", warnCount, errorCount)
	}
}

func TestFormatPrompts(t *testing.T) {
	got := ui.FormatPrompts([]ui.ActionPrompt{{Input: "Enter", Action: "Toggle"}})
	expected := "[darkcyan::b]Ctrl+C[-:-:-]: Quit | [darkcyan::b]Ctrl+L[-:-:-]: Logs | [darkcyan::b]Enter[-:-:-]: Toggle"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}
