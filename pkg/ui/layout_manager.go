package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// LayoutManager handles the overall visual structure of the application.
type LayoutManager struct {
	app        AppInterface
	root       *tview.Flex
	header     *tview.Flex
	status     *tview.Flex
	statusText *tview.TextView
	footer     *tview.Flex
	pages      *tview.Pages

	levelCounters    *tview.TextView
	prevErrorCount   int
	prevWarningCount int
}

// NewLayoutManager creates and initializes the UI layout manager. Level
// counters are polled until ctx is canceled.
func NewLayoutManager(app AppInterface, ctx context.Context) *LayoutManager {
	lm := &LayoutManager{
		app:              app,
		pages:            tview.NewPages(),
		root:             tview.NewFlex().SetDirection(tview.FlexRow),
		header:           tview.NewFlex(),
		footer:           tview.NewFlex(),
		levelCounters:    tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignRight),
		prevErrorCount:   -1,
		prevWarningCount: -1,
	}
	lm.setupLayout()
	go lm.startCounterPolling(ctx)
	return lm
}

// RootPrimitive returns the main primitive that should be set as the application's root.
func (lm *LayoutManager) RootPrimitive() tview.Primitive {
	return lm.root
}

// Pages returns the tview.Pages container for content.
func (lm *LayoutManager) Pages() *tview.Pages {
	return lm.pages
}

func (lm *LayoutManager) setupLayout() {
	lm.status = tview.NewFlex().SetDirection(tview.FlexRow)
	lm.SetHeader(nil)

	lm.header.AddItem(tview.NewBox(), 1, 0, false).
		AddItem(lm.status, 0, 1, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(lm.levelCounters, 30, 0, false).
		AddItem(tview.NewBox(), 1, 0, false)

	lm.root.SetBorder(true).
		SetTitle(" Pretty Logger ").
		SetTitleAlign(tview.AlignLeft)

	lm.root.AddItem(lm.header, 1, 0, false).
		AddItem(lm.pages, 0, 1, true).
		AddItem(lm.footer, 1, 0, false)

	lm.SetLevelCounters(0, 0)
}

// storeState is what the header and the visible page show of the panel
// logger's store.
type storeState struct {
	warnings, errors, retained int
}

// startCounterPolling watches the panel logger's store and queues a UI update
// whenever it changed since the last one.
func (lm *LayoutManager) startCounterPolling(ctx context.Context) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	last := storeState{-1, -1, -1}
	poll := func() {
		logger := lm.app.GetPanelLogger()
		if logger == nil {
			return
		}
		entries := logger.Store().GetAll()
		state := storeState{retained: len(entries)}
		state.warnings, state.errors = CountLevels(entries)
		if state == last {
			return
		}
		last = state
		lm.app.QueueUpdateDraw(func() {
			lm.SetLevelCounters(state.warnings, state.errors)
			if nav := lm.app.Navigation(); nav != nil {
				nav.RefreshCurrent()
			}
		})
	}

	poll()
	for {
		select {
		case <-ticker.C:
			poll()
		case <-ctx.Done():
			logging.Debugf("LayoutManager: Stopping counter polling.")
			return
		}
	}
}

// CountLevels returns the number of warning and error entries.
func CountLevels(entries []*logging.RenderedEntry) (warnCount, errorCount int) {
	for _, entry := range entries {
		switch entry.Level {
		case logging.LevelError:
			errorCount++
		case logging.LevelWarn:
			warnCount++
		}
	}
	return warnCount, errorCount
}

// SetLevelCounters updates the error and warning counters.
func (lm *LayoutManager) SetLevelCounters(warnCount, errorCount int) {
	if lm.prevErrorCount == errorCount && lm.prevWarningCount == warnCount {
		return
	}
	lm.prevErrorCount = errorCount
	lm.prevWarningCount = warnCount

	warnBgColor := tcell.ColorYellow
	warnFgColor := tcell.ColorBlack
	errorBgColor := tcell.ColorRed
	errorFgColor := tcell.ColorBlack
	if warnCount == 0 {
		warnBgColor = tcell.ColorBlack
		warnFgColor = tcell.ColorWhite
	}
	if errorCount == 0 {
		errorBgColor = tcell.ColorBlack
		errorFgColor = tcell.ColorWhite
	}
	lm.levelCounters.SetText(fmt.Sprintf("[yellow]Warnings: [%s:%s]%d[-:-:-] [red]Errors: [%s:%s]%d[-:-:-]",
		warnFgColor.Name(), warnBgColor.Name(), warnCount, errorFgColor.Name(), errorBgColor.Name(), errorCount))
}

// SetFooter updates the action hints flexbox.
func (lm *LayoutManager) SetFooter(prompts []ActionPrompt) {
	lm.footer.Clear()
	if prompts == nil {
		return
	}
	lm.footer.AddItem(tview.NewTextView().SetDynamicColors(true).SetText(FormatPrompts(prompts)), 0, 1, false)
}

// FormatPrompts renders the global prompts followed by the page prompts.
func FormatPrompts(prompts []ActionPrompt) string {
	globalPrompts := []ActionPrompt{{"Ctrl+C", "Quit"}, {"Ctrl+L", "Logs"}}
	allPrompts := append(globalPrompts, prompts...)

	var sb strings.Builder
	for i, prompt := range allPrompts {
		sb.WriteString(fmt.Sprintf("[darkcyan::b]%s[-:-:-]: %s", prompt.Input, prompt.Action))
		if i != len(allPrompts)-1 {
			sb.WriteString(" | ")
		}
	}
	return sb.String()
}

// SetHeader updates the status bar
func (lm *LayoutManager) SetHeader(p *tview.TextView) {
	if p == nil {
		p = tview.NewTextView().SetDynamicColors(true)
	}
	lm.statusText = p
	lm.status.Clear()
	lm.status.AddItem(p, 0, 1, false)
}

func (lm *LayoutManager) SetStatusText(text string) {
	lm.statusText.SetText(text)
}
