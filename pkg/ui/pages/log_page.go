package pages

import (
	"github.com/adl-tools/pretty-logger/pkg/ui"
	"github.com/adl-tools/pretty-logger/pkg/ui/widgets"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// LogPage represents the full-screen viewer of the tool's own diagnostics.
type LogPage struct {
	*tview.Flex
	app        ui.AppInterface
	statusText *tview.TextView
}

// NewLogPage creates a new LogPage around logView.
func NewLogPage(app ui.AppInterface, logView *tview.TextView) *LogPage {
	if logView == nil {
		logView = tview.NewTextView().SetText("Error: Log view not initialized.")
	}

	page := &LogPage{
		Flex:       tview.NewFlex().SetDirection(tview.FlexRow),
		app:        app,
		statusText: tview.NewTextView().SetDynamicColors(true),
	}
	page.AddItem(widgets.NewTitleFrame(logView, "Diagnostics"), 0, 1, true)

	page.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			app.Navigation().GoBack()
			return nil
		}
		return event
	})

	page.statusText.SetText("Viewing application logs...")
	return page
}

// GetActionPrompts returns the key actions for the log page.
func (p *LogPage) GetActionPrompts() []ui.ActionPrompt {
	return []ui.ActionPrompt{
		{Input: "ESC", Action: "Close Log"},
	}
}

// GetStatusPrimitive returns the tview.Primitive that displays the page's status
func (p *LogPage) GetStatusPrimitive() *tview.TextView {
	return p.statusText
}
