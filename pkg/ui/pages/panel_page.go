package pages

import (
	"fmt"

	"github.com/adl-tools/pretty-logger/pkg/ui"
	"github.com/adl-tools/pretty-logger/pkg/ui/widgets"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PanelPage shows the log panel of the panel logger.
type PanelPage struct {
	*tview.Flex
	app ui.AppInterface

	panel      *ui.LogPanel
	frame      *widgets.TitleFrame
	statusText *tview.TextView
}

// NewPanelPage wraps panel in a titled frame. The frame's info line shows the
// number of retained entries.
func NewPanelPage(app ui.AppInterface, panel *ui.LogPanel, title string) *PanelPage {
	p := &PanelPage{
		Flex:       tview.NewFlex().SetDirection(tview.FlexRow),
		app:        app,
		panel:      panel,
		frame:      widgets.NewTitleFrame(panel, title),
		statusText: tview.NewTextView().SetDynamicColors(true),
	}
	p.AddItem(p.frame, 0, 1, true)
	p.SetInputCapture(p.inputHandler())
	p.statusText.SetText("Select an entry and press Enter to expand it.")
	return p
}

func (p *PanelPage) inputHandler() func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyHome:
			if entries := p.panel.Entries(); len(entries) > 0 {
				p.panel.SetCurrentNode(entries[0])
			}
			return nil
		case tcell.KeyEnd:
			if entries := p.panel.Entries(); len(entries) > 0 {
				p.panel.SetCurrentNode(entries[len(entries)-1])
			}
			return nil
		}
		return event
	}
}

// Refresh updates the entry count shown in the frame.
func (p *PanelPage) Refresh() {
	logger := p.app.GetPanelLogger()
	if logger == nil {
		return
	}
	store := logger.Store()
	p.frame.SetInfo(fmt.Sprintf("%d/%d", store.Len(), store.Capacity()))
}

// Info returns the entry count shown in the frame.
func (p *PanelPage) Info() string {
	return p.frame.GetInfo()
}

// OnPageActivated is called when the page becomes visible.
func (p *PanelPage) OnPageActivated() {
	p.Refresh()
}

// GetActionPrompts returns the key actions for the panel page.
func (p *PanelPage) GetActionPrompts() []ui.ActionPrompt {
	return []ui.ActionPrompt{
		{Input: "Enter", Action: "Toggle"},
		{Input: "Home/End", Action: "First/Last"},
	}
}

// GetStatusPrimitive returns the tview.Primitive that displays the page's status
func (p *PanelPage) GetStatusPrimitive() *tview.TextView {
	return p.statusText
}
