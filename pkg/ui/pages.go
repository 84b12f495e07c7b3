package ui

import "github.com/rivo/tview"

// Page IDs are constants used by the NavigationManager to identify pages.
const (
	PagePanelID = "panel_page"
	PageLogID   = "log_page"
)

type ActionPrompt struct {
	Input  string
	Action string
}

// Page is the interface that all UI pages must implement.
type Page interface {
	tview.Primitive
	GetActionPrompts() []ActionPrompt
	GetStatusPrimitive() *tview.TextView
}

// PageActivator defines an interface for pages that need to perform an action
// when they become the active page.
type PageActivator interface {
	OnPageActivated()
}

// Refresher is implemented by pages that show live data. The layout manager
// refreshes the visible page whenever the panel logger's store changes.
type Refresher interface {
	Refresh()
}

// ModalPage is a simple wrapper around a tview.Modal to conform to the Page interface.
type ModalPage struct {
	*tview.Modal
}

// NewModalPage creates a new ModalPage.
func NewModalPage(modal *tview.Modal) *ModalPage {
	return &ModalPage{Modal: modal}
}

// GetActionPrompts returns no prompts as modals have their own buttons.
func (p *ModalPage) GetActionPrompts() []ActionPrompt {
	return []ActionPrompt{}
}

// GetStatusPrimitive returns nil; modals keep the status of the page below.
func (p *ModalPage) GetStatusPrimitive() *tview.TextView {
	return nil
}
