package ui

import (
	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/rivo/tview"
)

// AppInterface defines methods the UI layer needs to access from the main App struct.
// It acts as a facade for UI components to interact with the application's core.
type AppInterface interface {
	// --- UI methods & Managers ---
	QueueUpdateDraw(f func()) *tview.Application
	Stop()
	Navigation() *NavigationManager
	Dialogs() *DialogManager
	Layout() *LayoutManager
	GetFocus() tview.Primitive
	SetFocus(tview.Primitive)

	// --- Loggers ---
	// GetLogger returns the logger of the tool's own diagnostics.
	GetLogger() *logging.Logger
	// GetPanelLogger returns the logger rendering into the log panel.
	GetPanelLogger() *logging.Logger
}
