package ui

import (
	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/rivo/tview"
)

// NavigationManager switches between registered pages and stacks transient
// modals above them. Every change updates the footer prompts, the status
// header and the focus.
type NavigationManager struct {
	app   AppInterface
	pages *tview.Pages

	byID    map[string]Page
	current string
	back    []string // pages to return to, most recent last
	modals  []string
}

// NewNavigationManager creates a new manager for page navigation.
func NewNavigationManager(app AppInterface, pages *tview.Pages) *NavigationManager {
	return &NavigationManager{
		app:   app,
		pages: pages,
		byID:  make(map[string]Page),
	}
}

// Register adds a page, replacing any page registered under the same id.
func (n *NavigationManager) Register(pageID string, page Page) {
	if _, exists := n.byID[pageID]; exists {
		logging.Warnf("NavigationManager: Replacing page '%s'.", pageID)
		n.pages.RemovePage(pageID)
	}
	n.byID[pageID] = page
	n.pages.AddPage(pageID, page, true, false)
}

// CurrentID returns the id of the visible page below any modal.
func (n *NavigationManager) CurrentID() string {
	return n.current
}

// SwitchTo shows a registered page. The page shown before it is remembered
// for GoBack. Open modals are closed.
func (n *NavigationManager) SwitchTo(pageID string) {
	if _, ok := n.byID[pageID]; !ok {
		logging.Debugf("NavigationManager: No page '%s'.", pageID)
		return
	}
	if n.current != "" && n.current != pageID {
		n.back = append(n.back, n.current)
	}
	n.show(pageID)
}

// GoBack returns to the previously shown page. It reports false when there is
// none.
func (n *NavigationManager) GoBack() bool {
	if len(n.back) == 0 {
		return false
	}
	pageID := n.back[len(n.back)-1]
	n.back = n.back[:len(n.back)-1]
	n.show(pageID)
	return true
}

func (n *NavigationManager) show(pageID string) {
	for _, id := range n.modals {
		n.pages.RemovePage(id)
	}
	n.modals = nil

	n.current = pageID
	n.pages.SwitchToPage(pageID)
	page := n.byID[pageID]
	n.present(page)
	if activator, ok := page.(PageActivator); ok {
		activator.OnPageActivated()
	}
}

// present sets footer, header and focus for page.
func (n *NavigationManager) present(page Page) {
	layout := n.app.Layout()
	if page == nil {
		layout.SetFooter(nil)
		layout.SetHeader(nil)
		return
	}
	layout.SetFooter(page.GetActionPrompts())
	if status := page.GetStatusPrimitive(); status != nil {
		layout.SetHeader(status)
	}
	n.app.SetFocus(page)
}

// ShowModal displays a transient page (like a dialog) over the current view.
func (n *NavigationManager) ShowModal(pageID string, page Page) {
	n.pages.AddPage(pageID, page, true, true)
	n.modals = append(n.modals, pageID)
	n.present(page)
}

// CloseModal removes the top-most modal page.
func (n *NavigationManager) CloseModal() {
	if len(n.modals) == 0 {
		return
	}
	modalID := n.modals[len(n.modals)-1]
	n.modals = n.modals[:len(n.modals)-1]
	n.pages.RemovePage(modalID)
	n.present(n.GetCurrentPage())
}

// GetCurrentPage returns the front-most page, a modal if one is open.
func (n *NavigationManager) GetCurrentPage() Page {
	if len(n.modals) > 0 {
		_, primitive := n.pages.GetFrontPage()
		if p, ok := primitive.(Page); ok {
			return p
		}
	}
	return n.byID[n.current]
}

// RefreshCurrent refreshes the visible page if it shows live data.
func (n *NavigationManager) RefreshCurrent() {
	if r, ok := n.byID[n.current].(Refresher); ok {
		r.Refresh()
	}
}

// ToggleLogPage either switches to the log page or goes back if already there.
func (n *NavigationManager) ToggleLogPage() {
	if n.current == PageLogID && n.GoBack() {
		return
	}
	n.SwitchTo(PageLogID)
}
