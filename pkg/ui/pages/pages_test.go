package pages_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/adl-tools/pretty-logger/pkg/ui"
	"github.com/adl-tools/pretty-logger/pkg/ui/pages"
	"github.com/rivo/tview"
)

// testApp runs queued UI updates only when the test drains them.
type testApp struct {
	queued      chan func()
	nav         *ui.NavigationManager
	dialogs     *ui.DialogManager
	layout      *ui.LayoutManager
	panelLogger *logging.Logger
	focus       tview.Primitive
}

func (a *testApp) QueueUpdateDraw(f func()) *tview.Application {
	a.queued <- f
	return nil
}
func (a *testApp) Stop()                             {}
func (a *testApp) Navigation() *ui.NavigationManager { return a.nav }
func (a *testApp) Dialogs() *ui.DialogManager        { return a.dialogs }
func (a *testApp) Layout() *ui.LayoutManager         { return a.layout }
func (a *testApp) GetFocus() tview.Primitive         { return a.focus }
func (a *testApp) SetFocus(p tview.Primitive)        { a.focus = p }
func (a *testApp) GetLogger() *logging.Logger        { return nil }
func (a *testApp) GetPanelLogger() *logging.Logger   { return a.panelLogger }

func newTestApp(t *testing.T) (*testApp, *pages.PanelPage) {
	t.Helper()
	panel := ui.NewLogPanel(nil)
	doc := logging.NewRegistry()
	doc.Register("tui", panel)
	cfg := logging.DefaultConfig()
	cfg.Capacity = 10
	logger, err := logging.New(doc, "tui", cfg)
	if err != nil {
		t.Fatalf("New returned an unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := &testApp{queued: make(chan func(), 64), panelLogger: logger}
	app.layout = ui.NewLayoutManager(app, ctx)
	app.nav = ui.NewNavigationManager(app, app.layout.Pages())
	app.dialogs = ui.NewDialogManager(app)

	page := pages.NewPanelPage(app, panel, "tui")
	app.nav.Register(ui.PagePanelID, page)
	app.nav.Register(ui.PageLogID, pages.NewLogPage(app, nil))
	app.nav.SwitchTo(ui.PagePanelID)
	return app, page
}

func TestPanelPageCountFollowsStore(t *testing.T) {
	app, page := newTestApp(t)
	if page.Info() != "0/10" {
		t.Fatalf("Expected 0/10 after activation, got %q", page.Info())
	}

	app.panelLogger.Info("a")
	app.panelLogger.Warn("b")
	if page.Info() != "0/10" {
		t.Fatalf("The count must only change on the UI goroutine, got %q", page.Info())
	}

	deadline := time.After(3 * time.Second)
	for page.Info() != "2/10" {
		select {
		case f := <-app.queued:
			f()
		case <-deadline:
			t.Fatalf("Expected the count to reach 2/10 while the page stays visible, got %q", page.Info())
		}
	}
}

func TestNavigationRefreshesOnActivation(t *testing.T) {
	app, page := newTestApp(t)

	app.nav.ToggleLogPage()
	if app.nav.CurrentID() != ui.PageLogID {
		t.Fatalf("Expected the log page, got %q", app.nav.CurrentID())
	}
	for i := 0; i < 3; i++ {
		app.panelLogger.Info(i)
	}

	app.nav.ToggleLogPage()
	if app.nav.CurrentID() != ui.PagePanelID {
		t.Fatalf("Expected to return to the panel page, got %q", app.nav.CurrentID())
	}
	if page.Info() != "3/10" {
		t.Errorf("Expected 3/10 right after activation, got %q", page.Info())
	}
	if app.nav.GoBack() {
		t.Errorf("History should be empty after returning")
	}
}

func TestErrorDialogIsModal(t *testing.T) {
	app, page := newTestApp(t)

	err := errors.Join(fmt.Errorf("loading a.json: %w", errors.New("bad")))
	app.dialogs.ShowErrorDialog("Load failed", "1 input(s) could not be loaded.", err, nil)
	if _, ok := app.nav.GetCurrentPage().(*ui.ModalPage); !ok {
		t.Fatalf("Expected the error dialog in front, got %T", app.nav.GetCurrentPage())
	}
	if app.nav.CurrentID() != ui.PagePanelID {
		t.Errorf("A modal must not replace the current page")
	}

	app.nav.CloseModal()
	if app.nav.GetCurrentPage() != page {
		t.Errorf("Expected the panel page after closing the dialog")
	}
	if app.focus != page {
		t.Errorf("Expected focus to return to the panel page")
	}
}
