package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/adl-tools/pretty-logger/pkg/ui"
	"github.com/adl-tools/pretty-logger/pkg/ui/pages"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const documentTitle = "Pretty Logger"

// App orchestrates the application for every output mode. Only the tui mode
// starts the tview event loop.
type App struct {
	*tview.Application
	args *CLIArgs

	layoutManager *ui.LayoutManager
	navManager    *ui.NavigationManager
	dialogManager *ui.DialogManager

	// logger receives the tool's own diagnostics, panelLogger the inputs.
	logger      *logging.Logger
	panelLogger *logging.Logger

	logView   *tview.TextView
	logPanel  *ui.LogPanel
	panelPage *pages.PanelPage

	stdin  io.Reader
	stdout io.Writer

	appCtx    context.Context
	cancelApp context.CancelFunc

	shutdownWg sync.WaitGroup
}

// NewApp creates the application. The terminal UI is only built by Run when
// the output mode is tui.
func NewApp(logger *logging.Logger, args *CLIArgs) *App {
	appCtx, cancelApp := context.WithCancel(context.Background())
	return &App{
		Application: tview.NewApplication(),
		args:        args,
		logger:      logger,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		appCtx:      appCtx,
		cancelApp:   cancelApp,
	}
}

// SetIO replaces standard input and output.
func (a *App) SetIO(stdin io.Reader, stdout io.Writer) {
	a.stdin = stdin
	a.stdout = stdout
}

// Run loads the inputs into the configured surface.
func (a *App) Run() error {
	logging.Infof("App: Output mode '%s', panel '%s', capacity %d.", a.args.Output, a.args.PanelID, a.args.Capacity)
	switch a.args.Output {
	case OutputConsole:
		return a.runConsole()
	case OutputHTML:
		return a.runHTML()
	default:
		return a.runTUI()
	}
}

func (a *App) loggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Capacity = a.args.Capacity
	cfg.Writer = a.stdout
	return cfg
}

// loadInputs returns the joined errors of the failed inputs, or nil.
func (a *App) loadInputs() error {
	errs := NewLoader(a.panelLogger, a.args.Level, a.stdin).LoadAll(a.args.Inputs)
	logging.Infof("App: Loaded %d input(s), %d failed.", len(a.args.Inputs), len(errs))
	return errors.Join(errs...)
}

func (a *App) runConsole() error {
	logger, err := logging.New(nil, a.args.PanelID, a.loggerConfig())
	if err != nil {
		return err
	}
	a.panelLogger = logger
	a.loadInputs()
	return nil
}

func (a *App) runHTML() error {
	panel := logging.NewHTMLPanel(a.args.PanelID)
	doc := logging.NewRegistry()
	doc.Register(panel.ID(), panel)

	logger, err := logging.New(doc, a.args.PanelID, a.loggerConfig())
	if err != nil {
		return err
	}
	a.panelLogger = logger
	a.loadInputs()

	f, err := os.Create(a.args.HTMLOut)
	if err != nil {
		return fmt.Errorf("creating html output: %w", err)
	}
	defer f.Close()
	if err := panel.WriteDocument(f, documentTitle); err != nil {
		return fmt.Errorf("writing html output: %w", err)
	}
	logging.Infof("App: Wrote %d entries to '%s'.", panel.Len(), a.args.HTMLOut)
	return nil
}

func (a *App) runTUI() error {
	if err := a.setupUI(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	screen.SetTitle(documentTitle) // tview doesn't expose this
	a.EnableMouse(true)
	a.SetScreen(screen)

	a.shutdownWg.Add(1)
	go func() {
		defer a.shutdownWg.Done()
		if err := a.loadInputs(); err != nil {
			a.reportLoadFailure(err)
		}
	}()

	return a.Application.Run()
}

// setupUI builds the layout, the pages and the panel logger of the tui mode.
func (a *App) setupUI() error {
	a.logPanel = ui.NewLogPanel(func(f func()) { a.QueueUpdateDraw(f) })
	doc := logging.NewRegistry()
	doc.Register(a.args.PanelID, a.logPanel)
	logger, err := logging.New(doc, a.args.PanelID, a.loggerConfig())
	if err != nil {
		return err
	}
	a.panelLogger = logger

	a.layoutManager = ui.NewLayoutManager(a, a.appCtx)
	a.navManager = ui.NewNavigationManager(a, a.layoutManager.Pages())
	a.dialogManager = ui.NewDialogManager(a)
	a.SetRoot(a.layoutManager.RootPrimitive(), true)

	a.logView = tview.NewTextView().
		SetScrollable(true).
		SetChangedFunc(func() { go a.Draw() })
	a.logView.ScrollToEnd()
	if a.logger != nil {
		a.logger.SetWriter(io.MultiWriter(a.logger.GetWriter(), a.logView))
	}

	a.panelPage = pages.NewPanelPage(a, a.logPanel, a.args.PanelID)
	a.navManager.Register(ui.PagePanelID, a.panelPage)
	a.navManager.Register(ui.PageLogID, pages.NewLogPage(a, a.logView))

	a.setupGlobalInputCapture()
	a.navManager.SwitchTo(ui.PagePanelID)
	return nil
}

// setupGlobalInputCapture defines application-wide keybindings.
func (a *App) setupGlobalInputCapture() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlL:
			go a.QueueUpdateDraw(a.navManager.ToggleLogPage)
			return nil
		case tcell.KeyCtrlC:
			go a.QueueUpdateDraw(a.dialogManager.ShowQuitDialog)
			return nil
		}
		return event
	})
}

// reportLoadFailure shows the failed inputs in an error dialog.
func (a *App) reportLoadFailure(err error) {
	count := 1
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		count = len(joined.Unwrap())
	}
	message := fmt.Sprintf("%d input(s) could not be loaded.", count)
	go a.QueueUpdateDraw(func() {
		a.dialogManager.ShowErrorDialog("Load failed", message, err, nil)
	})
}

// RequestQuit asks for confirmation in the terminal UI and stops right away
// in the other modes. It is safe to call before Run.
func (a *App) RequestQuit() {
	if a.args.Output != OutputTUI {
		a.Stop()
		return
	}
	go a.QueueUpdateDraw(func() {
		if a.dialogManager == nil {
			a.Stop()
			return
		}
		a.dialogManager.ShowQuitDialog()
	})
}

// Stop gracefully stops the application.
func (a *App) Stop() {
	a.cancelApp()
	a.Application.Stop()
}

// Wait blocks until background loading has finished or the application was
// stopped. Loading that is still blocked on its input is abandoned.
func (a *App) Wait() {
	done := make(chan struct{})
	go func() {
		a.shutdownWg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-a.appCtx.Done():
		logging.Debugf("App: Stopped before loading finished.")
	}
}

// AppInterface methods to be called by UI components

func (a *App) GetLogger() *logging.Logger             { return a.logger }
func (a *App) GetPanelLogger() *logging.Logger        { return a.panelLogger }
func (a *App) Navigation() *ui.NavigationManager      { return a.navManager }
func (a *App) Dialogs() *ui.DialogManager             { return a.dialogManager }
func (a *App) Layout() *ui.LayoutManager              { return a.layoutManager }
func (a *App) SetFocus(p tview.Primitive)             { a.Application.SetFocus(p) }
func (a *App) GetApplicationContext() context.Context { return a.appCtx }
