package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type DialogManager struct {
	app AppInterface
}

func NewDialogManager(app AppInterface) *DialogManager {
	return &DialogManager{app: app}
}

// ShowErrorDialog displays a modal dialog with an error message. The error
// chain, if any, is listed below the message.
func (m *DialogManager) ShowErrorDialog(title, message string, err error, onDismiss func()) {
	text := message
	if err != nil {
		text += "\n\n" + tview.Escape(FormatErrorChain(err))
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Dismiss"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			go m.app.QueueUpdateDraw(func() {
				m.app.Navigation().CloseModal()
				if onDismiss != nil {
					onDismiss()
				}
			})
		})
	modal.SetTextColor(tcell.ColorWhite).
		SetBackgroundColor(tcell.ColorDarkRed)
	modal.SetTitle(" " + title + " ").SetTitleAlign(tview.AlignLeft)
	m.app.Navigation().ShowModal("error_dialog", NewModalPage(modal))
}

// ShowQuitDialog displays a confirmation dialog before quitting.
func (m *DialogManager) ShowQuitDialog() {
	modal := tview.NewModal().
		SetText("Are you sure you want to quit?").
		AddButtons([]string{"Cancel", "Quit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			go m.app.QueueUpdateDraw(func() {
				m.app.Navigation().CloseModal()
				if buttonIndex == 1 {
					logging.Info("App: Quitting.")
					m.app.Stop()
				}
			})
		})
	modal.SetTextColor(tcell.ColorBlack)
	modal.SetTitle(" Quit ").SetTitleAlign(tview.AlignLeft)
	m.app.Navigation().ShowModal("quit_dialog", NewModalPage(modal))
}

// FormatErrorChain unwraps a chain of Go errors and formats them
// into a multi-line string, with each level of the error on a new line.
// Joined errors are listed one chain after another.
func FormatErrorChain(err error) string {
	var b strings.Builder
	writeErrorChain(&b, err, "")
	return strings.TrimSuffix(b.String(), "\n")
}

func writeErrorChain(b *strings.Builder, err error, indent string) {
	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				writeErrorChain(b, e, indent)
			}
			return
		}
		next := errors.Unwrap(err)
		msg := err.Error()
		if next != nil {
			nextMsg := next.Error()
			if i := strings.LastIndex(msg, nextMsg); i > 0 {
				msg = strings.TrimSpace(msg[:i])
			}
		}
		fmt.Fprintf(b, "%s- %s\n", indent, msg)
		indent += " "
		err = next
	}
}
