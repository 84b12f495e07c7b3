package widgets

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TitleFrame is a primitive that wraps another primitive, adding a horizontal
// rule at the top with an optional title on the left and an info text on the
// right, such as an entry count.
type TitleFrame struct {
	*tview.Box
	content tview.Primitive // The primitive being wrapped
	title   string
	info    string
	color   tcell.Color // Color for the horizontal line and texts
}

// NewTitleFrame creates a new TitleFrame.
func NewTitleFrame(content tview.Primitive, title string) *TitleFrame {
	f := &TitleFrame{
		Box:     tview.NewBox().SetBorder(false),
		content: content,
		title:   title,
		color:   tcell.ColorWhite,
	}
	return f
}

// Draw draws the TitleFrame.
func (f *TitleFrame) Draw(screen tcell.Screen) {
	f.Box.Draw(screen)

	x, y, width, height := f.GetRect()

	lineRune := tview.BoxDrawingsLightHorizontal
	if f.HasFocus() {
		lineRune = tview.BoxDrawingsHeavyHorizontal
	}

	// Draw the horizontal line at the top
	lineY := y
	style := tcell.StyleDefault.Background(tview.Styles.PrimitiveBackgroundColor).Foreground(f.color)
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, lineY, lineRune, nil, style)
	}

	// Draw the title on top of the line
	if f.title != "" {
		titleText := " " + tview.Escape(f.title) + " "
		if f.HasFocus() {
			titleText = fmt.Sprintf("%s[::ur]%s[-:-:-]%s", string(tview.BlockRightHalfBlock), tview.Escape(f.title), string(tview.BlockLeftHalfBlock))
		}
		tview.Print(screen, titleText, x+1, lineY, width-2, tview.AlignLeft, f.color)
	}
	if f.info != "" {
		tview.Print(screen, " "+tview.Escape(f.info)+" ", x+1, lineY, width-2, tview.AlignRight, f.color)
	}

	// The content starts 1 row below the rule.
	if height <= 1 || f.content == nil {
		return
	}
	f.content.SetRect(x, y+1, width, height-1)
	f.content.Draw(screen)
}

// SetTitle changes the title drawn on the left of the rule.
func (f *TitleFrame) SetTitle(title string) {
	f.title = title
}

// SetInfo changes the text drawn on the right of the rule.
func (f *TitleFrame) SetInfo(info string) {
	f.info = info
}

// GetInfo returns the text drawn on the right of the rule.
func (f *TitleFrame) GetInfo() string {
	return f.info
}

// SetColor changes the colour of the rule and its texts.
func (f *TitleFrame) SetColor(color tcell.Color) {
	f.color = color
}

// Focus is called when this primitive receives focus.
func (f *TitleFrame) Focus(delegate func(p tview.Primitive)) {
	if f.content != nil {
		delegate(f.content)
	} else {
		f.Box.Focus(delegate)
	}
}

// HasFocus returns whether or not this primitive has focus.
func (f *TitleFrame) HasFocus() bool {
	if f.content == nil {
		return f.Box.HasFocus()
	}
	return f.content.HasFocus()
}

// MouseHandler returns the mouse handler for this primitive.
func (f *TitleFrame) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return f.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if !f.InRect(event.Position()) {
			return false, nil
		}

		// Pass mouse events on to contained primitive.
		if f.content != nil {
			consumed, capture = f.content.MouseHandler()(action, event, setFocus)
			if consumed {
				return true, capture
			}
		}

		// Clicking on the frame parts.
		if action == tview.MouseLeftDown {
			setFocus(f)
			consumed = true
		}

		return
	})
}

// InputHandler returns the handler for this primitive.
func (f *TitleFrame) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return f.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if f.content == nil {
			return
		}
		if handler := f.content.InputHandler(); handler != nil {
			handler(event, setFocus)
			return
		}
	})
}

// PasteHandler returns the handler for this primitive.
func (f *TitleFrame) PasteHandler() func(pastedText string, setFocus func(p tview.Primitive)) {
	return f.WrapPasteHandler(func(pastedText string, setFocus func(p tview.Primitive)) {
		if f.content == nil {
			return
		}
		if handler := f.content.PasteHandler(); handler != nil {
			handler(pastedText, setFocus)
			return
		}
	})
}
