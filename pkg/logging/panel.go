package logging

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/adl-tools/pretty-logger/pkg/core/markup"
	"github.com/adl-tools/pretty-logger/pkg/embeds"
)

var (
	ErrEntryNotFound    = errors.New("entry is not displayed")
	ErrTogglesNotBound  = errors.New("entry toggles are not bound")
	ErrToggleOutOfRange = errors.New("toggle ordinal out of range")
)

// HTMLPanel is an in-memory HTML display surface. It keeps the displayed
// entries in order together with the expanded state of their toggles.
type HTMLPanel struct {
	mu       sync.Mutex
	id       string
	entries  []*panelEntry
	scrolled uint64
}

type panelEntry struct {
	entry *RenderedEntry
	state *markup.Node
	bound bool
}

// NewHTMLPanel creates an empty panel. id becomes the id attribute of the
// panel element in WriteDocument.
func NewHTMLPanel(id string) *HTMLPanel {
	return &HTMLPanel{id: id}
}

// ID returns the panel identifier.
func (p *HTMLPanel) ID() string {
	return p.id
}

func (p *HTMLPanel) Append(entry *RenderedEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, &panelEntry{entry: entry, state: entry.Message})
}

func (p *HTMLPanel) Remove(entry *RenderedEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, pe := range p.entries {
		if pe.entry == entry {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return
		}
	}
}

func (p *HTMLPanel) ScrollToEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.entries); n > 0 {
		p.scrolled = p.entries[n-1].entry.Seq
	}
}

func (p *HTMLPanel) BindToggles(entry *RenderedEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pe := p.find(entry.Seq); pe != nil {
		pe.bound = true
	}
}

// ScrolledTo returns the sequence number of the entry last scrolled into view.
func (p *HTMLPanel) ScrolledTo() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrolled
}

// Toggle flips the expanded state of the ordinal-th toggle (pre-order) of
// the displayed entry with sequence number seq. Only that toggle and its
// container change.
func (p *HTMLPanel) Toggle(seq uint64, ordinal int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pe := p.find(seq)
	if pe == nil {
		return fmt.Errorf("toggling entry %d: %w", seq, ErrEntryNotFound)
	}
	if !pe.bound {
		return fmt.Errorf("toggling entry %d: %w", seq, ErrTogglesNotBound)
	}
	next, ok := markup.ToggleAt(pe.state, ordinal)
	if !ok {
		return fmt.Errorf("toggling entry %d at %d: %w", seq, ordinal, ErrToggleOutOfRange)
	}
	pe.state = next
	return nil
}

func (p *HTMLPanel) find(seq uint64) *panelEntry {
	for _, pe := range p.entries {
		if pe.entry.Seq == seq {
			return pe
		}
	}
	return nil
}

// Entries returns the displayed entries in display order.
func (p *HTMLPanel) Entries() []*RenderedEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*RenderedEntry, len(p.entries))
	for i, pe := range p.entries {
		out[i] = pe.entry
	}
	return out
}

// Len returns the number of displayed entries.
func (p *HTMLPanel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Markup returns the panel content: one adl-log-entry block per entry,
// reflecting the current toggle state.
func (p *HTMLPanel) Markup() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var sb strings.Builder
	for _, pe := range p.entries {
		sb.WriteString(`<div class="adl-log-entry">`)
		sb.WriteString(pe.entry.RenderWith(pe.state))
		sb.WriteString(`</div>`)
	}
	return sb.String()
}

var documentTemplate = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div id="{{.ID}}" class="adl-panel">{{.Entries}}</div>
<script>{{.Script}}</script>
</body>
</html>
`))

// WriteDocument writes a standalone HTML page showing the panel, with the
// stylesheet and the toggle script embedded.
func (p *HTMLPanel) WriteDocument(w io.Writer, title string) error {
	data := struct {
		Title   string
		ID      string
		Style   template.CSS
		Script  template.JS
		Entries template.HTML
	}{
		Title:   title,
		ID:      p.id,
		Style:   template.CSS(embeds.PanelStyle()),
		Script:  template.JS(embeds.PanelScript()),
		Entries: template.HTML(p.Markup()),
	}
	if err := documentTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("writing panel document: %w", err)
	}
	return nil
}
