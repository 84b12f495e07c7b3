package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
)

// ErrPanelNotFound is matched by the error New returns when the requested
// panel does not exist.
var ErrPanelNotFound = errors.New("panel not found")

// NotFoundError reports a missing display surface.
type NotFoundError struct {
	PanelID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("debug panel with id '%s' not found", e.PanelID)
}

// Is makes errors.Is(err, ErrPanelNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrPanelNotFound
}

// Surface is the display a Logger renders into. The Logger calls Remove for
// an evicted entry before it calls Append for the entry that replaced it.
type Surface interface {
	Append(entry *RenderedEntry)
	Remove(entry *RenderedEntry)
	ScrollToEnd()
	// BindToggles enables expand/collapse for the interactive fragments of
	// an appended entry.
	BindToggles(entry *RenderedEntry)
}

// Document resolves panel identifiers to surfaces.
type Document interface {
	Lookup(panelID string) (Surface, bool)
}

// Registry is a Document backed by a map. It is thread-safe.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register makes s available under panelID, replacing any previous surface.
func (r *Registry) Register(panelID string, s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[panelID] = s
}

// Lookup implements Document.
func (r *Registry) Lookup(panelID string) (Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[panelID]
	return s, ok
}

// Console is the surface used outside a UI: every appended entry is written
// as one line of plain text. Removal and toggles have nothing to act on.
type Console struct {
	goLog *log.Logger
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{goLog: log.New(w, "", 0)}
}

func (c *Console) Append(entry *RenderedEntry) {
	c.goLog.Println(entry.PlainText())
}

func (c *Console) Remove(*RenderedEntry)      {}
func (c *Console) ScrollToEnd()               {}
func (c *Console) BindToggles(*RenderedEntry) {}
