package ui

import (
	"fmt"
	"sync"

	"github.com/adl-tools/pretty-logger/pkg/core/markup"
	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/adl-tools/pretty-logger/pkg/ui/widgets"
	"github.com/rivo/tview"
)

// LogPanel is a terminal display surface. Every entry is a top-level node of
// a tree view; structures and elements become branches that expand and
// collapse on selection.
type LogPanel struct {
	*tview.TreeView
	root *tview.TreeNode

	// queue schedules a UI update. Nil applies updates immediately.
	queue func(f func())

	mu      sync.Mutex
	pending []func()
	nodes   map[uint64]*tview.TreeNode
}

// NewLogPanel creates an empty panel. queue is typically a function handing
// its argument to tview.Application.QueueUpdateDraw.
func NewLogPanel(queue func(f func())) *LogPanel {
	root := tview.NewTreeNode("").SetSelectable(false)
	p := &LogPanel{
		TreeView: tview.NewTreeView().
			SetRoot(root).
			SetTopLevel(1).
			SetGraphics(true),
		root:  root,
		queue: queue,
		nodes: make(map[uint64]*tview.TreeNode),
	}
	p.TreeView.SetSelectedFunc(p.ToggleNode)
	return p
}

// schedule keeps updates in call order no matter which goroutine applies
// them: they are queued here and drained in one UI update.
func (p *LogPanel) schedule(f func()) {
	p.mu.Lock()
	p.pending = append(p.pending, f)
	first := len(p.pending) == 1
	p.mu.Unlock()

	if p.queue == nil {
		p.flush()
		return
	}
	if first {
		go p.queue(p.flush)
	}
}

func (p *LogPanel) flush() {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, f := range batch {
		f()
	}
}

func (p *LogPanel) Append(entry *logging.RenderedEntry) {
	p.schedule(func() {
		node := newEntryNode(entry)
		p.nodes[entry.Seq] = node
		p.root.AddChild(node)
	})
}

func (p *LogPanel) Remove(entry *logging.RenderedEntry) {
	p.schedule(func() {
		node, ok := p.nodes[entry.Seq]
		if !ok {
			return
		}
		delete(p.nodes, entry.Seq)
		if p.GetCurrentNode() == node {
			p.SetCurrentNode(nil)
		}
		p.root.RemoveChild(node)
	})
}

func (p *LogPanel) ScrollToEnd() {
	p.schedule(func() {
		children := p.root.GetChildren()
		if len(children) > 0 {
			p.SetCurrentNode(children[len(children)-1])
		}
	})
}

func (p *LogPanel) BindToggles(entry *logging.RenderedEntry) {
	p.schedule(func() {
		if node, ok := p.nodes[entry.Seq]; ok {
			bindBranches(node)
		}
	})
}

// Entries returns the tree nodes of the displayed entries, oldest first.
// It must be called from the UI goroutine.
func (p *LogPanel) Entries() []*tview.TreeNode {
	return p.root.GetChildren()
}

// ToggleNode flips the expanded state of a bound branch. Its parent and
// siblings are left alone.
func (p *LogPanel) ToggleNode(node *tview.TreeNode) {
	if node == nil || len(node.GetChildren()) == 0 {
		return
	}
	if ref, ok := node.GetReference().(*branchRef); !ok || !ref.bound {
		return
	}
	node.SetExpanded(!node.IsExpanded())
}

type branchRef struct {
	node  *markup.Node
	bound bool
}

func newEntryNode(entry *logging.RenderedEntry) *tview.TreeNode {
	text := fmt.Sprintf("[%s] [%s] %s",
		entry.Timestamp.UTC().Format(logging.TimestampLayout), entry.Label, markup.Label(entry.Message))
	node := tview.NewTreeNode(tview.Escape(text)).
		SetColor(widgets.LevelColor(entry.Level)).
		SetReference(&branchRef{node: entry.Message}).
		SetExpanded(false)
	addChildren(node, entry.Message)
	return node
}

// addChildren mirrors the children of an interactive markup node under parent.
func addChildren(parent *tview.TreeNode, n *markup.Node) {
	if !n.Interactive() {
		return
	}
	switch n.Kind {
	case markup.KindStructure:
		for _, e := range n.Entries {
			parent.AddChild(newValueNode(e.Key+": ", e.Value))
		}
	case markup.KindElement:
		for _, c := range n.Children {
			parent.AddChild(newValueNode("", c))
		}
		parent.AddChild(tview.NewTreeNode(tview.Escape("</" + n.Text + ">")).
			SetColor(widgets.KeyColor).
			SetSelectable(false))
	}
}

func newValueNode(prefix string, n *markup.Node) *tview.TreeNode {
	color := widgets.ValueColor
	if n.Kind == markup.KindElement && !n.Truncated {
		color = widgets.KeyColor
	}
	node := tview.NewTreeNode(tview.Escape(prefix + markup.Label(n))).
		SetColor(color).
		SetSelectable(n.Interactive()).
		SetReference(&branchRef{node: n}).
		SetExpanded(false)
	addChildren(node, n)
	return node
}

func bindBranches(node *tview.TreeNode) {
	if ref, ok := node.GetReference().(*branchRef); ok {
		ref.bound = true
	}
	for _, c := range node.GetChildren() {
		bindBranches(c)
	}
}
