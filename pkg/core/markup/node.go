// Package markup converts arbitrary values into collapsible tree markup.
package markup

// MaxDepth is the deepest level at which structures and elements are still
// expanded. Anything nested deeper renders as a placeholder.
const MaxDepth = 5

// Kind identifies which renderer a Node belongs to.
type Kind int

const (
	KindLeaf Kind = iota
	KindStructure
	KindElement
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindStructure:
		return "structure"
	case KindElement:
		return "element"
	default:
		return "unknown"
	}
}

// Attr is a single name/value attribute of a markup element.
type Attr struct {
	Name  string
	Value string
}

// Entry is one keyed child of a structure.
type Entry struct {
	Key   string
	Value *Node
}

// Node is the unit of a formatted value tree. Nodes are never mutated after
// Build returns; toggling produces new nodes.
type Node struct {
	Kind Kind

	// Text is the raw leaf text, or the lower-cased tag name of an element.
	Text string

	// Sequence selects [] over {} for structures.
	Sequence bool
	Entries  []Entry

	Attrs    []Attr
	Children []*Node

	// Truncated marks a structure or element cut off by the depth ceiling.
	Truncated bool
	Expanded  bool
}

// Interactive reports whether the node renders with a toggle.
func (n *Node) Interactive() bool {
	if n == nil || n.Truncated {
		return false
	}
	switch n.Kind {
	case KindStructure:
		return len(n.Entries) > 0
	case KindElement:
		return len(n.Children) > 0
	}
	return false
}

// Toggled returns a shallow copy of n with its expanded state flipped.
// Non-interactive nodes are returned unchanged.
func (n *Node) Toggled() *Node {
	if !n.Interactive() {
		return n
	}
	c := *n
	c.Expanded = !n.Expanded
	return &c
}

// open and close return the bracket glyphs of a structure.
func (n *Node) open() string {
	if n.Sequence {
		return "["
	}
	return "{"
}

func (n *Node) close() string {
	if n.Sequence {
		return "]"
	}
	return "}"
}

// children returns the child nodes in render order regardless of kind.
func (n *Node) children() []*Node {
	switch n.Kind {
	case KindStructure:
		out := make([]*Node, len(n.Entries))
		for i, e := range n.Entries {
			out[i] = e.Value
		}
		return out
	case KindElement:
		return n.Children
	}
	return nil
}

// Leaf creates a leaf node holding raw text.
func Leaf(text string) *Node {
	return &Node{Kind: KindLeaf, Text: text}
}
