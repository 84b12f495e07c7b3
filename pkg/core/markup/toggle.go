package markup

// Toggles returns the number of interactive nodes in the tree.
func Toggles(root *Node) int {
	if root == nil {
		return 0
	}
	count := 0
	if root.Interactive() {
		count++
	}
	for _, c := range root.children() {
		count += Toggles(c)
	}
	return count
}

// ToggleAt returns a tree in which only the ordinal-th interactive node, in
// pre-order, has its expanded state flipped. The input is left untouched;
// subtrees off the path to the toggled node are shared. ok is false when the
// ordinal is out of range.
func ToggleAt(root *Node, ordinal int) (*Node, bool) {
	if ordinal < 0 {
		return root, false
	}
	next, _, ok := toggleAt(root, ordinal)
	return next, ok
}

// toggleAt walks n in pre-order. remaining counts the interactive nodes still
// to skip and is returned updated when the target is not inside n.
func toggleAt(n *Node, remaining int) (*Node, int, bool) {
	if n == nil {
		return n, remaining, false
	}
	if n.Interactive() {
		if remaining == 0 {
			return n.Toggled(), 0, true
		}
		remaining--
	}

	switch n.Kind {
	case KindStructure:
		for i, e := range n.Entries {
			child, rest, ok := toggleAt(e.Value, remaining)
			if ok {
				c := *n
				c.Entries = append([]Entry(nil), n.Entries...)
				c.Entries[i].Value = child
				return &c, 0, true
			}
			remaining = rest
		}
	case KindElement:
		for i, ch := range n.Children {
			child, rest, ok := toggleAt(ch, remaining)
			if ok {
				c := *n
				c.Children = append([]*Node(nil), n.Children...)
				c.Children[i] = child
				return &c, 0, true
			}
			remaining = rest
		}
	}
	return n, remaining, false
}

// Label returns a one-line plain text summary of n, the way a collapsed tree
// row would show it.
func Label(n *Node) string {
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case KindStructure:
		if len(n.Entries) == 0 && !n.Truncated {
			return n.open() + n.close()
		}
		return n.open() + "..." + n.close()
	case KindElement:
		if n.Truncated {
			return "..."
		}
		label := "<" + n.Text
		for _, a := range n.Attrs {
			label += " " + a.Name + `="` + a.Value + `"`
		}
		if len(n.Children) == 0 {
			return label + "/>"
		}
		return label + ">"
	}
	return n.Text
}
