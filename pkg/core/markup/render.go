package markup

import "strings"

// CSS class names shared with the styling and interaction layer.
const (
	ClassToggle      = "adl-toggle"
	ClassKey         = "adl-key"
	ClassValue       = "adl-value"
	ClassEllipsis    = "adl-ellipsis"
	ClassCollapsible = "adl-collapsible"
	ClassExpanded    = "adl-expanded"
)

const ellipsis = `<span class="` + ClassEllipsis + `">...</span>`

// Format renders value as markup starting at the given depth.
func Format(value any, depth int) string {
	return Render(Build(value, depth))
}

// Render converts a Node tree into markup, honouring each node's expanded
// state.
func Render(n *Node) string {
	var sb strings.Builder
	render(&sb, n)
	return sb.String()
}

func render(sb *strings.Builder, n *Node) {
	if n == nil {
		writeValue(sb, "null")
		return
	}
	switch n.Kind {
	case KindStructure:
		renderStructure(sb, n)
	case KindElement:
		renderElement(sb, n)
	default:
		writeValue(sb, Escape(n.Text))
	}
}

func writeValue(sb *strings.Builder, escaped string) {
	sb.WriteString(`<span class="` + ClassValue + `">`)
	sb.WriteString(escaped)
	sb.WriteString(`</span>`)
}

func openToggle(sb *strings.Builder, n *Node) {
	sb.WriteString(`<span class="` + ClassToggle + ` ` + ClassKey)
	if n.Expanded {
		sb.WriteString(` ` + ClassExpanded)
	}
	sb.WriteString(`">`)
}

func openContainer(sb *strings.Builder, n *Node) {
	sb.WriteString(`<div class="` + ClassCollapsible)
	if n.Expanded {
		sb.WriteString(` ` + ClassExpanded)
	}
	sb.WriteString(`">`)
}

func writeKey(sb *strings.Builder, escaped string) {
	sb.WriteString(`<span class="` + ClassKey + `">`)
	sb.WriteString(escaped)
	sb.WriteString(`</span>`)
}

func renderStructure(sb *strings.Builder, n *Node) {
	if n.Truncated {
		writeValue(sb, n.open()+"..."+n.close())
		return
	}
	if len(n.Entries) == 0 {
		writeValue(sb, n.open()+n.close())
		return
	}

	openToggle(sb, n)
	sb.WriteString(n.open())
	sb.WriteString(ellipsis)
	sb.WriteString(`</span>`)

	openContainer(sb, n)
	for _, e := range n.Entries {
		sb.WriteString(`<div>`)
		writeKey(sb, Escape(e.Key))
		sb.WriteString(`: `)
		render(sb, e.Value)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	writeKey(sb, n.close())
}

func writeAttrs(sb *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		sb.WriteString(` `)
		sb.WriteString(Escape(a.Name))
		sb.WriteString(`="`)
		sb.WriteString(Escape(a.Value))
		sb.WriteString(`"`)
	}
}

func renderElement(sb *strings.Builder, n *Node) {
	if n.Truncated {
		writeValue(sb, "...")
		return
	}
	tag := Escape(n.Text)

	if len(n.Children) == 0 {
		sb.WriteString(`<span class="` + ClassKey + `">&lt;`)
		sb.WriteString(tag)
		writeAttrs(sb, n.Attrs)
		sb.WriteString(`/&gt;</span>`)
		return
	}

	openToggle(sb, n)
	sb.WriteString(`&lt;`)
	sb.WriteString(tag)
	writeAttrs(sb, n.Attrs)
	sb.WriteString(`&gt;`)
	sb.WriteString(ellipsis)
	sb.WriteString(`</span>`)

	openContainer(sb, n)
	for _, child := range n.Children {
		sb.WriteString(`<div>`)
		render(sb, child)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	writeKey(sb, `&lt;/`+tag+`&gt;`)
}
