package markup

import (
	"reflect"
	"strings"

	"golang.org/x/net/html"
)

// ChildKind classifies the child nodes of an Element.
type ChildKind int

const (
	ChildOther ChildKind = iota
	ChildElement
	ChildText
)

// Child is one child node of an Element. Element is set for ChildElement,
// Text for ChildText.
type Child struct {
	Kind    ChildKind
	Element Element
	Text    string
}

// Element is a DOM-like node: a tag name, attributes in their natural order
// and child nodes in document order.
type Element interface {
	TagName() string
	Attributes() []Attr
	ChildNodes() []Child
}

// FromHTML adapts an *html.Node to an Element. It returns nil unless the node
// is an element node.
func FromHTML(n *html.Node) Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return htmlElement{n}
}

type htmlElement struct {
	n *html.Node
}

func (e htmlElement) TagName() string {
	return e.n.Data
}

func (e htmlElement) Attributes() []Attr {
	attrs := make([]Attr, 0, len(e.n.Attr))
	for _, a := range e.n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Val})
	}
	return attrs
}

func (e htmlElement) ChildNodes() []Child {
	var children []Child
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			children = append(children, Child{Kind: ChildElement, Element: htmlElement{c}})
		case html.TextNode:
			children = append(children, Child{Kind: ChildText, Text: c.Data})
		default:
			children = append(children, Child{Kind: ChildOther})
		}
	}
	return children
}

// isNilElement reports whether el is nil or a typed nil behind the interface.
func isNilElement(el Element) bool {
	if el == nil {
		return true
	}
	rv := reflect.ValueOf(el)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// buildElement mirrors an element as a Node. Comments and whitespace-only
// text children are dropped entirely.
func buildElement(el Element, depth int) *Node {
	node := &Node{
		Kind: KindElement,
		Text: strings.ToLower(el.TagName()),
	}
	if depth > MaxDepth {
		node.Truncated = true
		return node
	}
	node.Attrs = el.Attributes()

	for _, child := range el.ChildNodes() {
		switch child.Kind {
		case ChildElement:
			if isNilElement(child.Element) {
				continue
			}
			node.Children = append(node.Children, buildElement(child.Element, depth+1))
		case ChildText:
			text := strings.TrimSpace(child.Text)
			if text == "" {
				continue
			}
			node.Children = append(node.Children, Leaf(text))
		}
	}
	return node
}
