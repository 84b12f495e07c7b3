package markup

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Unprintable is the leaf text used for values whose string conversion panics.
const Unprintable = "[unprintable value]"

// maxIndirections bounds how many pointers or interfaces are followed in a
// row. A longer chain is rendered as its type name.
const maxIndirections = 32

// Field is one key/value pair of a Fields mapping.
type Field struct {
	Key   string
	Value any
}

// Fields is a mapping that keeps its keys in insertion order.
type Fields []Field

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Build converts an arbitrary value into a Node tree. depth is the nesting
// level of value; top-level callers pass 0. Build never panics.
func Build(value any, depth int) (node *Node) {
	defer func() {
		if r := recover(); r != nil {
			node = Leaf(Unprintable)
		}
	}()
	return build(value, depth)
}

func build(value any, depth int) *Node {
	switch v := value.(type) {
	case nil:
		return Leaf("null")
	case Element:
		if isNilElement(v) {
			return Leaf("null")
		}
		return buildElement(v, depth)
	case *html.Node:
		if el := FromHTML(v); el != nil {
			return buildElement(el, depth)
		}
		if v == nil {
			return Leaf("null")
		}
		return Leaf(strings.TrimSpace(v.Data))
	case Fields:
		return buildFields(v, depth)
	case []byte:
		if v == nil {
			return Leaf("null")
		}
		return Leaf(string(v))
	case string:
		return Leaf(v)
	}
	return buildReflect(reflect.ValueOf(value), depth)
}

func buildReflect(rv reflect.Value, depth int) *Node {
	for i := 0; ; i++ {
		if !rv.IsValid() {
			return Leaf("null")
		}
		if text, ok := textOf(rv); ok {
			return Leaf(text)
		}
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			break
		}
		if rv.IsNil() {
			return Leaf("null")
		}
		if i == maxIndirections {
			return Leaf("<" + rv.Type().String() + ">")
		}
		rv = rv.Elem()
		// An interface may hold one of the types handled by build.
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface && rv.CanInterface() {
			switch rv.Interface().(type) {
			case Element, Fields, []byte:
				return build(rv.Interface(), depth)
			}
		}
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return Leaf("null")
		}
		return buildMap(rv, depth)
	case reflect.Slice:
		if rv.IsNil() {
			return Leaf("null")
		}
		return buildSequence(rv, depth)
	case reflect.Array:
		return buildSequence(rv, depth)
	case reflect.Struct:
		return buildStruct(rv, depth)
	}

	if rv.CanInterface() {
		return Leaf(fmt.Sprint(rv.Interface()))
	}
	return Leaf(rv.String())
}

// textOf returns the error or Stringer text of rv, if it has one.
func textOf(rv reflect.Value) (string, bool) {
	if !rv.CanInterface() {
		return "", false
	}
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return "", false
	}
	if rv.Type().Implements(errorType) {
		return rv.Interface().(error).Error(), true
	}
	if rv.Type().Implements(stringerType) {
		return rv.Interface().(fmt.Stringer).String(), true
	}
	return "", false
}

func newStructure(sequence bool, depth int) (*Node, bool) {
	node := &Node{Kind: KindStructure, Sequence: sequence}
	if depth > MaxDepth {
		node.Truncated = true
		return node, false
	}
	return node, true
}

func buildSequence(rv reflect.Value, depth int) *Node {
	node, ok := newStructure(true, depth)
	if !ok {
		return node
	}
	for i := 0; i < rv.Len(); i++ {
		node.Entries = append(node.Entries, Entry{
			Key:   strconv.Itoa(i),
			Value: buildChild(rv.Index(i), depth+1),
		})
	}
	return node
}

// buildMap enumerates map keys in sorted textual order since Go maps carry no
// order of their own.
func buildMap(rv reflect.Value, depth int) *Node {
	node, ok := newStructure(false, depth)
	if !ok {
		return node
	}
	type kv struct {
		key   string
		value reflect.Value
	}
	pairs := make([]kv, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, kv{key: keyString(iter.Key()), value: iter.Value()})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	for _, p := range pairs {
		node.Entries = append(node.Entries, Entry{Key: p.key, Value: buildChild(p.value, depth+1)})
	}
	return node
}

// buildStruct lists exported fields in declaration order. Promoted fields of
// embedded structs stay under the embedded field's own key.
func buildStruct(rv reflect.Value, depth int) *Node {
	node, ok := newStructure(false, depth)
	if !ok {
		return node
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		node.Entries = append(node.Entries, Entry{Key: name, Value: buildChild(rv.Field(i), depth+1)})
	}
	return node
}

func buildFields(fields Fields, depth int) *Node {
	if fields == nil {
		return Leaf("null")
	}
	node, ok := newStructure(false, depth)
	if !ok {
		return node
	}
	for _, f := range fields {
		node.Entries = append(node.Entries, Entry{Key: f.Key, Value: safeBuild(f.Value, depth+1)})
	}
	return node
}

func buildChild(rv reflect.Value, depth int) *Node {
	if rv.CanInterface() {
		return safeBuild(rv.Interface(), depth)
	}
	return Leaf(fmt.Sprint(rv))
}

// safeBuild confines a panicking child to its own leaf so the siblings still
// render.
func safeBuild(value any, depth int) (node *Node) {
	defer func() {
		if r := recover(); r != nil {
			node = Leaf(Unprintable)
		}
	}()
	return build(value, depth)
}

func keyString(rv reflect.Value) string {
	if text, ok := textOf(rv); ok {
		return text
	}
	if rv.CanInterface() {
		return fmt.Sprint(rv.Interface())
	}
	return rv.String()
}
