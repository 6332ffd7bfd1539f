// Package serialize renders a tree.Document subtree back to HTML.
package serialize

import (
	"strings"

	"github.com/larskjaer/marktree/tree"
)

// Options configures serialization. IndentSize is reserved for future
// pretty-printing; plain serialization never needs it.
type Options struct {
	Pretty     bool
	IndentSize int
}

// ToHTML serializes id. For the document node, its children are emitted
// without framing; for any other node, the node's own tag is emitted. A
// Hole node anywhere in the walk is a programming error and panics.
func ToHTML(d *tree.Document, id tree.NodeID, opts Options) string {
	var sb strings.Builder
	if id == tree.DocumentNodeID {
		serializeChildren(&sb, d, id, opts, 0)
	} else {
		serializeNode(&sb, d, id, opts, 0)
	}
	return sb.String()
}

func serializeChildren(sb *strings.Builder, d *tree.Document, parent tree.NodeID, opts Options, depth int) {
	for child := d.Node(parent).FirstChild; child != 0; child = d.Node(child).NextSibling {
		serializeNode(sb, d, child, opts, depth)
	}
}

func serializeNode(sb *strings.Builder, d *tree.Document, id tree.NodeID, opts Options, depth int) {
	n := d.Node(id)
	switch n.Kind {
	case tree.KindHole:
		panic("serialize: encountered a Hole node")
	case tree.KindDocument:
		serializeChildren(sb, d, id, opts, depth)
	case tree.KindDoctype:
		serializeDoctype(sb, n.Data.Doctype)
	case tree.KindText:
		sb.WriteString(escapeText(n.Data.Text))
	case tree.KindComment:
		sb.WriteString("<!--")
		sb.WriteString(n.Data.Comment)
		sb.WriteString("-->")
	case tree.KindProcessingInstruction:
		sb.WriteByte('<')
		sb.WriteByte('?')
		sb.WriteString(n.Data.PI.Target)
		sb.WriteByte(' ')
		sb.WriteString(n.Data.PI.Data)
		sb.WriteByte('?')
		sb.WriteByte('>')
	case tree.KindElement:
		serializeElement(sb, d, id, opts, depth)
	}
}

func serializeDoctype(sb *strings.Builder, dt tree.Doctype) {
	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(dt.Name)
	sb.WriteByte('>')
}

func serializeElement(sb *strings.Builder, d *tree.Document, id tree.NodeID, opts Options, depth int) {
	elem, _ := d.Node(id).AsElement()

	sb.WriteByte('<')
	sb.WriteString(elem.Name.Local)
	for _, attr := range elem.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name.Local)
		sb.WriteString("=\"")
		sb.WriteString(escapeAttr(attr.Value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	if isVoidElement(elem.Name.Local) {
		return
	}

	serializeChildren(sb, d, id, opts, depth+1)

	sb.WriteString("</")
	sb.WriteString(elem.Name.Local)
	sb.WriteByte('>')
}

func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeAttr(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
