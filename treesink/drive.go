package treesink

import (
	"bytes"
	"log/slog"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/larskjaer/marktree/encoding"
	"github.com/larskjaer/marktree/internal/nametable"
	"github.com/larskjaer/marktree/tree"
)

func qualNameFor(namespace, local string) tree.QualName {
	ns := tree.NamespaceHTML
	switch namespace {
	case "svg":
		ns = tree.NamespaceSVG
	case "math":
		ns = tree.NamespaceMathML
	}
	return tree.QualName{Namespace: ns, Local: local}
}

func convertAttrs(attrs []xhtml.Attribute) []tree.Attribute {
	out := make([]tree.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, tree.Attribute{
			Name:  tree.QualName{Namespace: a.Namespace, Local: a.Key},
			Value: a.Val,
		})
	}
	return out
}

// driveInto walks n's children (n itself is not converted; it is the
// external html.Node root or context) and replays them as Sink calls with
// parent as the already-materialized destination.
func driveInto(b *Builder, n *xhtml.Node, parent tree.NodeID) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xhtml.TextNode:
			b.Append(parent, AppendText(c.Data))
		case xhtml.CommentNode:
			id := b.CreateComment(c.Data)
			b.Append(parent, AppendNode(id))
		case xhtml.DoctypeNode:
			publicID, systemID := doctypeIDs(c)
			b.AppendDoctypeToDocument(c.Data, publicID, systemID)
		case xhtml.ElementNode:
			id := b.CreateElement(qualNameFor(c.Namespace, c.Data), convertAttrs(c.Attr), ElementFlags{})
			b.Append(parent, AppendNode(id))
			driveInto(b, c, id)
		case xhtml.DocumentNode:
			driveInto(b, c, parent)
		}
	}
}

func doctypeIDs(n *xhtml.Node) (publicID, systemID string) {
	for _, a := range n.Attr {
		switch a.Key {
		case "public":
			publicID = a.Val
		case "system":
			systemID = a.Val
		}
	}
	return publicID, systemID
}

// ParseDocument drives golang.org/x/net/html's tokenizer and
// insertion-mode tree construction over a complete HTML document and
// replays the result through Builder.
func ParseDocument(data []byte) (*tree.Document, error) {
	b, err := parseDocumentWith(data, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return b.Document, nil
}

// ParseDocumentWithMetaHook is ParseDocument plus the meta-charset scan
// hook, for use by the buffered parser driver's BOM/meta probe pass.
// hint, if non-nil, is attached to the returned Builder so ParseError can
// feed the ill-sequence counter.
func ParseDocumentWithMetaHook(data []byte, hint *encoding.Hint, hook func(metas []map[string]string)) (*Builder, error) {
	return parseDocumentWith(data, hint, hook, nil)
}

// ParseDocumentWithLogger is ParseDocumentWithMetaHook plus an ambient
// logger attached to the Builder before the parse runs, so any ParseError
// call made during driveInto is observed at the configured level.
func ParseDocumentWithLogger(data []byte, hint *encoding.Hint, hook func(metas []map[string]string), logger *slog.Logger) (*Builder, error) {
	return parseDocumentWith(data, hint, hook, logger)
}

func parseDocumentWith(data []byte, hint *encoding.Hint, hook func(metas []map[string]string), logger *slog.Logger) (*Builder, error) {
	root, err := xhtml.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := NewBuilder()
	b.Hint = hint
	b.Logger = logger
	b.OnMetaElement(hook)
	driveInto(b, root, b.GetDocument())
	return b, nil
}

// ParseFragment drives golang.org/x/net/html's fragment-parsing entry
// point with the given context element tag name, synthesizes the <html>
// wrapper the tokenizer itself would produce, and applies the fragment-root
// coercion rule: a single block-level Element child folds the wrapper
// entirely; anything else renames the wrapper to div and retains it.
func ParseFragment(data []byte, context string) (*tree.Document, error) {
	contextNode := &xhtml.Node{Type: xhtml.ElementNode, Data: strings.ToLower(context)}
	nodes, err := xhtml.ParseFragment(bytes.NewReader(data), contextNode)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	wrapper := b.CreateElement(qualNameFor("", "html"), nil, ElementFlags{})
	b.Append(b.GetDocument(), AppendNode(wrapper))
	for _, n := range nodes {
		synthetic := &xhtml.Node{Type: xhtml.DocumentNode}
		synthetic.AppendChild(n)
		driveInto(b, synthetic, wrapper)
	}

	coerceFragmentRoot(b.Document, wrapper)
	return b.Document, nil
}

func coerceFragmentRoot(d *tree.Document, wrapper tree.NodeID) {
	var onlyElement tree.NodeID
	elementCount := 0
	for child := d.Node(wrapper).FirstChild; child != 0; child = d.Node(child).NextSibling {
		if d.Node(child).Kind == tree.KindElement {
			elementCount++
			onlyElement = child
		}
	}

	if elementCount == 1 && onlyChild(d, wrapper) == onlyElement && isBlockLevel(d, onlyElement) {
		d.Fold(wrapper)
		return
	}
	wrapperElem, _ := d.Node(wrapper).AsElement()
	wrapperElem.Name.Local = "div"
}

func onlyChild(d *tree.Document, parent tree.NodeID) tree.NodeID {
	first := d.Node(parent).FirstChild
	if first == 0 || d.Node(first).NextSibling != 0 {
		return 0
	}
	return first
}

func isBlockLevel(d *tree.Document, id tree.NodeID) bool {
	elem, ok := d.Node(id).AsElement()
	if !ok {
		return false
	}
	meta, known := nametable.TagMetaOf(elem.Name.Local)
	return known && !meta.IsInline()
}
