package treesink

import (
	"log/slog"

	"github.com/larskjaer/marktree/encoding"
	htmlerrors "github.com/larskjaer/marktree/errors"
	"github.com/larskjaer/marktree/tree"
)

// Builder implements Sink by materializing a tree.Document. It is driven by
// ParseDocument/ParseFragment, which walk a finished golang.org/x/net/html
// parse result and replay it as Sink calls — the tokenizer and
// insertion-mode algorithm themselves remain x/net/html's responsibility,
// never reimplemented here.
type Builder struct {
	Document   *tree.Document
	QuirksMode QuirksMode
	Logger     *slog.Logger

	// Hint, if set, receives an IncrementError for every parse error whose
	// description matches encoding.IllSequenceTag.
	Hint *encoding.Hint
	// Errors accumulates every parse error reported through ParseError,
	// for callers that want more than the hint's error counter.
	Errors htmlerrors.ParseErrors

	encodingHook func(metas []map[string]string)
	metaScanned  bool
}

// NewBuilder returns a Builder over a fresh, empty tree.Document.
func NewBuilder() *Builder {
	return &Builder{Document: tree.New()}
}

// OnMetaElement registers f to be called once, the first time a <body>
// element is appended to the document, to support the meta-charset scan
// (f is not called if the document has no <html>/<head> at that point). f
// receives the attribute maps of every <meta> element found under <head>
// in one batch, so the caller can split HTMLMetaConfidence across them.
func (b *Builder) OnMetaElement(f func(metas []map[string]string)) {
	b.encodingHook = f
}

func (b *Builder) GetDocument() tree.NodeID { return tree.DocumentNodeID }

func (b *Builder) CreateElement(name tree.QualName, attrs []tree.Attribute, flags ElementFlags) tree.NodeID {
	id := b.Document.NewElement(name, attrs)
	elem, _ := b.Document.Node(id).AsElement()
	elem.MathMLAnnotationXMLIntegrationPoint = flags.MathMLAnnotationXMLIntegrationPoint
	return id
}

func (b *Builder) CreateComment(text string) tree.NodeID { return b.Document.NewComment(text) }

func (b *Builder) CreatePI(target, data string) tree.NodeID {
	return b.Document.NewPI(target, data)
}

// appendCommon implements the shared "merge into an existing trailing text
// node, or create a new one" logic used by Append and AppendBeforeSibling.
func (b *Builder) appendCommon(child NodeOrText, previous func() tree.NodeID, do func(newNode tree.NodeID)) {
	if child.IsText {
		if prevID := previous(); prevID != 0 {
			if t, ok := b.Document.Node(prevID).AsText(); ok {
				b.Document.Node(prevID).Data.Text = t + child.Text
				return
			}
		}
		do(b.Document.NewText(child.Text))
		return
	}
	do(child.Node)
}

func (b *Builder) Append(parent tree.NodeID, child NodeOrText) {
	b.appendCommon(child,
		func() tree.NodeID { return b.Document.Node(parent).LastChild },
		func(newNode tree.NodeID) {
			b.Document.AppendChild(parent, newNode)
			b.onAppended(parent, newNode)
		})
}

func (b *Builder) AppendBeforeSibling(sibling tree.NodeID, child NodeOrText) {
	b.appendCommon(child,
		func() tree.NodeID { return b.Document.Node(sibling).PrevSibling },
		func(newNode tree.NodeID) { b.Document.InsertBeforeSibling(sibling, newNode) })
}

func (b *Builder) AppendBasedOnParentNode(element, prevElement tree.NodeID, child NodeOrText) {
	if b.Document.Node(element).Parent != 0 {
		b.AppendBeforeSibling(element, child)
	} else {
		b.Append(prevElement, child)
	}
}

func (b *Builder) AppendDoctypeToDocument(name, publicID, systemID string) {
	id := b.Document.NewDoctype(name, publicID, systemID)
	b.Document.AppendChild(tree.DocumentNodeID, id)
}

func (b *Builder) AddAttrsIfMissing(target tree.NodeID, attrs []tree.Attribute) {
	elem, ok := b.Document.Node(target).AsElement()
	if !ok {
		return
	}
	existing := make(map[string]struct{}, len(elem.Attrs))
	for _, a := range elem.Attrs {
		existing[a.Name.Local] = struct{}{}
	}
	for _, a := range attrs {
		if _, ok := existing[a.Name.Local]; !ok {
			elem.Attrs = append(elem.Attrs, a)
		}
	}
}

func (b *Builder) RemoveFromParent(target tree.NodeID) { b.Document.Detach(target) }

func (b *Builder) ReparentChildren(from, to tree.NodeID) {
	for child := b.Document.Node(from).FirstChild; child != 0; {
		next := b.Document.Node(child).NextSibling
		b.Document.AppendChild(to, child)
		child = next
	}
}

func (b *Builder) GetTemplateContents(target tree.NodeID) tree.NodeID { return target }

func (b *Builder) SetQuirksMode(mode QuirksMode) { b.QuirksMode = mode }

func (b *Builder) SameNode(x, y tree.NodeID) bool { return x == y }

func (b *Builder) ElemName(target tree.NodeID) tree.QualName {
	elem, ok := b.Document.Node(target).AsElement()
	if !ok {
		return tree.QualName{}
	}
	return elem.Name
}

// ParseError is the Sink's parse_error hook: a description matching
// encoding.IllSequenceTag bumps the attached Hint's error counter (when one
// is attached; the streaming decoder normally reports this directly to the
// Hint instead, since x/net/html never sees raw bytes to misdecode — this
// path exists for sinks driven some other way), and every description is
// both collected into Errors and logged at debug level.
func (b *Builder) ParseError(description string) {
	if description == encoding.IllSequenceTag && b.Hint != nil {
		b.Hint.IncrementError()
	}
	b.Errors = append(b.Errors, &htmlerrors.ParseError{Code: description, Message: description})
	if b.Logger != nil {
		b.Logger.Debug("parse error", "description", description)
	}
}

// onAppended runs the meta-charset scan hook the first time <body> is
// appended to the document.
func (b *Builder) onAppended(parent, newNode tree.NodeID) {
	if b.metaScanned || b.encodingHook == nil {
		return
	}
	elem, ok := b.Document.Node(newNode).AsElement()
	if !ok || elem.Name.Local != "body" {
		return
	}
	b.metaScanned = true
	head, ok := b.Document.FindChild(tree.DocumentNodeID, func(d *tree.Document, id tree.NodeID) bool {
		return d.Node(id).IsElem("html")
	})
	if !ok {
		return
	}
	headElem, ok := b.Document.FindChild(head, func(d *tree.Document, id tree.NodeID) bool {
		return d.Node(id).IsElem("head")
	})
	if !ok {
		return
	}
	metaIDs := b.Document.Select(headElem, func(d *tree.Document, id tree.NodeID) bool {
		return d.Node(id).IsElem("meta")
	})
	metas := make([]map[string]string, 0, len(metaIDs))
	for _, metaID := range metaIDs {
		metaElem, _ := b.Document.Node(metaID).AsElement()
		attrs := make(map[string]string, len(metaElem.Attrs))
		for _, a := range metaElem.Attrs {
			attrs[a.Name.Local] = a.Value
		}
		metas = append(metas, attrs)
	}
	b.encodingHook(metas)
}
