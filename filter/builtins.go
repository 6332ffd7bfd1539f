package filter

import (
	"github.com/larskjaer/marktree/internal/nametable"
	"github.com/larskjaer/marktree/tree"
)

// DetachBannedElements detaches any element flagged banned in tag
// metadata, or whose tag is not in the table at all.
func DetachBannedElements(d *tree.Document, id tree.NodeID) Action {
	elem, ok := d.Node(id).AsElement()
	if !ok {
		return Continue
	}
	meta, known := nametable.TagMetaOf(elem.Name.Local)
	if !known || meta.IsBanned() {
		return Detach
	}
	return Continue
}

// DetachComments detaches every comment node.
func DetachComments(d *tree.Document, id tree.NodeID) Action {
	if d.Node(id).Kind == tree.KindComment {
		return Detach
	}
	return Continue
}

// DetachPIs detaches every processing-instruction node.
func DetachPIs(d *tree.Document, id tree.NodeID) Action {
	if d.Node(id).Kind == tree.KindProcessingInstruction {
		return Detach
	}
	return Continue
}

// RetainBasicAttributes removes every attribute from a known element that
// is not in that tag's basic-attribute set. Unknown elements are left
// untouched.
func RetainBasicAttributes(d *tree.Document, id tree.NodeID) Action {
	elem, ok := d.Node(id).AsElement()
	if !ok {
		return Continue
	}
	meta, known := nametable.TagMetaOf(elem.Name.Local)
	if !known {
		return Continue
	}
	kept := elem.Attrs[:0]
	for _, a := range elem.Attrs {
		if meta.HasBasicAttr(a.Name.Local) {
			kept = append(kept, a)
		}
	}
	elem.Attrs = kept
	return Continue
}

var multiMediaTags = map[string]struct{}{
	"audio": {}, "embed": {}, "iframe": {}, "img": {}, "meter": {},
	"object": {}, "picture": {}, "progress": {}, "svg": {}, "video": {},
}

func isMultiMedia(n *tree.Node) bool {
	e, ok := n.AsElement()
	if !ok {
		return false
	}
	_, ok = multiMediaTags[e.Name.Local]
	return ok
}

func isInline(d *tree.Document, id tree.NodeID) bool {
	e, ok := d.Node(id).AsElement()
	if !ok {
		return false
	}
	meta, known := nametable.TagMetaOf(e.Name.Local)
	return known && meta.IsInline()
}

func isBlock(d *tree.Document, id tree.NodeID) bool {
	e, ok := d.Node(id).AsElement()
	if !ok {
		return false
	}
	meta, known := nametable.TagMetaOf(e.Name.Local)
	return known && !meta.IsInline()
}

func isLogicalWhitespace(d *tree.Document, id tree.NodeID) bool {
	n := d.Node(id)
	if t, ok := n.AsText(); ok {
		return nametable.IsAllControlOrWhitespace(t)
	}
	return n.IsElem("br")
}

// FoldEmptyInline folds any inline, non-multimedia element whose children
// are all "logical whitespace" (text consisting solely of control/
// whitespace characters, or a <br>).
func FoldEmptyInline(d *tree.Document, id tree.NodeID) Action {
	n := d.Node(id)
	if !isInline(d, id) || isMultiMedia(n) {
		return Continue
	}
	for child := n.FirstChild; child != 0; child = d.Node(child).NextSibling {
		if !isLogicalWhitespace(d, child) {
			return Continue
		}
	}
	return Fold
}

func isPreformatted(localName string) bool {
	switch localName {
	case "pre", "xmp", "plaintext":
		return true
	}
	return false
}

// XMPToPre rewrites <xmp>, <listing>, and <plaintext> local names to pre.
func XMPToPre(d *tree.Document, id tree.NodeID) Action {
	if elem, ok := d.Node(id).AsElement(); ok {
		switch elem.Name.Local {
		case "xmp", "listing", "plaintext":
			elem.Name.Local = "pre"
		}
	}
	return Continue
}

func isPreformNode(d *tree.Document, id tree.NodeID) bool {
	e, ok := d.Node(id).AsElement()
	return ok && isPreformatted(e.Name.Local)
}

// TextNormalizer builds a TextNormalize filter function with its own
// merge buffer, so callers never share mutable state across concurrent
// filter passes.
type TextNormalizer struct {
	mergeBuf string
}

// NewTextNormalizer returns a fresh normalizer ready to be used as a Func
// in a single Walk/WalkAt pass.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{}
}

// Filter is the Func to pass to Walk: sibling text runs are merged,
// characters are classified and replaced, whitespace is trimmed at block
// boundaries, and an empty result detaches the node.
func (tn *TextNormalizer) Filter(d *tree.Document, id tree.NodeID) Action {
	n := d.Node(id)
	text, ok := n.AsText()
	if !ok {
		return Continue
	}

	// If the following sibling is also text, queue this payload and
	// detach; the terminal node in the run absorbs the queue.
	if next := n.NextSibling; next != 0 {
		if _, isText := d.Node(next).AsText(); isText {
			tn.mergeBuf += text
			return Detach
		}
	}

	if tn.mergeBuf != "" {
		text = tn.mergeBuf + text
		tn.mergeBuf = ""
	}

	parent := n.Parent
	parentIsBlock := isBlock(d, parent)
	var inPre bool
	for cur := parent; cur != 0; cur = d.Node(cur).Parent {
		if isPreformNode(d, cur) {
			inPre = true
			break
		}
		if cur == tree.DocumentNodeID {
			break
		}
	}

	leftIsBlock := n.PrevSibling != 0 && isBlock(d, n.PrevSibling)
	rightIsBlock := n.NextSibling != 0 && isBlock(d, n.NextSibling)

	trimStart := (parentIsBlock && n.PrevSibling == 0) || leftIsBlock
	trimEnd := (parentIsBlock && n.NextSibling == 0) || rightIsBlock

	result := nametable.ReplaceChars(text, !inPre, true, trimStart, trimEnd)
	if result == "" {
		return Detach
	}
	n.Data.Text = result
	return Continue
}
