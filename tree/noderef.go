package tree

// NodeRef is a read-only reference binding a NodeID to the Document that
// owns it, for convenient chained traversal without re-passing the document
// at every call site. It is a small value type — cheap to copy, cheap to
// compare by (doc, id) identity — not an independent handle: its validity is
// tied to the referenced Document's lifetime and current shape.
type NodeRef struct {
	doc *Document
	id  NodeID
}

// NewNodeRef binds id to doc.
func NewNodeRef(doc *Document, id NodeID) NodeRef {
	return NodeRef{doc: doc, id: id}
}

// Doc returns the Document this reference is bound to.
func (r NodeRef) Doc() *Document { return r.doc }

// ID returns the bound NodeID.
func (r NodeRef) ID() NodeID { return r.id }

// Node returns the underlying node record.
func (r NodeRef) Node() *Node { return r.doc.Node(r.id) }

// Kind returns the referenced node's Kind.
func (r NodeRef) Kind() Kind { return r.doc.Node(r.id).Kind }

// AsElement returns the node's ElementData and true if it is a KindElement.
func (r NodeRef) AsElement() (*ElementData, bool) { return r.doc.Node(r.id).AsElement() }

// AsText returns the node's text payload and true if it is a KindText.
func (r NodeRef) AsText() (string, bool) { return r.doc.Node(r.id).AsText() }

// Parent returns the node's parent as a NodeRef, if any.
func (r NodeRef) Parent() (NodeRef, bool) {
	p := r.doc.Node(r.id).Parent
	if p == 0 {
		return NodeRef{}, false
	}
	return NodeRef{doc: r.doc, id: p}, true
}

// Children returns the node's direct children, in insertion order, as
// NodeRefs bound to the same document.
func (r NodeRef) Children() []NodeRef {
	return r.wrap(r.doc.Children(r.id))
}

// Descendants returns the node itself followed by every descendant,
// depth-first pre-order, as NodeRefs.
func (r NodeRef) Descendants() []NodeRef {
	return r.wrap(r.doc.Descendants(r.id))
}

// NodeAndAncestors returns the node, then its parent, grandparent, and so
// on, terminating at and including the document node.
func (r NodeRef) NodeAndAncestors() []NodeRef {
	return r.wrap(r.doc.NodeAndAncestors(r.id))
}

// Text concatenates, in tree order, the payload of every Text descendant.
// It returns ok=false for node kinds where text content is undefined.
func (r NodeRef) Text() (string, bool) { return r.doc.Text(r.id) }

// DeepClone produces a fresh Document containing a copy of the subtree
// rooted at this reference.
func (r NodeRef) DeepClone() *Document { return r.doc.DeepClone(r.id) }

// RefPredicate decides whether a NodeRef matches during Select/Find.
type RefPredicate func(NodeRef) bool

func (r NodeRef) asPredicate(p RefPredicate) Predicate {
	return func(d *Document, id NodeID) bool {
		return p(NodeRef{doc: d, id: id})
	}
}

// Select performs a depth-first walk yielding every descendant for which
// predicate holds. On a non-matching element node, the walk descends into
// its children, not its siblings. On a matching node, the walk continues
// into both the node's children and its right siblings, so matches may
// nest.
func (r NodeRef) Select(predicate RefPredicate) []NodeRef {
	return r.wrap(r.doc.Select(r.id, r.asPredicate(predicate)))
}

// Find returns the first descendant, in Select order, for which predicate
// holds.
func (r NodeRef) Find(predicate RefPredicate) (NodeRef, bool) {
	id, ok := r.doc.Find(r.id, r.asPredicate(predicate))
	if !ok {
		return NodeRef{}, false
	}
	return NodeRef{doc: r.doc, id: id}, true
}

// FindChild returns the first direct child for which predicate holds.
func (r NodeRef) FindChild(predicate RefPredicate) (NodeRef, bool) {
	id, ok := r.doc.FindChild(r.id, r.asPredicate(predicate))
	if !ok {
		return NodeRef{}, false
	}
	return NodeRef{doc: r.doc, id: id}, true
}

// SelectChildren returns every direct child for which predicate holds.
func (r NodeRef) SelectChildren(predicate RefPredicate) []NodeRef {
	return r.wrap(r.doc.SelectChildren(r.id, r.asPredicate(predicate)))
}

func (r NodeRef) wrap(ids []NodeID) []NodeRef {
	if ids == nil {
		return nil
	}
	out := make([]NodeRef, len(ids))
	for i, id := range ids {
		out[i] = NodeRef{doc: r.doc, id: id}
	}
	return out
}

// DocumentNodeRef returns the document node as a NodeRef.
func (d *Document) DocumentNodeRef() NodeRef {
	return NodeRef{doc: d, id: DocumentNodeID}
}

// RootElementRef returns the document's root element as a NodeRef, if one
// exists.
func (d *Document) RootElementRef() (NodeRef, bool) {
	id, ok := d.RootElement()
	if !ok {
		return NodeRef{}, false
	}
	return NodeRef{doc: d, id: id}, true
}
