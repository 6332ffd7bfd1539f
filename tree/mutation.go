package tree

// AppendChild attaches node as the last child of parent. parent must carry
// a Document or Element node; the append is idempotent with respect to
// node's previous position (it is detached first if already attached).
func (d *Document) AppendChild(parent, node NodeID) {
	d.assertSuitableParent(parent)
	d.Detach(node)

	p := d.Node(parent)
	if p.LastChild == 0 {
		p.FirstChild = node
		p.LastChild = node
	} else {
		last := p.LastChild
		d.Node(last).NextSibling = node
		d.Node(node).PrevSibling = last
		p.LastChild = node
	}
	d.Node(node).Parent = parent
}

// InsertBeforeSibling attaches node as the immediate left sibling of
// sibling. sibling must already have a parent.
func (d *Document) InsertBeforeSibling(sibling, node NodeID) {
	s := d.Node(sibling)
	if s.Parent == 0 {
		violate("insert_before_sibling: sibling %d has no parent", sibling)
	}
	parent := s.Parent
	d.assertSuitableParent(parent)
	d.Detach(node)

	prev := s.PrevSibling
	n := d.Node(node)
	n.Parent = parent
	n.PrevSibling = prev
	n.NextSibling = sibling

	if prev == 0 {
		d.Node(parent).FirstChild = node
	} else {
		d.Node(prev).NextSibling = node
	}
	d.Node(sibling).PrevSibling = node
}

// Detach removes id from its parent's child chain and clears its
// parent/sibling links. The payload and descendants are preserved, just
// unreachable from the rest of the tree until re-attached. Detaching the
// document node is a contract violation.
func (d *Document) Detach(id NodeID) {
	if id == DocumentNodeID {
		violate("cannot detach the document node")
	}
	n := d.Node(id)
	if n.Parent == 0 {
		return
	}

	parent := d.Node(n.Parent)
	if n.PrevSibling != 0 {
		d.Node(n.PrevSibling).NextSibling = n.NextSibling
	} else {
		parent.FirstChild = n.NextSibling
	}
	if n.NextSibling != 0 {
		d.Node(n.NextSibling).PrevSibling = n.PrevSibling
	} else {
		parent.LastChild = n.PrevSibling
	}

	n.Parent = 0
	n.PrevSibling = 0
	n.NextSibling = 0
}

// Fold splices id's children into id's position in its parent's child
// chain, then detaches id. A childless node folds exactly like Detach.
// Folding the document node is a contract violation.
func (d *Document) Fold(id NodeID) {
	if id == DocumentNodeID {
		violate("cannot fold the document node")
	}
	var next NodeID
	for child := d.Node(id).FirstChild; child != 0; child = next {
		next = d.Node(child).NextSibling
		d.InsertBeforeSibling(id, child)
	}
	d.Detach(id)
}

func (d *Document) assertSuitableParent(id NodeID) {
	if id == 0 {
		violate("nil parent id")
	}
	k := d.Node(id).Kind
	if k != KindDocument && k != KindElement {
		violate("parent must be Document or Element, got %s", k)
	}
}

// Compact rebuilds the arena in place, keeping only nodes reachable from
// the document node, in depth-first order. Afterwards Len() equals the
// count of reachable nodes.
func (d *Document) Compact() {
	nd := WithCapacity(d.Len())

	var idMap map[NodeID]NodeID
	idMap = make(map[NodeID]NodeID)
	idMap[DocumentNodeID] = DocumentNodeID

	var copyChildren func(oldParent, newParent NodeID)
	copyChildren = func(oldParent, newParent NodeID) {
		for child := d.Node(oldParent).FirstChild; child != 0; child = d.Node(child).NextSibling {
			newID := nd.cloneNodeShallow(d.Node(child))
			nd.AppendChild(newParent, newID)
			idMap[child] = newID
			copyChildren(child, newID)
		}
	}
	copyChildren(DocumentNodeID, DocumentNodeID)

	*d = *nd
}

// cloneNodeShallow copies a node's kind/payload (not its links) into this
// arena and returns the new id.
func (d *Document) cloneNodeShallow(n *Node) NodeID {
	switch n.Kind {
	case KindElement:
		attrs := append([]Attribute(nil), n.Data.Element.Attrs...)
		return d.NewElement(n.Data.Element.Name, attrs)
	case KindText:
		return d.NewText(n.Data.Text)
	case KindComment:
		return d.NewComment(n.Data.Comment)
	case KindDoctype:
		dt := n.Data.Doctype
		return d.NewDoctype(dt.Name, dt.PublicID, dt.SystemID)
	case KindProcessingInstruction:
		pi := n.Data.PI
		return d.NewPI(pi.Target, pi.Data)
	default:
		violate("cannot clone node of kind %s", n.Kind)
		return 0
	}
}

// BulkClone clones the entire arena verbatim, including unreachable slots.
// Faster than DeepClone but not memory-efficient; links are preserved
// as-is since indices are stable across the copy.
func (d *Document) BulkClone() *Document {
	nd := &Document{nodes: make([]Node, len(d.nodes))}
	copy(nd.nodes, d.nodes)
	for i := range nd.nodes {
		nd.nodes[i].Data.Element.Attrs = append([]Attribute(nil), nd.nodes[i].Data.Element.Attrs...)
	}
	return nd
}

// DeepClone produces a fresh Document whose document node contains a copy
// of the subtree rooted at fromID. If fromID is the document node, all its
// children are copied instead of the document node itself.
func (d *Document) DeepClone(fromID NodeID) *Document {
	nd := New()
	if fromID == DocumentNodeID {
		for child := d.Node(DocumentNodeID).FirstChild; child != 0; child = d.Node(child).NextSibling {
			nd.AppendDeepClone(DocumentNodeID, d, child)
		}
	} else {
		nd.AppendDeepClone(DocumentNodeID, d, fromID)
	}
	return nd
}

// AppendDeepClone recursively clones otherID (and its descendants) from
// other into this document, attached as the last child of dstParent.
func (d *Document) AppendDeepClone(dstParent NodeID, other *Document, otherID NodeID) {
	newID := d.cloneNodeShallow(other.Node(otherID))
	d.AppendChild(dstParent, newID)
	for child := other.Node(otherID).FirstChild; child != 0; child = other.Node(child).NextSibling {
		d.AppendDeepClone(newID, other, child)
	}
}
