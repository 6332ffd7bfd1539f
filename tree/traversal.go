package tree

// Children returns the direct children of id, in insertion order.
func (d *Document) Children(id NodeID) []NodeID {
	var out []NodeID
	for child := d.Node(id).FirstChild; child != 0; child = d.Node(child).NextSibling {
		out = append(out, child)
	}
	return out
}

// Descendants returns id itself followed by every descendant, depth-first
// pre-order.
func (d *Document) Descendants(id NodeID) []NodeID {
	out := []NodeID{id}
	for _, child := range d.Children(id) {
		out = append(out, d.Descendants(child)...)
	}
	return out
}

// NodeAndAncestors returns id, then its parent, grandparent, and so on,
// terminating at and including the document node.
func (d *Document) NodeAndAncestors(id NodeID) []NodeID {
	var out []NodeID
	for cur := id; cur != 0; cur = d.Node(cur).Parent {
		out = append(out, cur)
		if cur == DocumentNodeID {
			break
		}
	}
	return out
}

// Nodes returns the whole tree in pre-order, starting at the document node.
func (d *Document) Nodes() []NodeID {
	return d.Descendants(DocumentNodeID)
}

// Text concatenates, in tree order, the payload of every Text descendant of
// id. It returns ok=false for node kinds where text content is undefined
// (anything other than Text, Element, or Document).
func (d *Document) Text(id NodeID) (string, bool) {
	n := d.Node(id)
	if n.Kind != KindText && n.Kind != KindElement && n.Kind != KindDocument {
		return "", false
	}
	var sb []byte
	var walk func(NodeID)
	walk = func(cur NodeID) {
		c := d.Node(cur)
		if c.Kind == KindText {
			sb = append(sb, c.Data.Text...)
			return
		}
		for child := c.FirstChild; child != 0; child = d.Node(child).NextSibling {
			walk(child)
		}
	}
	walk(id)
	return string(sb), true
}

// Predicate decides whether a node matches during Select/Find.
type Predicate func(d *Document, id NodeID) bool

// Select performs a depth-first walk yielding every descendant of id (id
// itself is never tested) where predicate holds. On a non-matching node, the walk
// descends into its children, not its siblings. On a matching node, the
// walk continues into both the node's children and its right siblings, so
// matches may nest.
func (d *Document) Select(id NodeID, predicate Predicate) []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(cur NodeID) {
		if predicate(d, cur) {
			out = append(out, cur)
		}
		for child := d.Node(cur).FirstChild; child != 0; child = d.Node(child).NextSibling {
			walk(child)
		}
	}
	for child := d.Node(id).FirstChild; child != 0; child = d.Node(child).NextSibling {
		walk(child)
	}
	return out
}

// Find returns the first descendant of id (in Select order) for which
// predicate holds, if any.
func (d *Document) Find(id NodeID, predicate Predicate) (NodeID, bool) {
	var result NodeID
	var found bool
	var walk func(NodeID) bool
	walk = func(cur NodeID) bool {
		if predicate(d, cur) {
			result, found = cur, true
			return true
		}
		for child := d.Node(cur).FirstChild; child != 0; child = d.Node(child).NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	for child := d.Node(id).FirstChild; child != 0; child = d.Node(child).NextSibling {
		if walk(child) {
			break
		}
	}
	return result, found
}

// FindChild returns the first direct child of id for which predicate holds.
func (d *Document) FindChild(id NodeID, predicate Predicate) (NodeID, bool) {
	for child := d.Node(id).FirstChild; child != 0; child = d.Node(child).NextSibling {
		if predicate(d, child) {
			return child, true
		}
	}
	return 0, false
}

// SelectChildren returns every direct child of id for which predicate
// holds.
func (d *Document) SelectChildren(id NodeID, predicate Predicate) []NodeID {
	var out []NodeID
	for child := d.Node(id).FirstChild; child != 0; child = d.Node(child).NextSibling {
		if predicate(d, child) {
			out = append(out, child)
		}
	}
	return out
}

// RootElement returns the document's root element: the document node's
// sole Element direct child, provided it has no direct Text child.
// Comments, doctypes and PIs among the direct children do not disqualify a
// root.
func (d *Document) RootElement() (NodeID, bool) {
	var root NodeID
	for child := d.Node(DocumentNodeID).FirstChild; child != 0; child = d.Node(child).NextSibling {
		switch d.Node(child).Kind {
		case KindText:
			return 0, false
		case KindElement:
			if root != 0 {
				return 0, false
			}
			root = child
		}
	}
	if root == 0 {
		return 0, false
	}
	return root, true
}
