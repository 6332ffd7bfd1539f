// Package filter implements a depth-first mutating visitor over a tree.
// Document, plus a small library of content filters built on top of it.
package filter

import (
	"github.com/larskjaer/marktree/tree"
)

// Action is the instruction a Func returns for the node it was just handed.
type Action int

const (
	// Continue leaves the node in place.
	Continue Action = iota
	// Fold replaces the node with its children. Equivalent to Detach for a
	// childless node.
	Fold
	// Detach removes the node, and its subtree, from the tree.
	Detach
)

// Func is a filter callback: given read access to the whole tree and the
// id of the node currently being visited, decide its fate.
type Func func(d *tree.Document, id tree.NodeID) Action

// Walk performs a depth-first, post-order walk of the whole document
// (children visited before their parent), applying f to every node and
// acting on the returned Action immediately.
func Walk(d *tree.Document, f Func) {
	WalkAt(d, tree.DocumentNodeID, f)
}

// WalkAt performs the same post-order walk, rooted at id, and returns the
// Action produced for id itself (the caller of WalkAt on a child is
// responsible for acting on it; the top-level Walk entry point does not
// act on the document node's own result since folding/detaching it is a
// contract violation).
func WalkAt(d *tree.Document, id tree.NodeID, f Func) Action {
	var next tree.NodeID
	for child := d.Node(id).FirstChild; child != 0; child = next {
		next = d.Node(child).NextSibling
		switch WalkAt(d, child, f) {
		case Continue:
		case Fold:
			d.Fold(child)
		case Detach:
			d.Detach(child)
		}
	}
	return f(d, id)
}

// WalkBreadth performs a depth-first, pre-order walk (a node is visited
// before its children), applying f to every node and acting on the
// returned action before descending.
func WalkBreadth(d *tree.Document, f Func) {
	walkBreadthAt(d, tree.DocumentNodeID, f)
}

func walkBreadthAt(d *tree.Document, id tree.NodeID, f Func) {
	var next tree.NodeID
	for child := d.Node(id).FirstChild; child != 0; child = next {
		next = d.Node(child).NextSibling
		switch f(d, child) {
		case Fold:
			if first := d.Node(child).FirstChild; first != 0 {
				next = first
			}
			d.Fold(child)
			continue
		case Detach:
			d.Detach(child)
			continue
		}
		walkBreadthAt(d, child, f)
	}
}

// Chain composes an ordered, non-empty list of filters: each runs in turn
// on a node, stopping at the first non-Continue action.
func Chain(filters ...Func) Func {
	return func(d *tree.Document, id tree.NodeID) Action {
		for _, f := range filters {
			if a := f(d, id); a != Continue {
				return a
			}
		}
		return Continue
	}
}
