// Package treesink defines the sink interface an external HTML tokenizer
// and tree-construction algorithm drives to assemble a tree.Document, and
// a Builder that implements it on top of golang.org/x/net/html acting as
// that external black box.
package treesink

import "github.com/larskjaer/marktree/tree"

// QuirksMode mirrors the tokenizer's document-mode classification. It is
// recorded by the sink and otherwise inert in this package.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// NodeOrText is either a fully-built node (AppendNode) or a text run not
// yet materialized as a node (AppendText), letting Sink implementations
// merge consecutive text into one node the way real tokenizers require.
type NodeOrText struct {
	Node tree.NodeID
	Text string
	// IsText discriminates between the two states above.
	IsText bool
}

func AppendNode(id tree.NodeID) NodeOrText { return NodeOrText{Node: id} }
func AppendText(s string) NodeOrText       { return NodeOrText{Text: s, IsText: true} }

// ElementFlags carries the tree-construction flags a tokenizer attaches
// when it asks the sink to create an element.
type ElementFlags struct {
	MathMLAnnotationXMLIntegrationPoint bool
}

// Sink is the adaptor interface an external HTML tokenizer/tree-builder
// drives to assemble a tree.Document. This module does not reimplement the
// tokenizer or the HTML5 insertion-mode algorithm; Builder (in this
// package) implements Sink by delegating the actual tokenizing and tree
// construction to golang.org/x/net/html and replaying its result through
// these same calls.
type Sink interface {
	GetDocument() tree.NodeID
	CreateElement(name tree.QualName, attrs []tree.Attribute, flags ElementFlags) tree.NodeID
	CreateComment(text string) tree.NodeID
	CreatePI(target, data string) tree.NodeID
	Append(parent tree.NodeID, child NodeOrText)
	AppendBeforeSibling(sibling tree.NodeID, child NodeOrText)
	AppendBasedOnParentNode(element, prevElement tree.NodeID, child NodeOrText)
	AppendDoctypeToDocument(name, publicID, systemID string)
	AddAttrsIfMissing(target tree.NodeID, attrs []tree.Attribute)
	RemoveFromParent(target tree.NodeID)
	ReparentChildren(from, to tree.NodeID)
	GetTemplateContents(target tree.NodeID) tree.NodeID
	SetQuirksMode(mode QuirksMode)
	SameNode(x, y tree.NodeID) bool
	ElemName(target tree.NodeID) tree.QualName
	ParseError(description string)
}
