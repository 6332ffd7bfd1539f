// Package tree implements an arena-backed HTML/XML node container.
//
// Nodes live in a single growable slice and are addressed by a 32-bit,
// non-zero NodeID. Index 0 is a reserved padding slot; index 1 is the
// synthetic Document node every tree carries exactly once. This mirrors the
// revised design in the reference implementation this package is ported
// from: a Hole variant marks the reserved slot, and detaching a node leaves
// its record in place instead of shrinking the arena, so ids handed out
// earlier stay valid until Compact rebuilds (and renumbers) the arena.
package tree

import "fmt"

// NodeID addresses a node within a Document's arena. The zero value is the
// reserved padding slot and never identifies a live node.
type NodeID uint32

// DocumentNodeID is the id of the synthetic document node every tree has.
const DocumentNodeID NodeID = 1

// maxNodeID is the largest index the arena can address (2^32 - 1).
const maxNodeID = ^uint32(0)

// Kind identifies which variant of NodeData a Node currently holds.
type Kind uint8

const (
	// KindHole marks a vacated slot. A Hole node is never reachable from a
	// live parent/sibling link.
	KindHole Kind = iota
	KindDocument
	KindDoctype
	KindText
	KindComment
	KindElement
	KindProcessingInstruction
)

func (k Kind) String() string {
	switch k {
	case KindHole:
		return "Hole"
	case KindDocument:
		return "Document"
	case KindDoctype:
		return "Doctype"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindElement:
		return "Element"
	case KindProcessingInstruction:
		return "ProcessingInstruction"
	default:
		return "Unknown"
	}
}

// QualName is a qualified element or attribute name: an optional namespace
// prefix, a namespace URI, and an interned local name.
type QualName struct {
	Prefix    string
	Namespace string
	Local     string
}

// HTML, SVG and MathML namespace URIs, used to tag element QualNames.
const (
	NamespaceHTML  = "http://www.w3.org/1999/xhtml"
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// Attribute is a (qualified name, value) pair.
type Attribute struct {
	Name  QualName
	Value string
}

// Doctype carries the DOCTYPE name plus (unvalidated) public/system ids.
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
}

// ElementData is the payload of a KindElement node.
type ElementData struct {
	Name  QualName
	Attrs []Attribute

	// MathMLAnnotationXMLIntegrationPoint records the foreign-content flag
	// the tree builder sink attaches at creation time; it is otherwise
	// inert in this package.
MathMLAnnotationXMLIntegrationPoint bool
}

// ProcessingInstruction is the payload of a KindProcessingInstruction node.
type ProcessingInstruction struct {
	Target string
	Data   string
}

// NodeData is the tagged-union payload of a Node. Exactly one field is
// meaningful, selected by Kind; callers should use the Node.As* accessors
// rather than reading fields directly.
type NodeData struct {
	Doctype   Doctype
	Text      string
	Comment   string
	Element   ElementData
	PI        ProcessingInstruction
}

// Node is one record in the arena: a kind/payload pair plus five optional
// links, each zero when absent.
type Node struct {
	Kind Kind
	Data NodeData

	Parent       NodeID
	PrevSibling  NodeID
	NextSibling  NodeID
	FirstChild   NodeID
	LastChild    NodeID
}

// Document owns the arena and is the entry point for every tree operation.
type Document struct {
	nodes []Node
}

// New returns an empty Document: a Hole at index 0 and a Document node at
// DocumentNodeID (index 1).
func New() *Document {
	return WithCapacity(0)
}

// WithCapacity returns an empty Document whose arena has pre-allocated
// capacity for count additional nodes beyond the two bootstrap slots.
func WithCapacity(count int) *Document {
	d := &Document{nodes: make([]Node, 0, count+2)}
	d.nodes = append(d.nodes, Node{Kind: KindHole})
	d.nodes = append(d.nodes, Node{Kind: KindDocument})
	return d
}

// Len returns the number of non-bootstrap slots in the arena, live or dead.
// It is not the count of reachable nodes unless Compact was just called.
func (d *Document) Len() int {
	if len(d.nodes) < 2 {
		return 0
	}
	return len(d.nodes) - 2
}

// IsEmpty reports whether the document has no nodes beyond the bootstrap
// Hole and Document slots.
func (d *Document) IsEmpty() bool {
	return len(d.nodes) < 3
}

// Node returns the node record at id. It panics if id is out of range.
func (d *Document) Node(id NodeID) *Node {
	return &d.nodes[id]
}

// ConstraintViolation is panicked for fatal structural contract violations:
// detaching the document node, folding the document node, pushing a
// Hole/Document as a child, or arena overflow.
type ConstraintViolation struct {
	Message string
}

func (e *ConstraintViolation) Error() string { return e.Message }

func violate(format string, args ...any) {
	panic(&ConstraintViolation{Message: fmt.Sprintf(format, args...)})
}

// pushNode appends a new node record and returns its id. It panics if the
// caller tries to push a Document or Hole payload, or if the arena would
// overflow its 32-bit index space.
func (d *Document) pushNode(n Node) NodeID {
	if n.Kind == KindDocument || n.Kind == KindHole {
		violate("cannot push a %s node into the arena", n.Kind)
	}
	if uint64(len(d.nodes)) >= uint64(maxNodeID) {
		violate("arena exhausted: cannot exceed %d nodes", maxNodeID)
	}
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, n)
	return id
}

// NewElement creates an unattached Element node and returns its id.
func (d *Document) NewElement(name QualName, attrs []Attribute) NodeID {
	return d.pushNode(Node{Kind: KindElement, Data: NodeData{Element: ElementData{Name: name, Attrs: attrs}}})
}

// NewText creates an unattached Text node and returns its id.
func (d *Document) NewText(s string) NodeID {
	return d.pushNode(Node{Kind: KindText, Data: NodeData{Text: s}})
}

// NewComment creates an unattached Comment node and returns its id.
func (d *Document) NewComment(s string) NodeID {
	return d.pushNode(Node{Kind: KindComment, Data: NodeData{Comment: s}})
}

// NewDoctype creates an unattached Doctype node and returns its id.
func (d *Document) NewDoctype(name, publicID, systemID string) NodeID {
	return d.pushNode(Node{Kind: KindDoctype, Data: NodeData{Doctype: Doctype{Name: name, PublicID: publicID, SystemID: systemID}}})
}

// NewPI creates an unattached ProcessingInstruction node and returns its id.
func (d *Document) NewPI(target, data string) NodeID {
	return d.pushNode(Node{Kind: KindProcessingInstruction, Data: NodeData{PI: ProcessingInstruction{Target: target, Data: data}}})
}

// AsElement returns the node's ElementData and true if its Kind is
// KindElement.
func (n *Node) AsElement() (*ElementData, bool) {
	if n.Kind == KindElement {
		return &n.Data.Element, true
	}
	return nil, false
}

// AsText returns the node's text payload and true if its Kind is KindText.
func (n *Node) AsText() (string, bool) {
	if n.Kind == KindText {
		return n.Data.Text, true
	}
	return "", false
}

// IsElem reports whether n is an Element with the given local name.
func (n *Node) IsElem(localName string) bool {
	e, ok := n.AsElement()
	return ok && e.Name.Local == localName
}

// Attr returns the first attribute value with the given local name.
func (e *ElementData) Attr(localName string) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Local == localName {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

// SetAttr enforces that, after the call, the element has exactly one
// attribute with the given local name: the first occurrence is replaced in
// place (preserving its position) and any further duplicates are removed. If
// no attribute with that name existed, a new one is appended. It returns the
// prior value of the first occurrence, if any existed.
func (e *ElementData) SetAttr(localName, value string) (prior string, had bool) {
	firstIdx := -1
	for i := 0; i < len(e.Attrs); {
		if e.Attrs[i].Name.Local != localName {
			i++
			continue
		}
		if firstIdx == -1 {
			firstIdx = i
			prior = e.Attrs[i].Value
			had = true
			e.Attrs[i].Value = value
			i++
			continue
		}
		// A later duplicate: drop it; its value is discarded.
		e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
	}
	if firstIdx == -1 {
		e.Attrs = append(e.Attrs, Attribute{Name: QualName{Local: localName}, Value: value})
	}
	return prior, had
}

// RemoveAttr removes every attribute with the given local name and returns
// the value of the last one removed.
func (e *ElementData) RemoveAttr(localName string) (last string, had bool) {
	for i := 0; i < len(e.Attrs); {
		if e.Attrs[i].Name.Local == localName {
			last = e.Attrs[i].Value
			had = true
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			continue
		}
		i++
	}
	return last, had
}

// HasAttr reports whether the element carries an attribute with the given
// local name.
func (e *ElementData) HasAttr(localName string) bool {
	_, ok := e.Attr(localName)
	return ok
}
