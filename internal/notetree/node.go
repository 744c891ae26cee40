// Package notetree models the note hierarchy: containers (folders) holding
// ordered children, and leaves holding text.
package notetree

// ID identifies a node within one Tree. IDs are never reused by that tree.
type ID uint64

// RootID is the ID of the root container of every tree.
const RootID ID = 1

// Kind distinguishes the two node variants.
type Kind int

const (
	KindContainer Kind = iota
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is either a *Container or a *Leaf.
type Node interface {
	ID() ID
	Name() string
	Kind() Kind
	// Parent returns the owning container's ID. The root reports 0.
	Parent() ID
}

type header struct {
	id     ID
	name   string
	parent ID
}

func (h *header) ID() ID { return h.id }
func (h *header) Name() string { return h.name }
func (h *header) Parent() ID { return h.parent }

// Container groups child nodes in display order. It has no content.
type Container struct {
	header
	children []Node
}

func (c *Container) Kind() Kind { return KindContainer }

// Children returns the children in order. The slice must not be modified.
func (c *Container) Children() []Node {
	return c.children
}

// Leaf is a note: a name plus its text.
type Leaf struct {
	header
	content string
}

func (l *Leaf) Kind() Kind { return KindLeaf }

// Content returns the note text as last stored in the tree.
func (l *Leaf) Content() string {
	return l.content
}
