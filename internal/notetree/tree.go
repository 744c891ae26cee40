package notetree

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RootName is the display name of every tree's root container.
const RootName = "Root"

var (
	ErrNotFound      = errors.New("node not found")
	ErrNotLeaf       = errors.New("node is not a note")
	ErrNotContainer  = errors.New("node is not a folder")
	ErrRootImmutable = errors.New("root cannot be renamed or removed")
	ErrNameTaken     = errors.New("an item with this name already exists")
	ErrInvalidName   = errors.New("invalid name")
)

// Tree owns every node. Children are owned by their container; nodes refer back
// to their parent only by ID.
type Tree struct {
	root   *Container
	nodes  map[ID]Node
	nextID ID
}

// New creates a tree holding only the root container.
func New() *Tree {
	root := &Container{header: header{id: RootID, name: RootName}}
	return &Tree{
		root:   root,
		nodes:  map[ID]Node{RootID: root},
		nextID: RootID + 1,
	}
}

// Root returns the root container.
func (t *Tree) Root() *Container {
	return t.root
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node looks up any node.
func (t *Tree) Node(id ID) (Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return n, nil
}

// Leaf looks up a note.
func (t *Tree) Leaf(id ID) (*Leaf, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	leaf, ok := n.(*Leaf)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotLeaf, n.Name())
	}
	return leaf, nil
}

// Container looks up a folder.
func (t *Tree) Container(id ID) (*Container, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	c, ok := n.(*Container)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotContainer, n.Name())
	}
	return c, nil
}

// Parent returns the container owning id.
func (t *Tree) Parent(id ID) (*Container, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	if n.Parent() == 0 {
		return nil, fmt.Errorf("%w: root has no parent", ErrNotFound)
	}
	return t.Container(n.Parent())
}

// AddContainer appends a new folder to parent.
func (t *Tree) AddContainer(parent ID, name string) (*Container, error) {
	c := &Container{}
	if err := t.attach(parent, name, &c.header, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddLeaf appends a new note to parent.
func (t *Tree) AddLeaf(parent ID, name, content string) (*Leaf, error) {
	l := &Leaf{content: content}
	if err := t.attach(parent, name, &l.header, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (t *Tree) attach(parent ID, name string, h *header, n Node) error {
	p, err := t.Container(parent)
	if err != nil {
		return err
	}
	name, err = ValidateName(name)
	if err != nil {
		return err
	}
	if sibling := p.ChildNamed(name); sibling != nil {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}

	h.id = t.nextID
	h.name = name
	h.parent = parent
	t.nextID++

	p.children = append(p.children, n)
	t.nodes[h.id] = n
	return nil
}

// Remove detaches id and its whole subtree. It returns the removed node.
func (t *Tree) Remove(id ID) (Node, error) {
	if id == RootID {
		return nil, ErrRootImmutable
	}
	p, err := t.Parent(id)
	if err != nil {
		return nil, err
	}

	var removed Node
	for i, child := range p.children {
		if child.ID() == id {
			removed = child
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	if removed == nil {
		return nil, fmt.Errorf("%w: id %d is not a child of its parent", ErrNotFound, id)
	}

	t.walk(removed, 0, func(n Node, _ int) bool {
		delete(t.nodes, n.ID())
		return true
	})
	return removed, nil
}

// Rename changes a node's name, keeping sibling names unique.
func (t *Tree) Rename(id ID, name string) error {
	if id == RootID {
		return ErrRootImmutable
	}
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	name, err = ValidateName(name)
	if err != nil {
		return err
	}
	p, err := t.Parent(id)
	if err != nil {
		return err
	}
	if sibling := p.ChildNamed(name); sibling != nil && sibling.ID() != id {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}

	switch v := n.(type) {
	case *Container:
		v.name = name
	case *Leaf:
		v.name = name
	}
	return nil
}

// SetContent replaces a note's text.
func (t *Tree) SetContent(id ID, text string) error {
	leaf, err := t.Leaf(id)
	if err != nil {
		return err
	}
	leaf.content = text
	return nil
}

// Segments returns the names from just below the root down to id.
// The root itself yields an empty slice.
func (t *Tree) Segments(id ID) ([]string, error) {
	var segs []string
	for id != RootID {
		n, err := t.Node(id)
		if err != nil {
			return nil, err
		}
		segs = append(segs, n.Name())
		id = n.Parent()
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs, nil
}

// Path returns the slash-joined names below the root, e.g. "work/todo.goon".
func (t *Tree) Path(id ID) string {
	segs, err := t.Segments(id)
	if err != nil {
		return ""
	}
	return strings.Join(segs, "/")
}

// DisplayPath is Path prefixed with the root name.
func (t *Tree) DisplayPath(id ID) string {
	if p := t.Path(id); p != "" {
		return RootName + "/" + p
	}
	return RootName
}

// Find resolves a slash-joined path as returned by Path.
func (t *Tree) Find(path string) (Node, bool) {
	var n Node = t.root
	if path == "" {
		return n, true
	}
	for _, seg := range strings.Split(path, "/") {
		c, ok := n.(*Container)
		if !ok {
			return nil, false
		}
		if n = c.ChildNamed(seg); n == nil {
			return nil, false
		}
	}
	return n, true
}

// Walk visits every node depth-first in pre-order, starting at the root with
// depth 0. Returning false from fn skips that node's children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if c, ok := n.(*Container); ok {
		for _, child := range c.children {
			t.walk(child, depth+1, fn)
		}
	}
}

// ChildNamed returns the child whose name matches under NFC normalization.
func (c *Container) ChildNamed(name string) Node {
	key := norm.NFC.String(name)
	for _, child := range c.children {
		if norm.NFC.String(child.Name()) == key {
			return child
		}
	}
	return nil
}

// ValidateName trims surrounding space and rejects names that cannot be used
// as a single path element.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "", name == ".", name == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return name, nil
}
