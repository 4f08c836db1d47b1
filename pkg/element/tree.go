package element

import (
	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Tree indexes an element tree by identifier and parent so that the
// constraint applier does not have to search the whole tree for every
// constraint.
//
// The index is built once by [NewTree] and kept current by the structural
// operations on Tree ([Tree.Attach], [Tree.Place], [Tree.InsertAt],
// [Tree.Replace], [Tree.Detach]). Restructuring nodes directly with
// [Node.Append] after indexing leaves the index stale.
//
// Detached nodes stay registered under their ID until they are attached
// again, but [Tree.Lookup] and [Tree.Contains] ignore them.
type Tree struct {
	root    *Node
	parents map[*Node]*Node
	byID    map[string]*Node
}

// NewTree indexes the tree rooted at root.
//
// Returns an INVALID_ID error for an empty identifier, DUPLICATE_ID when two
// nodes share an identifier, and INVALID_INPUT when the same node appears
// twice (shared ownership or a cycle).
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "tree root is nil")
	}
	t := &Tree{
		root:    root,
		parents: make(map[*Node]*Node),
		byID:    make(map[string]*Node),
	}
	if err := t.register(root, nil); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) register(n, parent *Node) error {
	if n.ID == "" {
		return errs.New(errs.ErrCodeInvalidID, "element ID cannot be empty")
	}
	if existing, ok := t.byID[n.ID]; ok {
		if existing == n {
			return errs.New(errs.ErrCodeInvalidInput, "element %q is owned more than once", n.ID)
		}
		return errs.New(errs.ErrCodeDuplicateID, "duplicate element ID %q", n.ID)
	}
	t.byID[n.ID] = n
	if parent != nil {
		t.parents[n] = parent
	}
	for _, c := range n.children {
		if err := t.register(c, n); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the tree root.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of registered nodes, including detached ones.
func (t *Tree) Len() int { return len(t.byID) }

// HasID reports whether id is taken by any registered node. Identifier
// generators use it to avoid collisions.
func (t *Tree) HasID(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Lookup returns the node with the given ID if it is currently in the tree.
func (t *Tree) Lookup(id string) (*Node, bool) {
	n, ok := t.byID[id]
	if !ok || !t.Contains(n) {
		return nil, false
	}
	return n, true
}

// Contains reports whether n is reachable from the root.
func (t *Tree) Contains(n *Node) bool {
	if n == t.root {
		return true
	}
	_, ok := t.parents[n]
	return ok
}

// Parent returns the parent of n, or nil when n is the root.
// Returns a NOT_FOUND error when n is not in the tree.
func (t *Tree) Parent(n *Node) (*Node, error) {
	if n == t.root {
		return nil, nil
	}
	p, ok := t.parents[n]
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "element %q is not in the tree", n.ID)
	}
	return p, nil
}

// IsAncestor reports whether a is n itself or one of n's ancestors.
func (t *Tree) IsAncestor(a, n *Node) bool {
	for cur := n; cur != nil; cur = t.parents[cur] {
		if cur == a {
			return true
		}
	}
	return false
}

// Depth returns the number of edges between the root and n, or -1 when n is
// not in the tree.
func (t *Tree) Depth(n *Node) int {
	if !t.Contains(n) {
		return -1
	}
	d := 0
	for cur := n; cur != t.root; cur = t.parents[cur] {
		d++
	}
	return d
}

// Detach removes n from its parent and clears its coordinate. It returns the
// former parent, or nil if n was not attached. Detaching the root panics.
func (t *Tree) Detach(n *Node) *Node {
	if n == t.root {
		panic("element: cannot detach the tree root")
	}
	p, ok := t.parents[n]
	if !ok {
		return nil
	}
	p.removeChild(n)
	delete(t.parents, n)
	n.ClearCoord()
	return p
}

// Attach appends child to parent, first detaching it from wherever it is.
// A child attached under a leaf loses its coordinate; under a container the
// caller assigns one with [Node.SetCoord] or uses [Tree.Place].
func (t *Tree) Attach(parent, child *Node) {
	t.InsertAt(parent, parent.ChildCount(), child)
}

// Place attaches child to container and assigns its cell.
func (t *Tree) Place(container, child *Node, c Coord) {
	t.Attach(container, child)
	child.SetCoord(c)
}

// InsertAt inserts child into parent's children at index i (clamped to the
// valid range), first detaching it from wherever it is. New nodes and their
// subtrees are registered in the index.
//
// InsertAt panics if the move would create a cycle or if a new node's ID is
// already taken; both are programming errors in the caller.
func (t *Tree) InsertAt(parent *Node, i int, child *Node) {
	if t.IsAncestor(child, parent) {
		panic(errs.New(errs.ErrCodeCycle, "cannot move %q under its own descendant %q", child.ID, parent.ID))
	}
	if _, known := t.byID[child.ID]; known {
		if t.byID[child.ID] != child {
			panic(errs.New(errs.ErrCodeDuplicateID, "duplicate element ID %q", child.ID))
		}
		t.Detach(child)
	} else if err := t.register(child, nil); err != nil {
		panic(err)
	}
	parent.insertChild(i, child)
	t.parents[child] = parent
	if !parent.IsContainer() {
		child.ClearCoord()
	}
}

// Replace puts replacement in old's position within old's parent and
// detaches old. If replacement is a container child, it inherits old's
// coordinate. Returns the shared parent.
func (t *Tree) Replace(old, replacement *Node) (*Node, error) {
	p, err := t.Parent(old)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cannot replace the tree root %q", old.ID)
	}
	if t.Contains(replacement) {
		t.Detach(replacement)
	}
	c, hasCoord := old.Coord()
	t.InsertAt(p, p.IndexOf(old), replacement)
	t.Detach(old)
	if hasCoord && p.IsContainer() {
		replacement.SetCoord(c)
	}
	return p, nil
}
