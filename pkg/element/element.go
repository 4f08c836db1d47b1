package element

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Kind distinguishes grid containers from every other element.
type Kind int

const (
	// KindLeaf is an element that does not assign coordinates to its children.
	KindLeaf Kind = iota
	// KindContainer is a grid whose children carry coordinates.
	KindContainer
)

// String returns the lowercase name used in documents and logs.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Axis is one of the two grid dimensions.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

// Other returns the orthogonal axis.
func (a Axis) Other() Axis {
	if a == AxisRow {
		return AxisColumn
	}
	return AxisRow
}

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "column"
}

// ParseAxis parses "row" or "column" ("col" and plural forms accepted).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row", "rows":
		return AxisRow, nil
	case "column", "columns", "col", "cols":
		return AxisColumn, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown axis %q (want row or column)", s)
}

// Coord is a (row, column) cell within the immediate parent container.
type Coord struct {
	Row int
	Col int
}

// On returns the coordinate on axis a.
func (c Coord) On(a Axis) int {
	if a == AxisRow {
		return c.Row
	}
	return c.Col
}

// With returns a copy of c with the coordinate on axis a replaced by v.
func (c Coord) With(a Axis, v int) Coord {
	if a == AxisRow {
		c.Row = v
	} else {
		c.Col = v
	}
	return c
}

// Metadata stores free-form attributes attached to an element (labels,
// bindings, styling hints). The engine never reads it; it only travels with
// the node.
type Metadata map[string]any

// Node is an element in the owned tree.
//
// The zero value is a leaf with no ID; use [NewLeaf] or [NewContainer].
type Node struct {
	ID   string   // Unique, stable identifier
	Kind Kind     // Leaf or container
	Meta Metadata // Free-form attributes (never nil after NewLeaf/NewContainer)

	children []*Node
	coord    *Coord
}

// NewLeaf creates a leaf element.
func NewLeaf(id string) *Node {
	return &Node{ID: id, Kind: KindLeaf, Meta: Metadata{}}
}

// NewContainer creates an empty grid container.
func NewContainer(id string) *Node {
	return &Node{ID: id, Kind: KindContainer, Meta: Metadata{}}
}

// IsContainer reports whether the node is a grid container.
func (n *Node) IsContainer() bool { return n.Kind == KindContainer }

// Children returns the ordered children. The slice is a read-only view;
// use [Tree] to restructure an indexed tree.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of immediate children.
func (n *Node) ChildCount() int { return len(n.children) }

// Coord returns the node's cell in its parent container. The second result
// is false when the node has no coordinate (it is the root, detached, or its
// parent is not a container).
func (n *Node) Coord() (Coord, bool) {
	if n.coord == nil {
		return Coord{}, false
	}
	return *n.coord, true
}

// SetCoord assigns the node's cell. Coordinates are meaningful only while
// the node is a child of a container.
func (n *Node) SetCoord(c Coord) {
	n.coord = &c
}

// ClearCoord removes the node's coordinate.
func (n *Node) ClearCoord() {
	n.coord = nil
}

// At returns the coordinate on axis a, or 0 when the node has none.
func (n *Node) At(a Axis) int {
	if n.coord == nil {
		return 0
	}
	return n.coord.On(a)
}

// Append adds children in order. It is the construction API for callers
// building an initial tree; it does not update any [Tree] index.
func (n *Node) Append(children ...*Node) {
	n.children = append(n.children, children...)
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// ChildAt returns the first child whose coordinate on axis a equals v.
func (n *Node) ChildAt(a Axis, v int) *Node {
	for _, c := range n.children {
		if cc, ok := c.Coord(); ok && cc.On(a) == v {
			return c
		}
	}
	return nil
}

func (n *Node) removeChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	return true
}

func (n *Node) insertChild(i int, child *Node) {
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, child)
}
