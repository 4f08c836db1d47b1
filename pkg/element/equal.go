package element

import (
	"maps"
	"reflect"
)

// Equal reports whether the trees rooted at a and b are structurally equal:
// same IDs, kinds, coordinates, metadata, and children in the same order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Kind != b.Kind || len(a.children) != len(b.children) {
		return false
	}
	ac, aok := a.Coord()
	bc, bok := b.Coord()
	if aok != bok || ac != bc {
		return false
	}
	if len(a.Meta) != len(b.Meta) || (len(a.Meta) > 0 && !reflect.DeepEqual(a.Meta, b.Meta)) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the tree rooted at n. Metadata maps are
// copied one level deep.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{ID: n.ID, Kind: n.Kind, Meta: maps.Clone(n.Meta)}
	if out.Meta == nil {
		out.Meta = Metadata{}
	}
	if c, ok := n.Coord(); ok {
		out.SetCoord(c)
	}
	if len(n.children) > 0 {
		out.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			out.children[i] = Clone(c)
		}
	}
	return out
}
