// Package element provides the owned element tree that gridglob compiles
// positioning constraints into.
//
// # Overview
//
// A layout starts as a plain tree of elements built by the caller: a form
// root with a handful of leaf controls, for example. Applying constraints
// such as "B is right of A" rewrites that tree by synthesizing container
// nodes whose children carry grid coordinates. This package holds the data
// structure those rewrites operate on.
//
// # Node Kinds
//
//   - [KindLeaf]: any element that does not impose grid coordinates on its
//     children. Most leaves have no children; a leaf that does (the form
//     root, a plain group) is a "leaf-like" parent.
//   - [KindContainer]: a grid. Every child of a container carries a
//     [Coord], and exactly one axis (the governing axis) has unique values
//     among the children. The other axis is 0 for every child.
//
// A container with zero or one children has no orientation yet; see
// [Orientation].
//
// # Coordinates
//
// Coordinates are strongly typed and optional. A node has a coordinate only
// while it is a child of a container; detaching it or attaching it under a
// leaf clears the coordinate. Use [Node.Coord] to read it.
//
// # Ownership
//
// The tree is strictly tree-shaped: a node is owned by exactly one parent and
// nodes hold no back-pointers. Parent access is always a derived lookup,
// either by depth-first search ([FindParent]) or through a [Tree] index that
// is built once and updated on every attach and detach.
//
// # Building Trees
//
//	root := element.NewLeaf("Root")
//	root.Append(element.NewLeaf("A"), element.NewLeaf("B"))
//
//	t, err := element.NewTree(root)
//	if err != nil {
//	    return err // duplicate IDs, shared nodes
//	}
//
// # Concurrency
//
// Nodes and trees are not safe for concurrent use. Callers that share a tree
// between goroutines must serialize access themselves.
package element
