// Package grid implements the recursive insertion engine that assigns grid
// coordinates inside containers and resolves cell collisions.
//
// # Overview
//
// [Engine.Insert] places a node next to an anchor that already lives in a
// container. The edge (left-of, right-of, above, below) selects the
// governing axis and a direction of -1 or +1:
//
//	target = anchor.coord(axis) + direction
//
// A negative target renormalizes the container: every child moves +1 on the
// axis and the target becomes 0. Coordinates are never negative.
//
// # Collisions
//
// When the target cell is taken, what happens depends on the occupant:
//
//   - Container occupant: the node is "globbed" into it, appended after the
//     last child along the occupant's dominant axis. The dominant axis is the
//     one whose coordinates sum higher; ties go to the engine's tie-break
//     axis (column unless configured otherwise). Globbing deliberately does
//     not honor the requested edge precisely.
//   - Leaf occupant: the cell is sub-divided. A new container takes the
//     occupant's cell, the occupant moves into it at (0,0), and the node is
//     inserted next to the occupant on the orthogonal axis (a row collision
//     grows the sub-grid to the right, a column collision grows it down).
//   - The node itself: re-placing a node into the cell it already holds
//     wraps it in a fresh container. Applying the same constraint twice is
//     therefore not idempotent.
//
// Before any of that, an insert whose axis crosses the container's
// established orientation sub-divides the anchor's cell instead, so every
// container keeps a single governing axis.
//
//	Before (B right-of A, B occupies column 1):
//	  grid-A-B: A(0,0) B(0,1)
//	After C right-of A:
//	  grid-A-B: A(0,0) grid-B-C(0,1)
//	  grid-B-C: B(0,0) C(1,0)
//
// # Integrity
//
// After every placement the engine checks that no two siblings share a
// coordinate on the governing axis. A violation is an engine defect, not a
// usage error: Insert panics with an INTEGRITY_VIOLATION error and the tree
// must be discarded.
//
// # Concurrency
//
// An Engine holds configuration only and may be shared. The trees it
// mutates may not: callers serialize access to each tree.
package grid
