// Package apply applies ordered constraint batches to an element tree.
//
// An [Applier] walks the constraints in order. Each one mutates the tree and
// the next observes the result, so the same set of constraints in a
// different order may produce a different grid.
//
// For every constraint the applier resolves the anchor and dependent by ID,
// finds the anchor's parent, and then either:
//
//   - hands the placement to the [grid.Engine] when the parent is a
//     container, or
//   - wraps the anchor in a new container that takes the anchor's place in
//     its parent, seeds it with the anchor at (0,0), and places the
//     dependent inside it.
//
// Either way the dependent leaves its previous parent in the same step.
//
// # Errors
//
// A missing element is NOT_FOUND, an unknown edge UNSUPPORTED_EDGE, and
// a constraint that names the same element twice, anchors on the root, or
// would move an element under its own descendant is INVALID_CONSTRAINT or
// CYCLE. By default the first such error aborts the batch; the tree keeps
// every change made before it. [WithSkipInvalid] logs and skips them
// instead.
//
// An INTEGRITY_VIOLATION panic from the engine is not recovered.
//
// # Parent lookup
//
// [LocateParent] is a depth-first search over a bare tree. Batches index the
// tree once with [element.NewTree] and keep the index current through every
// move, so parent lookup is constant time per constraint.
package apply
