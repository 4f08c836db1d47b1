package element

import (
	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Orientation returns the governing axis of a container: the axis along
// which its children's coordinates vary. It returns false when the
// orientation is not determined yet (fewer than two children) or when the
// children vary on both axes (a degenerate, caller-built container).
func Orientation(container *Node) (Axis, bool) {
	if container.ChildCount() < 2 {
		return 0, false
	}
	rowsZero, colsZero := true, true
	for _, c := range container.children {
		if c.At(AxisRow) != 0 {
			rowsZero = false
		}
		if c.At(AxisColumn) != 0 {
			colsZero = false
		}
	}
	switch {
	case rowsZero:
		return AxisColumn, true
	case colsZero:
		return AxisRow, true
	default:
		return 0, false
	}
}

// CheckAxis verifies that no two distinct children of container share a
// coordinate on axis a. A failure is reported as INTEGRITY_VIOLATION.
func CheckAxis(container *Node, a Axis) error {
	seen := make(map[int]*Node, container.ChildCount())
	for _, c := range container.children {
		v := c.At(a)
		if other, dup := seen[v]; dup && other != c {
			return errs.New(errs.ErrCodeIntegrity,
				"container %q: %q and %q share %s %d", container.ID, other.ID, c.ID, a, v)
		}
		seen[v] = c
	}
	return nil
}

// Validate checks the structural invariants of the tree rooted at root:
//
//  1. Every node is owned exactly once (no sharing, no cycles)
//  2. Identifiers are non-empty and unique
//  3. Every child of a container has a non-negative coordinate
//  4. Every container with two or more children has a governing axis with
//     unique coordinates and the other axis at 0
//
// Structural failures (1, 2) carry INVALID_INPUT or DUPLICATE_ID; grid
// failures (3, 4) carry INTEGRITY_VIOLATION.
func Validate(root *Node) error {
	if root == nil {
		return errs.New(errs.ErrCodeInvalidInput, "tree root is nil")
	}
	seen := make(map[*Node]bool)
	ids := make(map[string]bool)
	return validate(root, seen, ids)
}

func validate(n *Node, seen map[*Node]bool, ids map[string]bool) error {
	if seen[n] {
		return errs.New(errs.ErrCodeInvalidInput, "element %q is owned more than once", n.ID)
	}
	seen[n] = true
	if err := errs.ValidateID(n.ID); err != nil {
		return err
	}
	if ids[n.ID] {
		return errs.New(errs.ErrCodeDuplicateID, "duplicate element ID %q", n.ID)
	}
	ids[n.ID] = true

	if n.IsContainer() {
		if err := validateGrid(n); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := validate(c, seen, ids); err != nil {
			return err
		}
	}
	return nil
}

func validateGrid(container *Node) error {
	for _, c := range container.children {
		cc, ok := c.Coord()
		if !ok {
			return errs.New(errs.ErrCodeIntegrity, "container %q: child %q has no coordinate", container.ID, c.ID)
		}
		if cc.Row < 0 || cc.Col < 0 {
			return errs.New(errs.ErrCodeIntegrity, "container %q: child %q has negative coordinate (%d,%d)",
				container.ID, c.ID, cc.Row, cc.Col)
		}
	}
	if container.ChildCount() < 2 {
		return nil
	}
	axis, ok := Orientation(container)
	if !ok {
		return errs.New(errs.ErrCodeIntegrity, "container %q has no single governing axis", container.ID)
	}
	return CheckAxis(container, axis)
}

// ValidateInput runs [Validate] on a tree supplied by a caller, before any
// constraint touches it. Broken grids are the caller's mistake here, so they
// are reported as INVALID_INPUT rather than INTEGRITY_VIOLATION.
func ValidateInput(root *Node) error {
	return asInput(Validate(root))
}

// CheckCells verifies the cells of a single container the way [Validate]
// does, reporting failures as INVALID_INPUT.
func CheckCells(container *Node) error {
	if !container.IsContainer() {
		return nil
	}
	return asInput(validateGrid(container))
}

func asInput(err error) error {
	if errs.GetCode(err) != errs.ErrCodeIntegrity {
		return err
	}
	return errs.New(errs.ErrCodeInvalidInput, "%s", errs.UserMessage(err))
}
