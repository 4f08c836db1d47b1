package grid

import (
	"github.com/matzehuels/gridglob/pkg/constraint"
	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	"github.com/matzehuels/gridglob/pkg/ident"
	"github.com/matzehuels/gridglob/pkg/observability"
)

// DefaultTieBreak is the axis globbing grows along when a container's row
// and column sums are equal (an empty or single-cell container).
const DefaultTieBreak = element.AxisColumn

// Engine places nodes into containers. Use [New]; the zero value is not
// usable.
type Engine struct {
	tieBreak element.Axis
	ids      ident.Generator
	hooks    observability.EngineHooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithTieBreak sets the axis globbing prefers when the dominant axis is
// ambiguous.
func WithTieBreak(a element.Axis) Option {
	return func(e *Engine) { e.tieBreak = a }
}

// WithIDs sets the generator for synthesized container IDs.
func WithIDs(g ident.Generator) Option {
	return func(e *Engine) {
		if g != nil {
			e.ids = g
		}
	}
}

// WithHooks overrides the globally registered engine hooks.
func WithHooks(h observability.EngineHooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// New creates an Engine with column tie-break and sequential IDs.
func New(opts ...Option) *Engine {
	e := &Engine{
		tieBreak: DefaultTieBreak,
		ids:      ident.Sequential{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TieBreak returns the configured tie-break axis.
func (e *Engine) TieBreak() element.Axis { return e.tieBreak }

// NewContainer creates a container with a fresh ID derived from hint. The
// container is not attached; hooks are notified with reason.
func (e *Engine) NewContainer(t *element.Tree, hint, reason string) *element.Node {
	c := element.NewContainer(e.ids.Next(hint, t.HasID))
	e.engineHooks().OnContainerCreated(c.ID, reason)
	return c
}

func (e *Engine) engineHooks() observability.EngineHooks {
	if e.hooks != nil {
		return e.hooks
	}
	return observability.Engine()
}

// Insert places node on edge of anchor inside container, moving node out of
// wherever it currently is.
//
// Preconditions, reported as errors: the edge is supported
// (UNSUPPORTED_EDGE); container is an indexed container and, unless it is
// empty, anchor is one of its children; the cells of container and of its
// sub-grids are well formed; node is in the tree or new, and is neither the
// anchor nor an ancestor of the container (INVALID_INPUT, CYCLE).
//
// Insert panics with an INTEGRITY_VIOLATION error if a placement leaves two
// siblings on the same governing-axis coordinate.
func (e *Engine) Insert(t *element.Tree, container, node, anchor *element.Node, edge constraint.Edge) error {
	if _, _, err := edge.Placement(); err != nil {
		return err
	}
	if err := e.check(t, container, node, anchor); err != nil {
		return err
	}
	e.place(t, container, node, anchor, edge)
	return nil
}

func (e *Engine) check(t *element.Tree, container, node, anchor *element.Node) error {
	if container == nil || node == nil {
		return errs.New(errs.ErrCodeInvalidInput, "container and node are required")
	}
	if !container.IsContainer() {
		return errs.New(errs.ErrCodeInvalidInput, "%q is not a container", container.ID)
	}
	if !t.Contains(container) {
		return errs.New(errs.ErrCodeNotFound, "container %q is not in the tree", container.ID)
	}
	if err := checkCells(container); err != nil {
		return err
	}
	if container.ChildCount() > 0 && anchor == nil {
		return errs.New(errs.ErrCodeInvalidInput, "an anchor is required in non-empty container %q", container.ID)
	}
	if container.ChildCount() > 0 && container.IndexOf(anchor) < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "anchor %q is not a child of %q", anchor.ID, container.ID)
	}
	if node == anchor {
		return errs.New(errs.ErrCodeInvalidConstraint, "%q cannot be placed relative to itself", node.ID)
	}
	if t.Contains(node) && t.IsAncestor(node, container) {
		return errs.New(errs.ErrCodeCycle, "%q contains container %q", node.ID, container.ID)
	}
	return nil
}

// checkCells rejects a container, or a sub-grid it may glob into, whose
// cells could not have come out of the engine.
func checkCells(container *element.Node) error {
	if err := element.CheckCells(container); err != nil {
		return err
	}
	for _, c := range container.Children() {
		if err := element.CheckCells(c); err != nil {
			return err
		}
	}
	return nil
}

// place is the recursive core. Every branch ends with node attached
// somewhere under container.
func (e *Engine) place(t *element.Tree, container, node, anchor *element.Node, edge constraint.Edge) {
	axis, dir, err := edge.Placement()
	if err != nil {
		panic(err)
	}
	if container.ChildCount() == 0 {
		t.Place(container, node, element.Coord{})
		return
	}
	if orient, ok := element.Orientation(container); ok && orient != axis {
		e.splitAnchor(t, container, node, anchor, edge)
		return
	}
	if container.ChildCount() == 1 {
		// A lone child adopts the axis being established.
		only := container.Children()[0]
		c, _ := only.Coord()
		only.SetCoord(c.With(axis.Other(), 0))
	}

	target := anchor.At(axis) + dir
	if target < 0 {
		e.shift(container, axis, -target)
		target = anchor.At(axis) + dir
	}

	occupant := container.ChildAt(axis, target)
	switch {
	case occupant == nil:
		t.Place(container, node, element.Coord{}.With(axis, target))
	case occupant.IsContainer() && occupant != node:
		e.glob(t, occupant, node)
	default:
		e.subdivide(t, occupant, node, edge)
	}
	e.mustHold(container, axis)
}

// shift moves every child of container by n on axis.
func (e *Engine) shift(container *element.Node, axis element.Axis, n int) {
	for _, c := range container.Children() {
		cc, _ := c.Coord()
		c.SetCoord(cc.With(axis, cc.On(axis)+n))
	}
	e.engineHooks().OnShifted(container.ID, axis.String())
}

// glob appends node to grid after its last child on the dominant axis.
func (e *Engine) glob(t *element.Tree, grid, node *element.Node) {
	if grid.IndexOf(node) >= 0 {
		t.Detach(node)
	}
	axis := e.dominantAxis(grid)
	next := 0
	for i, c := range grid.Children() {
		if v := c.At(axis) + 1; i == 0 || v > next {
			next = v
		}
	}
	t.Place(grid, node, element.Coord{}.With(axis, next))
	e.engineHooks().OnGlobbed(grid.ID, node.ID, axis.String())
	e.mustHold(grid, axis)
}

// dominantAxis guesses which way a container has grown from the sums of
// its children's coordinates.
func (e *Engine) dominantAxis(grid *element.Node) element.Axis {
	var rows, cols int
	for _, c := range grid.Children() {
		rows += c.At(element.AxisRow)
		cols += c.At(element.AxisColumn)
	}
	switch {
	case cols > rows:
		return element.AxisColumn
	case rows > cols:
		return element.AxisRow
	default:
		return e.tieBreak
	}
}

// subdivide replaces a leaf occupant's cell with a new container holding
// the occupant and, unless the occupant is the node itself, the node placed
// on the edge orthogonal to the collision.
func (e *Engine) subdivide(t *element.Tree, occupant, node *element.Node, edge constraint.Edge) {
	sub := e.NewContainer(t, "grid-"+occupant.ID+"-"+node.ID, observability.ReasonSubdivide)
	if _, err := t.Replace(occupant, sub); err != nil {
		panic(err)
	}
	t.Place(sub, occupant, element.Coord{})
	if occupant != node {
		e.place(t, sub, node, occupant, edge.Orthogonal())
	}
}

// splitAnchor handles an insert across the container's orientation by
// turning the anchor's cell into a sub-grid oriented along the insert axis.
func (e *Engine) splitAnchor(t *element.Tree, container, node, anchor *element.Node, edge constraint.Edge) {
	sub := e.NewContainer(t, "grid-"+anchor.ID+"-"+node.ID, observability.ReasonCrossAxis)
	if _, err := t.Replace(anchor, sub); err != nil {
		panic(err)
	}
	t.Place(sub, anchor, element.Coord{})
	e.place(t, sub, node, anchor, edge)
	if orient, ok := element.Orientation(container); ok {
		e.mustHold(container, orient)
	}
}

func (e *Engine) mustHold(container *element.Node, axis element.Axis) {
	if container.ChildCount() < 2 {
		return
	}
	if err := element.CheckAxis(container, axis); err != nil {
		panic(err)
	}
}
