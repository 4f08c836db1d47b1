package apply

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridglob/pkg/constraint"
	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	"github.com/matzehuels/gridglob/pkg/grid"
	"github.com/matzehuels/gridglob/pkg/observability"
)

// Applier applies constraints to element trees. It holds no tree state and
// may be reused across batches, but not concurrently on the same tree.
type Applier struct {
	engine      *grid.Engine
	logger      *log.Logger
	hooks       observability.EngineHooks
	skipInvalid bool
}

// Option configures an Applier.
type Option func(*Applier)

// WithEngine sets the grid engine. Defaults to grid.New().
func WithEngine(e *grid.Engine) Option {
	return func(a *Applier) {
		if e != nil {
			a.engine = e
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Applier) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHooks overrides the globally registered engine hooks for
// constraint-level events.
func WithHooks(h observability.EngineHooks) Option {
	return func(a *Applier) { a.hooks = h }
}

// WithSkipInvalid makes the applier log and skip constraints that fail with
// an input error instead of aborting the batch.
func WithSkipInvalid() Option {
	return func(a *Applier) { a.skipInvalid = true }
}

// New creates an Applier.
func New(opts ...Option) *Applier {
	a := &Applier{
		engine: grid.New(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report summarizes a batch.
type Report struct {
	Applied int     // Constraints applied
	Skipped []error // Input errors skipped under WithSkipInvalid, in order
}

// Err joins the skipped errors, or returns nil if nothing was skipped.
func (r *Report) Err() error {
	return errors.Join(r.Skipped...)
}

// Apply applies constraints to the tree rooted at root, in order.
// An empty batch leaves the tree untouched.
func Apply(root *element.Node, constraints []constraint.Constraint) error {
	return New().Apply(root, constraints)
}

// Apply applies constraints to the tree rooted at root, in order. It indexes
// the tree once; see [Applier.ApplyTree].
func (a *Applier) Apply(root *element.Node, constraints []constraint.Constraint) error {
	tree, err := element.NewTree(root)
	if err != nil {
		return err
	}
	_, err = a.ApplyTree(tree, constraints)
	return err
}

// ApplyTree applies constraints to an indexed tree and reports what was
// applied and skipped. Errors name the failing constraint's position and
// keep the underlying code.
//
// The tree is checked with [element.ValidateInput] first: a container whose
// children lack cells, share a cell or sit on a negative one fails the whole
// batch with INVALID_INPUT before anything moves.
func (a *Applier) ApplyTree(tree *element.Tree, constraints []constraint.Constraint) (*Report, error) {
	report := &Report{}
	if err := element.ValidateInput(tree.Root()); err != nil {
		return report, err
	}
	for i, c := range constraints {
		err := a.ApplyOne(tree, c)
		if err == nil {
			report.Applied++
			continue
		}
		err = errs.Wrap(errs.GetCode(err), err, "constraint %d (%s)", i, c)
		if a.skipInvalid && errs.IsInputError(err) {
			a.logger.Warn("skipping constraint", "index", i, "constraint", c.String(), "reason", errs.UserMessage(errors.Unwrap(err)))
			report.Skipped = append(report.Skipped, err)
			continue
		}
		return report, err
	}
	return report, nil
}

// ApplyOne applies a single constraint to an indexed tree. Unlike
// [Applier.ApplyTree] it does not validate the whole tree; the containers it
// touches are still checked by the engine.
func (a *Applier) ApplyOne(tree *element.Tree, c constraint.Constraint) (err error) {
	start := time.Now()
	defer func() {
		a.engineHooks().OnConstraintApplied(c.String(), time.Since(start), err)
	}()

	if err := c.Validate(); err != nil {
		return err
	}
	anchor, ok := tree.Lookup(c.Anchor)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "anchor %q not found", c.Anchor)
	}
	dependent, ok := tree.Lookup(c.Dependent)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "dependent %q not found", c.Dependent)
	}
	if anchor == tree.Root() {
		return errs.New(errs.ErrCodeInvalidConstraint, "the root %q cannot be an anchor", anchor.ID)
	}
	if dependent == tree.Root() || tree.IsAncestor(dependent, anchor) {
		return errs.New(errs.ErrCodeCycle, "%q contains anchor %q", dependent.ID, anchor.ID)
	}

	parent, err := tree.Parent(anchor)
	if err != nil {
		return err
	}
	a.logger.Debug("applying constraint", "constraint", c.String(), "parent", parent.ID)

	if parent.IsContainer() {
		return a.engine.Insert(tree, parent, dependent, anchor, c.Edge)
	}

	if err := element.CheckCells(anchor); err != nil {
		return err
	}
	container := a.engine.NewContainer(tree, "grid-"+anchor.ID+"-"+dependent.ID, observability.ReasonWrap)
	if _, err := tree.Replace(anchor, container); err != nil {
		return err
	}
	tree.Place(container, anchor, element.Coord{})
	return a.engine.Insert(tree, container, dependent, anchor, c.Edge)
}

func (a *Applier) engineHooks() observability.EngineHooks {
	if a.hooks != nil {
		return a.hooks
	}
	return observability.Engine()
}

// LocateParent returns the parent of node under root by depth-first search:
// nil for the root itself, NOT_FOUND when node is not under root.
func LocateParent(node, root *element.Node) (*element.Node, error) {
	if node == nil || root == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "nil element")
	}
	parent, ok := element.FindParent(root, node)
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "element %q is not under %q", node.ID, root.ID)
	}
	return parent, nil
}
