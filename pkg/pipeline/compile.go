package pipeline

import (
	"errors"

	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
)

// Compiled is the outcome of the compile stage.
type Compiled struct {
	Root    *element.Node
	Applied int
	Skipped []string
}

// Compile applies doc's constraints, in order, to a copy of doc's tree and
// validates the result. doc itself is left untouched.
func Compile(doc *pkgio.Document, opts Options) (*Compiled, error) {
	if doc == nil || doc.Root == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document has no root")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	applier, err := opts.Applier()
	if err != nil {
		return nil, err
	}

	root := element.Clone(doc.Root)
	tree, err := element.NewTree(root)
	if err != nil {
		return nil, err
	}
	report, err := applier.ApplyTree(tree, doc.Constraints)
	if err != nil {
		return nil, err
	}
	if err := element.Validate(root); err != nil {
		return nil, errs.Wrap(errs.ErrCodeIntegrity, err, "compiled tree")
	}

	out := &Compiled{Root: root, Applied: report.Applied}
	for _, s := range report.Skipped {
		out.Skipped = append(out.Skipped, errs.UserMessage(errors.Unwrap(s)))
	}
	return out, nil
}

// countContainers returns the number of containers under root.
func countContainers(root *element.Node) int {
	n := 0
	element.Walk(root, func(node, _ *element.Node, _ int) bool {
		if node.IsContainer() {
			n++
		}
		return true
	})
	return n
}
