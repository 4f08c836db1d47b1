package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridglob/pkg/element"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/render/outline"
)

// checkCommand creates the check command for validating compiled trees.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		inputFormat string
		showOutline bool
	)

	cmd := &cobra.Command{
		Use:   "check [document]",
		Short: "Validate a compiled tree",
		Long: `Validate the tree in a document: unique element IDs, no shared ownership,
non-negative cells, and within every grid container a single governing axis
with no two children in the same cell.

Documents that still carry constraints are checked as-is; the constraints
are reported but not applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(nil, args[0], inputFormat)
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), doc, args[0], showOutline)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "document format: json, yaml, toml (default: from extension)")
	cmd.Flags().BoolVar(&showOutline, "outline", false, "print the tree outline")

	cmd.ValidArgsFunction = completeDocuments
	registerEngineCompletions(cmd)

	return cmd
}

func runCheck(w io.Writer, doc *pkgio.Document, path string, showOutline bool) error {
	out := newPrinter(w)
	if err := element.Validate(doc.Root); err != nil {
		out.failure("%s is not a valid tree", path)
		return err
	}

	var containers, depth int
	element.Walk(doc.Root, func(n, _ *element.Node, d int) bool {
		if n.IsContainer() {
			containers++
		}
		depth = max(depth, d)
		return true
	})

	out.success("%s is valid", path)
	out.keyValue("elements", element.Count(doc.Root))
	out.keyValue("containers", fmt.Sprintf("%d %s", containers, iconGrid))
	out.keyValue("depth", depth)
	if n := len(doc.Constraints); n > 0 {
		out.warning("%d constraints not applied", n)
		out.nextStep("Compile it first", appName+" compile "+path)
	}

	if showOutline {
		out.newline()
		fmt.Fprint(w, outline.Render(doc.Root, outline.Options{Styled: isTerminal(w), Rounded: true}))
	}
	return nil
}
