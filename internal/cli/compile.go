package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/gridglob/pkg/errors"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/pipeline"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // output formats
	inputFormat string   // document format when reading stdin or an odd extension
	noCache     bool     // bypass the result cache
}

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	pipeline.FormatOutline: "txt",
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var (
		formatsStr string
		flags      compileOpts
		tieBreak   string
		idStyle    string
		skip       bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "compile [document]",
		Short: "Apply a document's constraints and write the compiled tree",
		Long: `Apply a layout document's constraints, in order, and write the compiled tree.

The document (JSON, YAML, or TOML) holds a root element and a list of
constraints such as {"anchor": "A", "dependent": "B", "edge": "right-of"}.
Without an argument the document is read from stdin, or picked interactively
from the working directory when stdin is a terminal.

Output formats: json (default), yaml, toml, dot, svg, pdf, png, outline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(flags.formats); err != nil {
				return err
			}

			opts := c.cfg().pipelineOptions()
			if cmd.Flags().Changed("tie-break") {
				opts.TieBreak = tieBreak
			}
			if cmd.Flags().Changed("id-style") {
				opts.IDStyle = idStyle
			}
			if cmd.Flags().Changed("skip-invalid") {
				opts.SkipInvalid = skip
			}
			opts.Detailed = detailed
			opts.Formats = flags.formats

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runCompile(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), input, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), yaml, toml, dot, svg, pdf, png, outline (comma-separated)")
	cmd.Flags().StringVarP(&flags.inputFormat, "input-format", "i", "", "document format: json, yaml, toml (default: from extension, json for stdin)")
	cmd.Flags().StringVar(&tieBreak, "tie-break", pipeline.DefaultTieBreak, "glob axis when a container's coordinate sums tie: row or column")
	cmd.Flags().StringVar(&idStyle, "id-style", pipeline.DefaultIDStyle, "container IDs: sequential or uuid")
	cmd.Flags().BoolVar(&skip, "skip-invalid", false, "skip constraints that cannot be applied instead of failing")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include metadata in dot/svg output")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	cmd.ValidArgsFunction = completeDocuments
	registerEngineCompletions(cmd)

	return cmd
}

// runCompile loads the document, runs the pipeline, and writes artifacts.
func (c *CLI) runCompile(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, input string, opts pipeline.Options, flags compileOpts) error {
	logger := loggerFromContext(ctx)

	if input == "" && isTerminal(stdin) {
		picked, err := c.pickInput()
		if err != nil || picked == "" {
			return err
		}
		input = picked
	}

	doc, err := readDocument(stdin, input, flags.inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	opts.NoCache = flags.noCache
	opts.Styled = flags.output == "" && isTerminal(stdout)

	prog := newProgress(logger)
	var spinner *Spinner
	if isTerminal(stderr) {
		spinner = newSpinnerTo(ctx, stderr, "Compiling...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, doc, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	for _, s := range result.Skipped {
		logger.Warn("skipped constraint", "reason", s)
	}
	name := input
	if name == "" {
		name = "stdin"
	}
	prog.done("compiled", "document", name, "elements", result.Stats.Nodes, "cached", result.CacheHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
		stdout:    stdout,
		status:    newPrinter(stderr),
		stats:     result.Stats,
		cacheHit:  result.CacheHit,
	})
}

// pickInput offers the documents in the working directory.
func (c *CLI) pickInput() (string, error) {
	docs, err := findDocuments(".")
	if err != nil {
		return "", err
	}
	switch len(docs) {
	case 0:
		return "", errs.New(errs.ErrCodeInvalidInput, "no document given and none found in the working directory")
	case 1:
		return docs[0].Path, nil
	}
	return pickDocument(docs)
}

// readDocument reads the document at path, or from stdin when path is
// empty. An explicit format overrides the file extension.
func readDocument(stdin io.Reader, path, format string) (*pkgio.Document, error) {
	if path == "" {
		f := pkgio.FormatJSON
		if format != "" {
			var err error
			if f, err = pkgio.ParseFormat(format); err != nil {
				return nil, err
			}
		}
		return pkgio.Read(stdin, f)
	}
	if format != "" {
		f, err := pkgio.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		return pkgio.ImportAs(path, f)
	}
	return pkgio.Import(path)
}

// artifactWriteParams describes where compiled artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stdout    io.Writer
	status    *printer
	stats     pipeline.Stats
	cacheHit  bool
}

// writeArtifacts writes a single artifact to output (or stdout), or each
// of several artifacts next to a base path.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output == "" {
		_, err := p.stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	paths := make([]string, 0, len(p.formats))
	if len(p.formats) == 1 {
		paths = append(paths, p.output)
	} else {
		base := basePath(p.output, p.input)
		for _, f := range p.formats {
			paths = append(paths, base+"."+extension(f))
		}
	}

	for i, f := range p.formats {
		if err := os.WriteFile(paths[i], p.artifacts[f], 0o644); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "write %s", paths[i])
		}
	}

	p.status.success("Compiled %d of %d constraints", p.stats.Applied, p.stats.Constraints)
	p.status.stats(p.stats, p.cacheHit)
	for _, path := range paths {
		p.status.file(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input ("layout" for stdin).
// If output has a format extension (.svg, .json, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "layout"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] || ext == "yml" || ext == "txt" {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// extension returns the file extension for an output format.
func extension(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return format
}

// isTerminal reports whether v is a terminal file.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
