// Package pipeline provides the compile pipeline for gridglob.
//
// This package implements the complete decode → apply → render pipeline
// that the CLI and the HTTP server share. By centralizing this logic, both
// entry points resolve defaults, cache compiled trees, and name output
// formats the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compile: Apply a document's constraints to a copy of its tree and
//     validate the result
//  2. Render: Encode the compiled tree in each requested format (JSON,
//     YAML, TOML, DOT, SVG, PDF, PNG, or a terminal outline)
//
// Compiled trees are cached under a key derived from the document's
// content hash and the engine settings that affect the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    TieBreak: "row",
//	    Formats:  []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridglob/pkg/apply"
	"github.com/matzehuels/gridglob/pkg/cache"
	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	"github.com/matzehuels/gridglob/pkg/grid"
	"github.com/matzehuels/gridglob/pkg/ident"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultTieBreak is the glob axis used when a container's coordinate
	// sums are equal.
	DefaultTieBreak = "column"

	// DefaultIDStyle is the container ID strategy.
	DefaultIDStyle = ident.StyleSequential

	// DefaultCacheTTL is how long compiled trees stay cached.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatTOML    = "toml"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPDF     = "pdf"
	FormatPNG     = "png"
	FormatOutline = "outline"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:    true,
	FormatYAML:    true,
	FormatTOML:    true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPDF:     true,
	FormatPNG:     true,
	FormatOutline: true,
}

// formatNames lists ValidFormats in a stable order for messages.
var formatNames = []string{
	FormatJSON, FormatYAML, FormatTOML, FormatDOT,
	FormatSVG, FormatPDF, FormatPNG, FormatOutline,
}

// FormatNames returns the supported output formats in display order.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a compile.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Compile options
	TieBreak    string `json:"tie_break,omitempty"`
	IDStyle     string `json:"id_style,omitempty"`
	SkipInvalid bool   `json:"skip_invalid,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Metadata in DOT labels
	Styled   bool     `json:"styled,omitempty"`   // Colors in outline output

	// Cache options
	NoCache  bool          `json:"no_cache,omitempty"`
	CacheTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the compiled tree.
	Root *element.Node

	// DocHash is the content hash of the input document.
	DocHash string

	// Skipped lists constraints skipped under SkipInvalid, as messages.
	Skipped []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the compiled tree came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Constraints int
	Applied     int
	Nodes       int
	Containers  int
	CompileTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)",
			format, strings.Join(formatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTieBreak checks that a tie-break axis is valid.
func ValidateTieBreak(tieBreak string) error {
	_, err := element.ParseAxis(tieBreak)
	return err
}

// ValidateIDStyle checks that a container ID style is valid.
func ValidateIDStyle(style string) error {
	_, err := ident.New(style)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TieBreak == "" {
		o.TieBreak = DefaultTieBreak
	}
	if o.IDStyle == "" {
		o.IDStyle = DefaultIDStyle
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := ValidateTieBreak(o.TieBreak); err != nil {
		return err
	}
	if err := ValidateIDStyle(o.IDStyle); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Applier builds the constraint applier these options describe.
func (o *Options) Applier() (*apply.Applier, error) {
	axis, err := element.ParseAxis(o.tieBreak())
	if err != nil {
		return nil, err
	}
	ids, err := ident.New(o.IDStyle)
	if err != nil {
		return nil, err
	}
	engine := grid.New(grid.WithTieBreak(axis), grid.WithIDs(ids))

	opts := []apply.Option{apply.WithEngine(engine), apply.WithLogger(o.Logger)}
	if o.SkipInvalid {
		opts = append(opts, apply.WithSkipInvalid())
	}
	return apply.New(opts...), nil
}

// CompileKeyOpts returns cache key options for a compiled tree.
func (o *Options) CompileKeyOpts() cache.CompileKeyOpts {
	return cache.CompileKeyOpts{
		TieBreak:    o.tieBreak(),
		IDStyle:     o.IDStyle,
		SkipInvalid: o.SkipInvalid,
		Format:      FormatJSON,
	}
}

func (o *Options) tieBreak() string {
	if o.TieBreak == "" {
		return DefaultTieBreak
	}
	return o.TieBreak
}
