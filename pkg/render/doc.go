// Package render provides visual output for compiled element trees.
//
// # Overview
//
// A compiled tree is a nesting of grid containers whose children carry
// (row, column) cells. This package and its subpackages turn that tree into
// something a person can look at:
//
//   - Node-link diagrams (in [nodelink] subpackage), via Graphviz
//   - Terminal outlines (in [outline] subpackage), via lipgloss
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg); [Available] reports whether
// it is installed:
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(root, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws the element tree top to bottom with
// containers as dashed boxes and parent-child edges labeled with the
// child's cell.
//
// # Outlines
//
// The [outline] subpackage prints an indented tree for terminals:
//
//	form
//	└── grid-A-B ▦
//	    ├── A (0,0)
//	    └── B (0,1)
//
// [nodelink]: github.com/matzehuels/gridglob/pkg/render/nodelink
// [outline]: github.com/matzehuels/gridglob/pkg/render/outline
package render
