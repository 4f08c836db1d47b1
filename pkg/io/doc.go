// Package io reads and writes layout documents: an element tree plus the
// ordered constraints to apply to it.
//
// # Overview
//
// A document is the input of a compile and, once compiled, its output. The
// same schema is accepted in three encodings:
//
//   - JSON (encoding/json)
//   - TOML (github.com/BurntSushi/toml)
//   - YAML (gopkg.in/yaml.v3)
//
// The format is chosen explicitly with a [Format] or from a file extension
// with [FormatFromPath].
//
// # Schema
//
//	{
//	  "root": {
//	    "id": "form",
//	    "children": [
//	      {"id": "name", "meta": {"label": "Name"}},
//	      {"id": "email"}
//	    ]
//	  },
//	  "constraints": [
//	    {"anchor": "name", "dependent": "email", "edge": "below"}
//	  ]
//	}
//
// The same document in TOML:
//
//	[root]
//	id = "form"
//
//	[[root.children]]
//	id = "name"
//	meta = { label = "Name" }
//
//	[[root.children]]
//	id = "email"
//
//	[[constraints]]
//	anchor = "name"
//	dependent = "email"
//	edge = "below"
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - kind: "leaf" (default) or "container"
//   - row, col: Grid cell inside a container parent (written for compiled
//     trees; accepted on input for pre-built grids)
//   - meta: Free-form attributes, carried through unchanged
//   - children: Ordered child elements
//
// Edges accept "left-of", "right-of", "above", "below" and the aliases
// understood by [constraint.ParseEdge].
//
// # Compiled Output
//
// [Write] emits the document as it stands. After a compile the constraints
// have been consumed, so the output holds just the tree with row and col set
// on every child of a container. Re-reading a compiled document and
// compiling it with no constraints reproduces it exactly.
//
// # Errors
//
// Malformed input is INVALID_FORMAT, a structurally wrong document (no
// root, unknown kind) INVALID_INPUT, and a missing file FILE_NOT_FOUND.
// Identifier uniqueness is not checked here; indexing the tree with
// [element.NewTree] does that.
package io
