// Package pkg provides the core libraries for gridglob layout compilation.
//
// # Overview
//
// gridglob takes a tree of layout elements and an ordered list of pairwise
// positioning constraints ("B right-of A", "C below B") and rewrites the tree
// so that every constrained element sits in a unique (row, column) cell of a
// grid container. Containers are synthesized on demand and nest when a
// constraint crosses the axis of an existing grid.
//
// # Architecture
//
// The typical data flow:
//
//	Layout document (JSON / YAML / TOML)
//	         ↓
//	    [io] package (decode root + constraints)
//	         ↓
//	    [apply] package (resolve anchors, one constraint at a time)
//	         ↓
//	    [grid] package (insert, shift, glob, subdivide)
//	         ↓
//	    [render] package (JSON/YAML/TOML tree, DOT/SVG/PDF/PNG, outline)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/gridglob/pkg/apply"
//	    "github.com/matzehuels/gridglob/pkg/constraint"
//	    "github.com/matzehuels/gridglob/pkg/element"
//	)
//
//	root := element.NewLeaf("form")
//	root.Append(element.NewLeaf("A"), element.NewLeaf("B"))
//
//	err := apply.Apply(root, []constraint.Constraint{
//	    constraint.New("A", "B", constraint.RightOf),
//	})
//	// root now holds grid-A-B with A at (0,0) and B at (0,1)
//
// # Main Packages
//
// [element] - The element tree: leaves, grid containers, cells, and the
// indexed [element.Tree] the engine mutates. [element.Validate] checks the
// structural invariants of a compiled tree.
//
// [constraint] - Edges (left-of, right-of, above, below) and constraints.
//
// [grid] - The insertion engine. Places a node next to an anchor inside a
// container, shifting, globbing, or subdividing as needed.
//
// [apply] - Applies constraints in order on top of [grid], wrapping anchors
// whose parent is not a container.
//
// [ident] - Container ID generation (sequential "grid-A-B" or UUID).
//
// [io] - Layout document encoding.
//
// [pipeline] - Decode, compile, render; with result caching. Used by both
// the CLI and the HTTP server.
//
// [cache] - File, Redis, and null result caches.
//
// [server] - The HTTP compile API. [httputil] holds its response helpers.
//
// [observability] - Optional hooks for engine, pipeline, and cache events.
//
// [errors] - Coded errors shared by every package.
//
// [element]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/element
// [element.Tree]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/element#Tree
// [element.Validate]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/element#Validate
// [constraint]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/constraint
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/grid
// [apply]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/apply
// [ident]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/ident
// [io]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/server
// [httputil]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridglob/pkg/errors
package pkg
