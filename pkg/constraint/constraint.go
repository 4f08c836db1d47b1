// Package constraint defines the pairwise positioning rules that gridglob
// compiles into grid coordinates.
//
// A [Constraint] says "place Dependent on Edge of Anchor". Constraints are
// transient instructions: applying one mutates the element tree and the
// constraint itself is discarded. Their order matters, since every
// application observes the tree produced by the ones before it.
package constraint

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Edge is the requested placement of a dependent relative to its anchor.
type Edge int

const (
	LeftOf Edge = iota
	RightOf
	Above
	Below
)

var edgeNames = map[Edge]string{
	LeftOf:  "left-of",
	RightOf: "right-of",
	Above:   "above",
	Below:   "below",
}

// Edges lists every supported edge.
var Edges = []Edge{LeftOf, RightOf, Above, Below}

// String returns the canonical document spelling ("right-of").
func (e Edge) String() string {
	if s, ok := edgeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// Valid reports whether e is one of the four supported edges.
func (e Edge) Valid() bool {
	_, ok := edgeNames[e]
	return ok
}

// Placement returns the governing axis and the direction (-1 or +1) of e.
// Returns an UNSUPPORTED_EDGE error for values outside the enumeration.
func (e Edge) Placement() (element.Axis, int, error) {
	switch e {
	case Above:
		return element.AxisRow, -1, nil
	case Below:
		return element.AxisRow, 1, nil
	case LeftOf:
		return element.AxisColumn, -1, nil
	case RightOf:
		return element.AxisColumn, 1, nil
	default:
		return 0, 0, errs.New(errs.ErrCodeUnsupportedEdge, "unsupported edge %s", e)
	}
}

// Orthogonal returns the edge used when a collision on e's axis forces a
// cell to be sub-divided: a row collision grows the new sub-grid to the
// right, a column collision grows it downward.
func (e Edge) Orthogonal() Edge {
	if e == Above || e == Below {
		return RightOf
	}
	return Below
}

// MarshalText implements encoding.TextMarshaler.
func (e Edge) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, errs.New(errs.ErrCodeUnsupportedEdge, "unsupported edge %s", e)
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [ParseEdge].
func (e *Edge) UnmarshalText(text []byte) error {
	parsed, err := ParseEdge(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// edgeAliases maps normalized spellings to edges. "top-of" and "bottom-of"
// are accepted for documents written against the older vocabulary.
var edgeAliases = map[string]Edge{
	"leftof":   LeftOf,
	"left":     LeftOf,
	"rightof":  RightOf,
	"right":    RightOf,
	"above":    Above,
	"topof":    Above,
	"top":      Above,
	"below":    Below,
	"bottomof": Below,
	"bottom":   Below,
}

// ParseEdge parses an edge name. Matching ignores case, spaces, hyphens, and
// underscores, so "right-of", "RightOf", and "right_of" are equivalent.
func ParseEdge(s string) (Edge, error) {
	norm := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
	if e, ok := edgeAliases[norm]; ok {
		return e, nil
	}
	return 0, errs.New(errs.ErrCodeUnsupportedEdge, "unknown edge %q", s)
}

// Constraint places Dependent on Edge of Anchor.
type Constraint struct {
	Anchor    string `json:"anchor" toml:"anchor" yaml:"anchor"`
	Dependent string `json:"dependent" toml:"dependent" yaml:"dependent"`
	Edge      Edge   `json:"edge" toml:"edge" yaml:"edge"`
}

// New returns a constraint placing dependent on edge of anchor.
func New(anchor, dependent string, edge Edge) Constraint {
	return Constraint{Anchor: anchor, Dependent: dependent, Edge: edge}
}

// String renders the constraint as "B right-of A".
func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %s", c.Dependent, c.Edge, c.Anchor)
}

// Validate checks the identifiers and the edge without consulting a tree.
func (c Constraint) Validate() error {
	if err := errs.ValidateID(c.Anchor); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConstraint, err, "anchor")
	}
	if err := errs.ValidateID(c.Dependent); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConstraint, err, "dependent")
	}
	if c.Anchor == c.Dependent {
		return errs.New(errs.ErrCodeInvalidConstraint, "%q cannot be placed relative to itself", c.Anchor)
	}
	if !c.Edge.Valid() {
		return errs.New(errs.ErrCodeUnsupportedEdge, "unsupported edge %s", c.Edge)
	}
	return nil
}
