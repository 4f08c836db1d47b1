package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/gridglob/pkg/constraint"
	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat parses a format name ("json", "toml", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errs.New(errs.ErrCodeUnsupported, "unsupported document format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errs.New(errs.ErrCodeUnsupported, "cannot infer document format of %s", path)
	}
	return ParseFormat(ext)
}

// Document is a layout document.
type Document struct {
	Root        *element.Node
	Constraints []constraint.Constraint
}

const (
	kindLeaf      = "leaf"
	kindContainer = "container"
)

type document struct {
	Root        *node                   `json:"root" toml:"root" yaml:"root"`
	Constraints []constraint.Constraint `json:"constraints,omitempty" toml:"constraints,omitempty" yaml:"constraints,omitempty"`
}

type node struct {
	ID       string           `json:"id" toml:"id" yaml:"id"`
	Kind     string           `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`
	Row      *int             `json:"row,omitempty" toml:"row,omitempty" yaml:"row,omitempty"`
	Col      *int             `json:"col,omitempty" toml:"col,omitempty" yaml:"col,omitempty"`
	Meta     element.Metadata `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
	Children []node           `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

func fromDocument(d *Document) document {
	out := document{Constraints: d.Constraints}
	if d.Root != nil {
		root := fromElement(d.Root)
		out.Root = &root
	}
	return out
}

func fromElement(n *element.Node) node {
	out := node{ID: n.ID}
	if len(n.Meta) > 0 {
		out.Meta = n.Meta
	}
	if n.IsContainer() {
		out.Kind = kindContainer
	}
	if c, ok := n.Coord(); ok {
		row, col := c.Row, c.Col
		out.Row, out.Col = &row, &col
	}
	if n.ChildCount() > 0 {
		out.Children = make([]node, n.ChildCount())
		for i, c := range n.Children() {
			out.Children[i] = fromElement(c)
		}
	}
	return out
}

func (d document) toDocument() (*Document, error) {
	if d.Root == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document has no root element")
	}
	root, err := d.Root.toElement()
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, Constraints: d.Constraints}, nil
}

func (n node) toElement() (*element.Node, error) {
	if n.ID == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "element without id")
	}
	var out *element.Node
	switch strings.ToLower(n.Kind) {
	case "", kindLeaf:
		out = element.NewLeaf(n.ID)
	case kindContainer:
		out = element.NewContainer(n.ID)
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "element %q: unknown kind %q", n.ID, n.Kind)
	}
	if n.Meta != nil {
		out.Meta = n.Meta
	}
	if n.Row != nil || n.Col != nil {
		var c element.Coord
		if n.Row != nil {
			c.Row = *n.Row
		}
		if n.Col != nil {
			c.Col = *n.Col
		}
		out.SetCoord(c)
	}
	for _, child := range n.Children {
		c, err := child.toElement()
		if err != nil {
			return nil, err
		}
		out.Append(c)
	}
	return out, nil
}
