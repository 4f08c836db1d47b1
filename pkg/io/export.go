package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Write encodes doc in format f to w. Children of containers carry their
// row and col; constraints are omitted when there are none.
func Write(w io.Writer, doc *Document, f Format) error {
	out := fromDocument(doc)
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(out)
		if err == nil {
			err = enc.Close()
		}
	default:
		return errs.New(errs.ErrCodeUnsupported, "unsupported document format %q", f)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

// WriteTree encodes a compiled tree as a document without constraints.
func WriteTree(w io.Writer, root *element.Node, f Format) error {
	return Write(w, &Document{Root: root}, f)
}

// Export writes doc to path, choosing the format from its extension.
func Export(doc *Document, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := Write(file, doc, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
