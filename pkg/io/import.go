package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Read decodes a document in format f from r.
//
// Unknown fields are rejected so that typos ("dependant", "chldren") do not
// silently drop parts of a layout. Read does not close r.
func Read(r io.Reader, f Format) (*Document, error) {
	var data document
	var err error
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&data)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&data)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = errors.New("unknown key " + undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&data)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported document format %q", f)
	}
	if errors.Is(err, io.EOF) {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "empty %s document", f)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return data.toDocument()
}

// ReadJSON decodes a JSON document from r.
func ReadJSON(r io.Reader) (*Document, error) { return Read(r, FormatJSON) }

// Import reads the document at path, choosing the format from its extension.
func Import(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ImportAs(path, f)
}

// ImportAs reads the document at path in format f.
func ImportAs(path string, f Format) (*Document, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer file.Close()

	doc, err := Read(file, f)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "%s", path)
	}
	return doc, nil
}
