package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/render/nodelink"
	"github.com/matzehuels/gridglob/pkg/render/outline"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, root *element.Node, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var dot string
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON, FormatYAML, FormatTOML:
			data, err = renderDocument(root, format)
		case FormatOutline:
			data = []byte(outline.Render(root, outline.Options{Styled: opts.Styled, Rounded: true}))
		default:
			if dot == "" {
				dot = nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed})
			}
			data, err = renderGraph(ctx, dot, format)
		}

		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderDocument(root *element.Node, format string) ([]byte, error) {
	f, err := pkgio.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteTree(&buf, root, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderGraph(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, DefaultPNGScale)
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
}
