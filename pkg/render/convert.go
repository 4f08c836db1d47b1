package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Converter is the external tool that turns SVG into PDF and PNG. It ships
// with librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
const Converter = "rsvg-convert"

// Available reports whether [Converter] is on PATH.
func Available() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

// ToPDF converts SVG bytes to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. A scale of 2 doubles the resolution;
// non-positive scales mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// convert pipes svg through the converter. Cancelling ctx kills it.
func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !Available() {
		return nil, errs.New(errs.ErrCodeUnsupported, "%s output needs %s (librsvg) on PATH", format, Converter)
	}

	cmd := exec.CommandContext(ctx, Converter, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
