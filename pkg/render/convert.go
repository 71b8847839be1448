package render

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/matzehuels/geofacet/pkg/errors"
)

// ToPDF converts a figure's SVG output to PDF via rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts a figure's SVG output to PNG via rsvg-convert. The
// scale factor multiplies the figure's pixel dimensions; 2.0 doubles
// the resolution.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes the SVG through rsvg-convert for rasterization.
// SVG needs no external tooling, so conversion failures are reported
// with codes the CLI and API can map without losing the SVG fallback.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg (rsvg-convert not found); install with 'brew install librsvg' (macOS) or 'apt install librsvg2-bin' (Linux)", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"rsvg-convert to %s: %s", format, errBuf.String())
	}
	return out.Bytes(), nil
}
