// Package raster renders vector icon sources into square RGBA tiles.
//
// SVG documents are parsed with oksvg and rendered with the rasterx scanline
// rasterizer at an oversampled resolution, then downsampled to the requested
// size with a Lanczos filter. Supersampling trades rendering time for reduced
// aliasing on small icon sizes; it never changes output dimensions.
package raster

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/iconforge/iconforge/pkg/errors"
)

// SVG renders SVG documents into size x size NRGBA tiles.
type SVG struct {
	supersample int
}

// NewSVG creates an SVG renderer with the given supersample factor.
func NewSVG(supersample int) (*SVG, error) {
	if supersample < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "supersample must be >= 1, got %d", supersample)
	}
	return &SVG{supersample: supersample}, nil
}

// Render rasterizes one SVG document at size*supersample pixels and
// downsamples the result to exactly size x size. The icon is scaled to fit
// the square tile preserving its aspect ratio and centered; transparent
// regions stay fully transparent.
//
// Any parse or render failure is reported as an UNRENDERABLE error so the
// caller can substitute a fallback tile without aborting the batch.
func (r *SVG) Render(ctx context.Context, content []byte, size int) (img *image.NRGBA, err error) {
	if size < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "icon size must be >= 1, got %d", size)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// oksvg panics on some malformed path data instead of returning an
	// error; a panic here must degrade to UNRENDERABLE like any other
	// per-icon failure.
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = errors.New(errors.ErrCodeUnrenderable, "svg rendering panicked: %v", rec)
		}
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnrenderable, err, "parse svg")
	}

	renderSize := size * r.supersample

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(renderSize), float64(renderSize)
	}

	// Fit into the square tile, centered.
	scale := float64(renderSize) / w
	if h > w {
		scale = float64(renderSize) / h
	}
	outW := w * scale
	outH := h * scale
	offsetX := (float64(renderSize) - outW) / 2
	offsetY := (float64(renderSize) - outH) / 2
	icon.SetTarget(offsetX, offsetY, outW, outH)

	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(dasher, 1.0)

	if r.supersample > 1 {
		return imaging.Resize(rgba, size, size, imaging.Lanczos), nil
	}
	return imaging.Clone(rgba), nil
}
