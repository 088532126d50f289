package atlas

import (
	"github.com/iconforge/iconforge/pkg/errors"
)

// Grid is the immutable per-invocation packing configuration.
type Grid struct {
	// Columns is the fixed column count of the atlas grid.
	Columns int

	// IconSize is the edge length of one icon cell in pixels.
	IconSize int

	// Supersample is the rendering oversampling factor. It affects pixel
	// quality only and never participates in layout math.
	Supersample int
}

// Validate checks that all grid parameters are positive.
func (g Grid) Validate() error {
	if g.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be >= 1, got %d", g.Columns)
	}
	if g.IconSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "icon size must be >= 1, got %d", g.IconSize)
	}
	if g.Supersample < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "supersample must be >= 1, got %d", g.Supersample)
	}
	return nil
}

// RenderSize returns the oversampled edge length used during rasterization.
func (g Grid) RenderSize() int {
	return g.IconSize * g.Supersample
}

// Placement is an icon's computed position within an atlas.
type Placement struct {
	Index  int // 0-based icon index in the set
	Column int // grid column, Index % Columns
	Row    int // grid row, Index / Columns
	X      int // pixel origin, Column * IconSize
	Y      int // pixel origin, Row * IconSize
}

// Layout describes the computed geometry of one atlas.
type Layout struct {
	Rows       int // ceil(count / columns); 0 for an empty set
	Width      int // canvas width in pixels, Columns * IconSize
	Height     int // canvas height in pixels, Rows * IconSize
	Placements []Placement
}

// Layout computes the placement of count icons on the grid.
//
// Placement is row-major, left-to-right, top-to-bottom, matching raster scan
// order: column = i % columns, row = i / columns. The function is pure; the
// same inputs always produce identical output.
//
// A count of zero yields Rows == 0 and a 0x0 canvas. Callers must treat that
// as "nothing to write" rather than an error.
func (g Grid) Layout(count int) (Layout, error) {
	if err := g.Validate(); err != nil {
		return Layout{}, err
	}
	if count < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig, "icon count must be >= 0, got %d", count)
	}

	rows := (count + g.Columns - 1) / g.Columns

	l := Layout{
		Rows:       rows,
		Placements: make([]Placement, count),
	}
	if rows > 0 {
		l.Width = g.Columns * g.IconSize
		l.Height = rows * g.IconSize
	}

	for i := 0; i < count; i++ {
		col := i % g.Columns
		row := i / g.Columns
		l.Placements[i] = Placement{
			Index:  i,
			Column: col,
			Row:    row,
			X:      col * g.IconSize,
			Y:      row * g.IconSize,
		}
	}

	return l, nil
}
