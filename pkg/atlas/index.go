package atlas

import (
	"fmt"
	"io"
	"strings"

	"github.com/iconforge/iconforge/pkg/errors"
)

// WriteIndex emits the atlas index: a short metadata header followed by one
// fixed-width record per icon, in set order.
//
// The format is the canonical extended one, byte-compatible with the legacy
// multi-size generator:
//
//	Texture Atlas Icon Mapping (20x2)
//	Icon size: 64x64 pixels
//	Atlas size: 1280x128 pixels
//	--------------------------------------------------
//	Index   0: arrow-up                       | Grid: ( 0, 0) | Pixel: (   0,   0)
//
// The header is metadata only; consumers must skip it and parse the records.
// No sorting, filtering, or deduplication happens here: one record exists iff
// one icon exists in the set, in the exact order used for assembly.
func WriteIndex(w io.Writer, icons []Icon, grid Grid, layout Layout) error {
	if len(icons) != len(layout.Placements) {
		return errors.New(errors.ErrCodeInternal,
			"layout has %d placements for %d icons", len(layout.Placements), len(icons))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Texture Atlas Icon Mapping (%dx%d)\n", grid.Columns, layout.Rows)
	fmt.Fprintf(&b, "Icon size: %dx%d pixels\n", grid.IconSize, grid.IconSize)
	fmt.Fprintf(&b, "Atlas size: %dx%d pixels\n", layout.Width, layout.Height)
	b.WriteString(strings.Repeat("-", 50) + "\n")

	for i, icon := range icons {
		p := layout.Placements[i]
		fmt.Fprintf(&b, "Index %3d: %-30s | Grid: (%2d,%2d) | Pixel: (%4d,%4d)\n",
			p.Index, icon.Name, p.Column, p.Row, p.X, p.Y)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "write index")
	}
	return nil
}

// IndexText renders the index to a string. See WriteIndex for the format.
func IndexText(icons []Icon, grid Grid, layout Layout) (string, error) {
	var b strings.Builder
	if err := WriteIndex(&b, icons, grid, layout); err != nil {
		return "", err
	}
	return b.String(), nil
}
