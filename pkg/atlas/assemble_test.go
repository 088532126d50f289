package atlas

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/iconforge/iconforge/pkg/errors"
)

// stubRenderer fills each tile with an alpha value encoded in the source
// content, making icons distinguishable after white normalization (which
// preserves alpha). Content equal to "bad" fails.
type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, content []byte, size int) (*image.NRGBA, error) {
	if string(content) == "bad" {
		return nil, fmt.Errorf("malformed vector content")
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	alpha := content[0]
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: alpha})
		}
	}
	return img, nil
}

func testIcons(n int) []Icon {
	icons := make([]Icon, n)
	for i := range icons {
		icons[i] = Icon{
			Name:    fmt.Sprintf("icon-%02d", i),
			Content: []byte{byte(100 + i)},
		}
	}
	return icons
}

func TestAssembleRoundTrip(t *testing.T) {
	grid := Grid{Columns: 3, IconSize: 8, Supersample: 1}
	icons := testIcons(7)

	a := NewAssembler(stubRenderer{}, nil, 4)
	canvas, layout, warnings, err := a.Assemble(context.Background(), icons, grid)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if got := canvas.Rect; got.Dx() != layout.Width || got.Dy() != layout.Height {
		t.Fatalf("canvas = %dx%d, want %dx%d", got.Dx(), got.Dy(), layout.Width, layout.Height)
	}

	// Every index entry's pixel region must hold the icon it names: the stub
	// encodes identity in the alpha channel, which normalization preserves.
	for i, p := range layout.Placements {
		wantAlpha := uint8(100 + i)
		for y := p.Y; y < p.Y+grid.IconSize; y++ {
			for x := p.X; x < p.X+grid.IconSize; x++ {
				px := canvas.NRGBAAt(x, y)
				if px.A != wantAlpha {
					t.Fatalf("icon %d pixel (%d,%d) alpha = %d, want %d", i, x, y, px.A, wantAlpha)
				}
				if px.R != 255 || px.G != 255 || px.B != 255 {
					t.Fatalf("icon %d pixel (%d,%d) = (%d,%d,%d), want white", i, x, y, px.R, px.G, px.B)
				}
			}
		}
	}

	// Cells past the last icon stay fully transparent.
	last := layout.Placements[len(icons)-1]
	probe := canvas.NRGBAAt(last.X+grid.IconSize, last.Y)
	if probe.A != 0 {
		t.Errorf("unused cell is not transparent: %v", probe)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	grid := Grid{Columns: 4, IconSize: 6, Supersample: 1}
	icons := testIcons(10)

	first := NewAssembler(stubRenderer{}, nil, 1)
	second := NewAssembler(stubRenderer{}, nil, 8)

	c1, _, _, err := first.Assemble(context.Background(), icons, grid)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	c2, _, _, err := second.Assemble(context.Background(), icons, grid)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if !bytes.Equal(c1.Pix, c2.Pix) {
		t.Error("worker count changed atlas content")
	}
}

func TestAssembleFallbackKeepsAlignment(t *testing.T) {
	grid := Grid{Columns: 5, IconSize: 4, Supersample: 1}
	icons := testIcons(5)
	icons[2].Content = []byte("bad")

	a := NewAssembler(stubRenderer{}, nil, 2)
	canvas, layout, warnings, err := a.Assemble(context.Background(), icons, grid)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	if warnings[0].Name != "icon-02" {
		t.Errorf("warning for %q, want icon-02", warnings[0].Name)
	}
	if !errors.Is(warnings[0].Err, errors.ErrCodeUnrenderable) {
		t.Errorf("warning error code = %v, want UNRENDERABLE", warnings[0].Err)
	}

	// The bad slot holds the opaque white fallback; neighbors are unshifted.
	p := layout.Placements[2]
	if got := canvas.NRGBAAt(p.X, p.Y); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("fallback slot pixel = %v, want opaque white", got)
	}
	p3 := layout.Placements[3]
	if got := canvas.NRGBAAt(p3.X, p3.Y); got.A != 103 {
		t.Errorf("icon after fallback has alpha %d, want 103 (alignment shifted?)", got.A)
	}
}

func TestAssembleEmptySet(t *testing.T) {
	grid := Grid{Columns: 20, IconSize: 16, Supersample: 1}

	a := NewAssembler(stubRenderer{}, nil, 2)
	canvas, layout, warnings, err := a.Assemble(context.Background(), nil, grid)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if layout.Rows != 0 || len(warnings) != 0 {
		t.Errorf("empty set: rows = %d, warnings = %d", layout.Rows, len(warnings))
	}
	if canvas.Rect.Dx() != 0 || canvas.Rect.Dy() != 0 {
		t.Errorf("empty set canvas = %v, want 0x0", canvas.Rect)
	}
}

func TestAssembleInvalidGrid(t *testing.T) {
	a := NewAssembler(stubRenderer{}, nil, 1)
	_, _, _, err := a.Assemble(context.Background(), testIcons(3), Grid{Columns: 0, IconSize: 16, Supersample: 1})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestFallback(t *testing.T) {
	img := Fallback(4)
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 4 {
		t.Fatalf("Fallback(4) = %v, want 4x4", img.Rect)
	}
	for i, v := range img.Pix {
		if v != 0xff {
			t.Fatalf("Pix[%d] = %d, want 255", i, v)
		}
	}
}
