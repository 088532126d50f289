package atlas

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestNormalizeWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 12, G: 34, B: 56, A: 0})    // transparent, colored
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 128}) // semi-transparent red
	src.SetNRGBA(2, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})     // opaque black

	out := NormalizeWhite(src)

	if out.Rect != src.Rect {
		t.Fatalf("dimensions changed: %v -> %v", src.Rect, out.Rect)
	}

	tests := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 12, G: 34, B: 56, A: 0}},
		{1, color.NRGBA{R: 255, G: 255, B: 255, A: 128}},
		{2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("pixel (%d,0) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestNormalizeWhiteDoesNotMutateSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 9, B: 9, A: 200})
	before := append([]byte(nil), src.Pix...)

	NormalizeWhite(src)

	if !bytes.Equal(before, src.Pix) {
		t.Error("source image was mutated")
	}
}

func TestNormalizeWhiteIdempotent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i++ {
		src.Pix[i] = byte(i * 7)
	}

	once := NormalizeWhite(src)
	twice := NormalizeWhite(once)

	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Error("normalizing twice changed the result")
	}
}

func TestNormalizeWhiteAlphaSweep(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 256, 1))
	for a := 0; a < 256; a++ {
		src.SetNRGBA(a, 0, color.NRGBA{R: 42, G: 84, B: 126, A: uint8(a)})
	}

	out := NormalizeWhite(src)
	for a := 0; a < 256; a++ {
		got := out.NRGBAAt(a, 0)
		if got.A != uint8(a) {
			t.Fatalf("alpha %d changed to %d", a, got.A)
		}
		if a > 0 && (got.R != 255 || got.G != 255 || got.B != 255) {
			t.Fatalf("alpha %d: color = (%d,%d,%d), want white", a, got.R, got.G, got.B)
		}
		if a == 0 && got != src.NRGBAAt(a, 0) {
			t.Fatalf("transparent pixel was rewritten: %v", got)
		}
	}
}
