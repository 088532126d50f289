package atlas

import "image"

// NormalizeWhite returns a copy of src with every non-transparent pixel
// rewritten to pure white, preserving its original alpha. Fully transparent
// pixels are left untouched.
//
// This is an unconditional tint-to-white operation, not a color-key
// replacement: no channel other than alpha is inspected. It replaces the
// fragile pre-rasterization markup substitution the legacy generator used,
// which silently no-opped on SVGs that didn't use literal black fills.
//
// The function works directly on the Pix slice so large canvases don't incur
// per-pixel allocations. src is never mutated.
func NormalizeWhite(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)

	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] > 0 {
			out.Pix[i] = 0xff
			out.Pix[i+1] = 0xff
			out.Pix[i+2] = 0xff
		}
	}
	return out
}
