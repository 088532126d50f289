// Package atlas implements fixed-grid texture atlas packing for icon sets.
//
// An atlas is a single RGBA image packing many icons on a uniform grid,
// accompanied by an index file mapping each icon's stable name to its grid
// cell and pixel origin. Runtimes load one image and one small lookup table
// instead of hundreds of individual files.
//
// # Pipeline
//
// The packing pipeline for one icon set and one icon size:
//
//  1. Grid.Layout computes row count, canvas dimensions, and a row-major
//     placement for every icon index.
//  2. A Renderer rasterizes each icon at the requested size (supersampled
//     and downsampled for quality).
//  3. NormalizeWhite rewrites every non-transparent pixel to pure white,
//     preserving alpha, so atlases can be tinted at display time.
//  4. Assembler composites the normalized tiles onto a transparent canvas
//     at their pre-computed placements.
//  5. WriteIndex emits the mapping file in the same order.
//
// The assembler and the index writer consume the same ordering and the same
// layout. This is the core correctness invariant: for every index entry, the
// atlas pixel region at its placement holds the icon named by that entry.
//
// # Determinism
//
// Layout is a pure function of (count, columns, icon size). Icon ordering is
// fixed by the caller (lexicographic at discovery time) and never re-sorted
// here. Given a deterministic Renderer, repeated runs produce byte-identical
// atlases and index files.
package atlas
