// Package pkg provides the core libraries for iconforge atlas packing.
//
// # Overview
//
// Iconforge turns folders of SVG icons into fixed-grid texture atlases plus
// plain-text index files. The pkg directory is organized into a handful of
// focused packages:
//
//  1. [atlas] - Grid layout, color normalization, canvas assembly, index text
//  2. [raster] - Supersampled SVG rasterization
//  3. [source] - Filesystem discovery of icon categories
//  4. [pipeline] - Orchestration (discover → rasterize → assemble → persist)
//  5. [cache] - Tile cache backends (file, Redis, null)
//  6. [config] - TOML configuration loading
//
// # Architecture
//
// The typical data flow through iconforge:
//
//	SVG icon folders
//	         ↓
//	    [source] package (discover categories, fix icon ordering)
//	         ↓
//	    [raster] package (supersampled rasterization)
//	         ↓
//	    [atlas] package (white normalization, grid assembly, index text)
//	         ↓
//	    atlas PNG + index file per (category, size)
//
// # Quick Start
//
// Pack a category programmatically:
//
//	import (
//	    "context"
//	    "github.com/iconforge/iconforge/pkg/cache"
//	    "github.com/iconforge/iconforge/pkg/pipeline"
//	    "github.com/iconforge/iconforge/pkg/source"
//	)
//
//	categories, _ := source.Discover("icons")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
//	for _, cat := range categories {
//	    result, _ := runner.Execute(context.Background(), cat, pipeline.Options{
//	        Columns:     20,
//	        Sizes:       []int{16, 32, 64},
//	        Supersample: 4,
//	        OutputRoot:  "atlas",
//	    })
//	    _ = result
//	}
//
// # Main Packages
//
// [atlas] - Deterministic grid placement (row-major, fixed column count),
// white+alpha color normalization, concurrent tile assembly with per-icon
// fallback, and the index file format shared with the atlas image.
//
// [raster] - SVG rasterization via oksvg/rasterx with Lanczos downsampling
// from a supersampled canvas.
//
// [source] - Category discovery. Icon ordering is fixed at discovery time and
// is the index assignment used by both the atlas and the index file.
//
// [pipeline] - One job per (category, icon size). Jobs are isolated; a single
// unrenderable icon degrades to a blank tile with a warning.
//
// [cache] - Rendered tile caching keyed by content hash, size, and
// supersample factor. File backend for the CLI, Redis for shared fleets.
//
// [config] - TOML config file loading with validation.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Optional job and cache hooks for instrumentation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/atlas/...    # Specific package
//
// [atlas]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/atlas
// [raster]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/raster
// [source]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/cache
// [config]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/config
// [errors]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/iconforge/iconforge/pkg/observability
package pkg
