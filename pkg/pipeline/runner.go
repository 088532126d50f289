package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/iconforge/iconforge/pkg/atlas"
	"github.com/iconforge/iconforge/pkg/cache"
	"github.com/iconforge/iconforge/pkg/errors"
	"github.com/iconforge/iconforge/pkg/observability"
	"github.com/iconforge/iconforge/pkg/source"
)

// Runner executes packing jobs against a tile cache.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables tile caching.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Result contains the outputs of packing one category across all sizes.
type Result struct {
	Category string
	Jobs     []JobResult
}

// Failed reports whether any job in the result failed.
func (r Result) Failed() bool {
	for _, j := range r.Jobs {
		if j.Err != nil {
			return true
		}
	}
	return false
}

// JobResult describes one (category, icon size) packing job.
type JobResult struct {
	ID        string // correlates job log lines
	Category  string
	Slug      string
	IconSize  int
	Icons     int
	Rows      int
	AtlasPath string
	IndexPath string
	Warnings  []atlas.Warning
	Duration  time.Duration

	// Err is set when the job failed as a whole. Sibling jobs are
	// unaffected; callers inspect per-job errors instead of aborting.
	Err error
}

// Execute packs one category at every configured icon size.
//
// An empty category is a no-op: nothing is written, no error is returned,
// and the skip is logged as informational. Job failures are recorded on the
// individual JobResult; Execute only returns an error for invalid Options.
func (r *Runner) Execute(ctx context.Context, cat source.Category, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}

	result := Result{Category: cat.Name}

	if len(cat.Icons) == 0 {
		r.logger.Info("no icons discovered, skipping category", "category", cat.Name)
		return result, nil
	}

	for _, size := range opts.Sizes {
		job := r.runJob(ctx, cat, size, opts)
		if job.Err != nil {
			r.logger.Error("job failed", "job", job.ID, "category", cat.Name, "size", size, "err", job.Err)
		}
		result.Jobs = append(result.Jobs, job)
	}

	return result, nil
}

// runJob packs one (category, size) pair to completion: rasterize all icons,
// assemble the canvas, write the atlas, then write the index.
func (r *Runner) runJob(ctx context.Context, cat source.Category, size int, opts Options) (job JobResult) {
	start := time.Now()
	observability.Jobs().OnJobStart(ctx, cat.Name, size)
	defer func() {
		observability.Jobs().OnJobComplete(ctx, cat.Name, size, job.Icons, len(job.Warnings), time.Since(start), job.Err)
	}()

	job = JobResult{
		ID:       uuid.NewString(),
		Category: cat.Name,
		Slug:     cat.Slug,
		IconSize: size,
		Icons:    len(cat.Icons),
	}
	logger := r.logger.With("job", job.ID, "category", cat.Name, "size", size)

	grid := atlas.Grid{Columns: opts.Columns, IconSize: size, Supersample: opts.Supersample}
	renderer := &cachedRenderer{
		base:        opts.Renderer,
		cache:       r.cache,
		supersample: opts.Supersample,
		ttl:         opts.TileTTL,
		logger:      logger,
	}

	assembler := atlas.NewAssembler(renderer, logger, opts.Workers)
	canvas, layout, warnings, err := assembler.Assemble(ctx, cat.Icons, grid)
	if err != nil {
		job.Err = err
		return job
	}
	job.Rows = layout.Rows
	job.Warnings = warnings

	outDir := filepath.Join(opts.OutputRoot, cat.Slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		job.Err = errors.Wrap(errors.ErrCodeWrite, err, "create output directory %s", outDir)
		return job
	}

	atlasPath := filepath.Join(outDir, atlasFileName(grid.Columns, layout.Rows, size))
	if err := writeAtlas(atlasPath, canvas); err != nil {
		job.Err = err
		return job
	}
	job.AtlasPath = atlasPath

	indexPath := filepath.Join(outDir, indexFileName(size))
	if err := writeIndex(indexPath, cat.Icons, grid, layout); err != nil {
		// An atlas without its matching index is not a valid persisted
		// state; the half-written pair is removed and the job fails.
		_ = os.Remove(atlasPath)
		job.AtlasPath = ""
		job.Err = err
		return job
	}
	job.IndexPath = indexPath

	job.Duration = time.Since(start)
	logger.Info("packed atlas",
		"icons", job.Icons,
		"grid", fmt.Sprintf("%dx%d", grid.Columns, layout.Rows),
		"warnings", len(warnings),
		"duration", job.Duration.Round(time.Millisecond))
	return job
}

// atlasFileName encodes columns, rows, and icon size, matching the legacy
// generator's naming so downstream loaders keep working.
func atlasFileName(columns, rows, size int) string {
	return fmt.Sprintf("texture_atlas_%dx%d_%dpx.png", columns, rows, size)
}

// indexFileName matches the legacy generator's mapping file name.
func indexFileName(size int) string {
	return fmt.Sprintf("icon_mapping_%d.txt", size)
}

func writeAtlas(path string, canvas image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "create atlas %s", path)
	}
	if err := png.Encode(f, canvas); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeWrite, err, "encode atlas %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeWrite, err, "close atlas %s", path)
	}
	return nil
}

func writeIndex(path string, icons []atlas.Icon, grid atlas.Grid, layout atlas.Layout) error {
	text, err := atlas.IndexText(icons, grid, layout)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "write index %s", path)
	}
	return nil
}

// cachedRenderer wraps a renderer with the tile cache. Cache trouble is
// never fatal: a failed lookup or store degrades to a plain render.
type cachedRenderer struct {
	base        atlas.Renderer
	cache       cache.Cache
	supersample int
	ttl         time.Duration
	logger      *log.Logger
}

func (c *cachedRenderer) Render(ctx context.Context, content []byte, size int) (*image.NRGBA, error) {
	key := cache.TileKey(content, size, c.supersample)

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if img, err := png.Decode(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, "tile")
			return imaging.Clone(img), nil
		}
		// Corrupt entry: drop it and re-render.
		_ = c.cache.Delete(ctx, key)
	} else if err != nil {
		c.logger.Debug("tile cache lookup failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "tile")

	img, err := c.base.Render(ctx, content, size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err == nil {
		if err := c.cache.Set(ctx, key, buf.Bytes(), c.ttl); err != nil {
			c.logger.Debug("tile cache store failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "tile", buf.Len())
		}
	}
	return img, nil
}
