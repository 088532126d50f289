package atlas

import (
	"context"
	"image"
	"image/draw"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/iconforge/iconforge/pkg/errors"
)

// Icon is one named vector source to be packed. Name is the stable
// identifier correlating the source file, the atlas slot, and the index
// entry. Content is the raw vector markup.
type Icon struct {
	Name    string
	Content []byte
}

// Renderer rasterizes vector content into a size x size NRGBA tile.
// Implementations must keep transparent regions fully transparent and be
// deterministic for identical inputs.
type Renderer interface {
	Render(ctx context.Context, content []byte, size int) (*image.NRGBA, error)
}

// Fallback returns the substitute tile used when a source cannot be
// rendered: a fully opaque white square. Substituting instead of skipping
// keeps index-to-slot alignment intact for the remaining icons.
func Fallback(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

// Warning records a non-fatal per-icon failure during assembly.
type Warning struct {
	Name string // stable identifier of the affected icon
	Err  error  // the rendering error that triggered the fallback
}

// Assembler composites rendered, normalized icon tiles onto atlas canvases.
type Assembler struct {
	renderer Renderer
	logger   *log.Logger
	workers  int
}

// NewAssembler creates an assembler using the given renderer.
// If logger is nil, logging is discarded. If workers < 1, one worker per CPU
// is used.
func NewAssembler(r Renderer, logger *log.Logger, workers int) *Assembler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Assembler{renderer: r, logger: logger, workers: workers}
}

// Assemble rasterizes every icon at grid.IconSize, normalizes it to white,
// and pastes it onto a transparent canvas at its computed placement.
//
// Icons that fail to render degrade to the Fallback tile and are reported in
// the returned warnings; they never abort the batch or shift placements.
//
// Per-icon work runs on a bounded worker pool. Workers write only to their
// icon's pre-computed pixel region; regions never overlap by construction of
// the grid, so the shared canvas needs no locking.
func (a *Assembler) Assemble(ctx context.Context, icons []Icon, grid Grid) (*image.NRGBA, Layout, []Warning, error) {
	layout, err := grid.Layout(len(icons))
	if err != nil {
		return nil, Layout{}, nil, err
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	if len(icons) == 0 {
		return canvas, layout, nil, nil
	}

	var wg sync.WaitGroup

	// Indexed by icon so the reported order follows set order, not worker
	// completion order.
	failures := make([]error, len(icons))

	jobs := make(chan int)
	for w := 0; w < a.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tile := a.tile(ctx, icons[i], grid)
				failures[i] = tile.err

				p := layout.Placements[i]
				rect := image.Rect(p.X, p.Y, p.X+grid.IconSize, p.Y+grid.IconSize)
				draw.Draw(canvas, rect, tile.img, tile.img.Rect.Min, draw.Over)
			}
		}()
	}

feed:
	for i := range icons {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, Layout{}, nil, errors.Wrap(errors.ErrCodeInternal, err, "assembly interrupted")
	}

	var warnings []Warning
	for i, err := range failures {
		if err != nil {
			warnings = append(warnings, Warning{Name: icons[i].Name, Err: err})
		}
	}

	return canvas, layout, warnings, nil
}

type renderedTile struct {
	img *image.NRGBA
	err error
}

// tile renders and normalizes one icon, substituting the fallback square on
// failure.
func (a *Assembler) tile(ctx context.Context, icon Icon, grid Grid) renderedTile {
	img, err := a.renderer.Render(ctx, icon.Content, grid.IconSize)
	if err != nil {
		a.logger.Warn("icon unrenderable, using fallback", "icon", icon.Name, "err", err)
		return renderedTile{
			img: Fallback(grid.IconSize),
			err: errors.Wrap(errors.ErrCodeUnrenderable, err, "render %s", icon.Name),
		}
	}
	return renderedTile{img: NormalizeWhite(img)}
}
