package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconforge/iconforge/pkg/config"
	"github.com/iconforge/iconforge/pkg/errors"
	"github.com/iconforge/iconforge/pkg/pipeline"
	"github.com/iconforge/iconforge/pkg/source"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	configPath  string // config file path (empty probes iconforge.toml)
	output      string // output root directory
	columns     int    // atlas grid width
	sizes       string // comma-separated icon sizes
	supersample int    // render oversampling factor
	workers     int    // render worker count (0 = one per CPU)
	noCache     bool   // disable the tile cache
	interactive bool   // pick a single category interactively
}

// packCommand creates the pack command, the main entry point for building
// atlases from a directory of SVG icons.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [source-dir]",
		Short: "Pack SVG icon folders into texture atlases",
		Long: `Pack rasterizes every icon category under the source directory into one
texture atlas PNG and one index file per configured icon size. Flags override
the corresponding config file values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, sourceRoot(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default probes ./iconforge.toml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output root directory")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "atlas grid width in icons")
	cmd.Flags().StringVar(&opts.sizes, "sizes", "", "icon sizes to pack, comma-separated (e.g. 16,32,64)")
	cmd.Flags().IntVar(&opts.supersample, "supersample", 0, "render oversampling factor")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "render workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered tile cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "select a single category interactively")

	return cmd
}

// runPack loads configuration, discovers categories, and packs each one.
func (c *CLI) runPack(cmd *cobra.Command, root string, opts *packOpts) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	pipeOpts, err := buildPipelineOptions(cmd, cfg, opts)
	if err != nil {
		return err
	}
	pipeOpts.Logger = c.Logger

	categories, err := source.Discover(root)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		printInfo("No icon categories found under %s", root)
		return nil
	}

	if opts.interactive {
		selected, err := selectCategory(categories)
		if err != nil {
			return err
		}
		if selected == nil {
			printInfo("No category selected")
			return nil
		}
		categories = []source.Category{*selected}
	}

	runner, tileCache, err := c.newRunner(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer tileCache.Close()

	prog := newProgress(c.Logger)
	failed := 0
	for _, cat := range categories {
		if err := c.packCategory(ctx, runner, cat, pipeOpts); err != nil {
			failed++
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	prog.done(fmt.Sprintf("Packed %d categories", len(categories)-failed))

	if failed > 0 {
		return errors.New(errors.ErrCodeWrite, "%d of %d categories failed", failed, len(categories))
	}
	printNewline()
	printNextStep("Preview the output", "iconforge serve "+pipeOpts.OutputRoot)
	return nil
}

// packCategory runs one category through the pipeline and prints the results.
func (c *CLI) packCategory(ctx context.Context, runner *pipeline.Runner, cat source.Category, opts pipeline.Options) error {
	printInfo("Packing %s", StyleHighlight.Render(cat.Name))

	spinner := newSpinner(ctx, fmt.Sprintf("rendering %d icons", len(cat.Icons)))
	spinner.Start()
	result, err := runner.Execute(ctx, cat, opts)
	spinner.Stop()
	if err != nil {
		printError("%s: %v", cat.Name, err)
		return err
	}

	for _, job := range result.Jobs {
		if job.Err != nil {
			printError("%s at %dpx: %v", cat.Name, job.IconSize, errors.UserMessage(job.Err))
			continue
		}
		printJobStats(job.Icons, opts.Columns, job.Rows, job.IconSize, len(job.Warnings))
		printFile(job.AtlasPath)
		printFile(job.IndexPath)
		for _, w := range job.Warnings {
			printWarning("%s could not be rendered, packed a blank tile", w.Name)
		}
	}

	if result.Failed() {
		return errors.New(errors.ErrCodeWrite, "category %s had failing jobs", cat.Name)
	}
	return nil
}

// buildPipelineOptions layers changed flags over the loaded config.
func buildPipelineOptions(cmd *cobra.Command, cfg config.Config, opts *packOpts) (pipeline.Options, error) {
	out := pipeline.Options{
		Columns:     cfg.Columns,
		Sizes:       cfg.Sizes,
		Supersample: cfg.Supersample,
		OutputRoot:  cfg.Output,
		Workers:     cfg.Workers,
	}

	if cmd.Flags().Changed("columns") {
		out.Columns = opts.columns
	}
	if cmd.Flags().Changed("supersample") {
		out.Supersample = opts.supersample
	}
	if cmd.Flags().Changed("workers") {
		out.Workers = opts.workers
	}
	if opts.output != "" {
		out.OutputRoot = opts.output
	}
	if opts.sizes != "" {
		sizes, err := parseSizes(opts.sizes)
		if err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse --sizes %q", opts.sizes)
		}
		out.Sizes = sizes
	}

	return out, nil
}
