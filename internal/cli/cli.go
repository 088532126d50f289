// Package cli implements the iconforge command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iconforge/iconforge/pkg/buildinfo"
	"github.com/iconforge/iconforge/pkg/cache"
	"github.com/iconforge/iconforge/pkg/config"
	"github.com/iconforge/iconforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "iconforge"

	// defaultSourceDir is packed when no source directory argument is given.
	defaultSourceDir = "icons"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "iconforge",
		Short:        "Iconforge packs vector icons into texture atlases",
		Long:         `Iconforge rasterizes folders of SVG icons into fixed-grid texture atlases plus plain-text index files, producing identical layouts for the image and the index so game engines can address icons by slot.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.packCommand())
	root.AddCommand(c.sourcesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned cache must be
// closed by the caller once all jobs are done.
func (c *CLI) newRunner(ctx context.Context, cacheCfg config.CacheConfig, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	tileCache, err := newCache(ctx, cacheCfg, noCache)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(tileCache, c.Logger), tileCache, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.CacheRedis {
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/iconforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseSizes parses a comma-separated size list (e.g. "16,32,64").
func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// sourceRoot resolves the positional source directory argument.
func sourceRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultSourceDir
}
