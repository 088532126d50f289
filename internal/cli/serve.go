package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr   string // listen address
	output string // atlas output root to serve
}

// serveCommand creates the serve command, a small preview server for packed
// atlases. It lists the generated artifacts as JSON and serves the files
// directly, so atlases can be inspected in a browser without copying them
// around.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [output-dir]",
		Short: "Serve packed atlases over HTTP for preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output = "atlas"
			if len(args) > 0 {
				opts.output = args[0]
			}
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8927", "listen address")

	return cmd
}

// artifactInfo describes one generated file in the listing endpoint.
type artifactInfo struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Size     int64  `json:"size_bytes"`
	URL      string `json:"url"`
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	if _, err := os.Stat(opts.output); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(c.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/atlases", func(w http.ResponseWriter, req *http.Request) {
		artifacts, err := listArtifacts(opts.output)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(artifacts)
	})
	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.output))))

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Serving %s", opts.output)
	printDetail("Listing: http://%s/atlases", opts.addr)
	printDetail("Files:   http://%s/files/", opts.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs each request with method, path, and duration.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}

// listArtifacts walks the output root and collects atlas and index files,
// grouped by category directory.
func listArtifacts(root string) ([]artifactInfo, error) {
	artifacts := []artifactInfo{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := filepath.Ext(d.Name())
		if ext != ".png" && ext != ".txt" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		category := filepath.Dir(rel)
		if category == "." {
			category = ""
		}
		artifacts = append(artifacts, artifactInfo{
			Category: category,
			Name:     d.Name(),
			Size:     info.Size(),
			URL:      "/files/" + strings.ReplaceAll(rel, string(filepath.Separator), "/"),
		})
		return nil
	})
	return artifacts, err
}
