package pipeline

import (
	"reflect"
	"testing"

	"github.com/iconforge/iconforge/pkg/errors"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Columns != DefaultColumns {
		t.Errorf("Columns = %d, want %d", opts.Columns, DefaultColumns)
	}
	if !reflect.DeepEqual(opts.Sizes, DefaultSizes) {
		t.Errorf("Sizes = %v, want %v", opts.Sizes, DefaultSizes)
	}
	if opts.Supersample != DefaultSupersample {
		t.Errorf("Supersample = %d, want %d", opts.Supersample, DefaultSupersample)
	}
	if opts.OutputRoot != DefaultOutputRoot {
		t.Errorf("OutputRoot = %q, want %q", opts.OutputRoot, DefaultOutputRoot)
	}
	if opts.TileTTL != DefaultTileTTL {
		t.Errorf("TileTTL = %v, want %v", opts.TileTTL, DefaultTileTTL)
	}
	if opts.Logger == nil || opts.Renderer == nil {
		t.Error("Logger and Renderer must be defaulted")
	}
}

func TestOptionsIdempotent(t *testing.T) {
	opts := Options{Columns: 7}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	renderer := opts.Renderer

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Renderer != renderer {
		t.Error("second validation replaced the renderer")
	}
	if opts.Columns != 7 {
		t.Errorf("Columns = %d, want 7", opts.Columns)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative columns", Options{Columns: -1}},
		{"negative supersample", Options{Supersample: -2}},
		{"zero size entry", Options{Sizes: []int{16, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestFileNames(t *testing.T) {
	if got := atlasFileName(20, 16, 64); got != "texture_atlas_20x16_64px.png" {
		t.Errorf("atlasFileName = %q", got)
	}
	if got := indexFileName(32); got != "icon_mapping_32.txt" {
		t.Errorf("indexFileName = %q", got)
	}
}
