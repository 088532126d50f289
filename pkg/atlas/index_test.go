package atlas

import (
	"strings"
	"testing"

	"github.com/iconforge/iconforge/pkg/errors"
)

func TestWriteIndex(t *testing.T) {
	grid := Grid{Columns: 20, IconSize: 64, Supersample: 1}
	icons := []Icon{
		{Name: "arrow-up"},
		{Name: "arrow-down"},
		{Name: "zoom-out"},
	}
	layout, err := grid.Layout(len(icons))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	text, err := IndexText(icons, grid, layout)
	if err != nil {
		t.Fatalf("IndexText() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 4+len(icons) {
		t.Fatalf("got %d lines, want %d (4 header + %d records)", len(lines), 4+len(icons), len(icons))
	}

	wantHeader := []string{
		"Texture Atlas Icon Mapping (20x1)",
		"Icon size: 64x64 pixels",
		"Atlas size: 1280x64 pixels",
		strings.Repeat("-", 50),
	}
	for i, want := range wantHeader {
		if lines[i] != want {
			t.Errorf("header line %d = %q, want %q", i, lines[i], want)
		}
	}

	wantRecords := []string{
		"Index   0: arrow-up                       | Grid: ( 0, 0) | Pixel: (   0,   0)",
		"Index   1: arrow-down                     | Grid: ( 1, 0) | Pixel: (  64,   0)",
		"Index   2: zoom-out                       | Grid: ( 2, 0) | Pixel: ( 128,   0)",
	}
	for i, want := range wantRecords {
		if lines[4+i] != want {
			t.Errorf("record %d = %q, want %q", i, lines[4+i], want)
		}
	}
}

func TestWriteIndexMultiRow(t *testing.T) {
	grid := Grid{Columns: 2, IconSize: 16, Supersample: 1}
	icons := []Icon{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	layout, err := grid.Layout(len(icons))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	text, err := IndexText(icons, grid, layout)
	if err != nil {
		t.Fatalf("IndexText() error = %v", err)
	}

	if !strings.Contains(text, "Index   2: c                              | Grid: ( 0, 1) | Pixel: (   0,  16)") {
		t.Errorf("third record misplaced:\n%s", text)
	}
}

func TestWriteIndexDeterministic(t *testing.T) {
	grid := Grid{Columns: 5, IconSize: 32, Supersample: 2}
	icons := testIcons(12)
	layout, err := grid.Layout(len(icons))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	a, err := IndexText(icons, grid, layout)
	if err != nil {
		t.Fatalf("IndexText() error = %v", err)
	}
	b, err := IndexText(icons, grid, layout)
	if err != nil {
		t.Fatalf("IndexText() error = %v", err)
	}
	if a != b {
		t.Error("identical inputs produced different index text")
	}
}

func TestWriteIndexCountMismatch(t *testing.T) {
	grid := Grid{Columns: 5, IconSize: 32, Supersample: 1}
	layout, err := grid.Layout(3)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	_, err = IndexText([]Icon{{Name: "only-one"}}, grid, layout)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}
