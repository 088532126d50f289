// Package source discovers vector icon sources on the filesystem.
//
// A source tree is either a flat directory of .svg files (one category) or a
// directory of category subdirectories, each holding .svg files. Discovery
// produces one Category per folder with a display name, an output slug, and
// an ordered icon set.
//
// Ordering is fixed here, at discovery time: icons are sorted
// lexicographically by stable identifier and never re-sorted downstream. The
// ordering IS the index assignment, shared by the atlas image and the index
// file, so every consumer of a category must see the identical sequence.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iconforge/iconforge/pkg/atlas"
	"github.com/iconforge/iconforge/pkg/errors"
)

// Category is one discovered icon folder: a display name, the slug used for
// its output directory, and the ordered icon set.
type Category struct {
	Name  string
	Slug  string
	Icons []atlas.Icon
}

// Discover enumerates icon categories under root.
//
// Subdirectories containing .svg files become categories named after the
// subdirectory. If root itself contains .svg files, they form an additional
// category named after root's base name. Categories are returned sorted by
// name; an empty result is not an error (the caller logs and skips).
func Discover(root string) ([]Category, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "read source root %s", root)
	}

	var categories []Category

	rootIcons, err := loadIcons(root)
	if err != nil {
		return nil, err
	}
	if len(rootIcons) > 0 {
		name := filepath.Base(filepath.Clean(root))
		categories = append(categories, Category{Name: name, Slug: Slug(name), Icons: rootIcons})
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		icons, err := loadIcons(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(icons) == 0 {
			continue
		}
		slug := Slug(entry.Name())
		if err := errors.ValidateOutputSlug(slug); err != nil {
			return nil, err
		}
		categories = append(categories, Category{Name: entry.Name(), Slug: slug, Icons: icons})
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// loadIcons reads all .svg files directly inside dir, sorted
// lexicographically by stable identifier (base name, extension stripped).
// Two files mapping to the same identifier are a configuration error.
func loadIcons(dir string) ([]atlas.Icon, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "read icon directory %s", dir)
	}

	var icons []atlas.Icon
	seen := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if err := errors.ValidateIconName(name); err != nil {
			return nil, err
		}
		if prev, ok := seen[name]; ok {
			return nil, errors.New(errors.ErrCodeDuplicateIcon,
				"icon name %q provided by both %s and %s", name, prev, entry.Name())
		}
		seen[name] = entry.Name()

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "read %s", entry.Name())
		}
		icons = append(icons, atlas.Icon{Name: name, Content: content})
	}

	sort.Slice(icons, func(i, j int) bool { return icons[i].Name < icons[j].Name })
	return icons, nil
}

// Slug derives an output-folder slug from a category name: lowercased, with
// spaces and underscores collapsed to single hyphens.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '\t':
			return '-'
		}
		return r
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
