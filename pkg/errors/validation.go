package errors

import (
	"strings"
	"unicode"
)

// ValidateIconName validates an icon's stable identifier.
// The identifier is derived from a source file's base name and is used in
// atlas index files and generated lookup tables, so it must be a simple,
// portable token.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateIconName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSource, "icon name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidSource, "icon name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "icon name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidSource, "icon name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputSlug validates a category output-folder slug.
// Slugs become directory names under the output root, so they must be simple
// basenames without path components or hidden-file prefixes.
func ValidateOutputSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSource, "output slug cannot be empty")
	}

	if strings.ContainsAny(slug, "/\\") {
		return New(ErrCodeInvalidSource, "output slug cannot contain path separators")
	}

	if strings.HasPrefix(slug, ".") {
		return New(ErrCodeInvalidSource, "output slug cannot be a hidden directory")
	}

	for _, r := range slug {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSource, "output slug contains invalid characters")
		}
	}

	return nil
}
