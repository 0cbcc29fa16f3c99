package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Output formats understood by the render pipeline.
var Formats = []string{"svg", "png", "pdf", "json", "dot"}

// ValidateCategory parses a category name supplied by the user. The empty
// string means "no filter" and is accepted.
func ValidateCategory(name string) (graph.Category, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	c, err := graph.ParseCategory(name)
	if err != nil {
		return "", Wrap(ErrCodeInvalidCategory, err, "unknown category %q (want one of %s)", name, categoryList())
	}
	return c, nil
}

func categoryList() string {
	var names []string
	for _, c := range graph.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// ValidateFormats checks a list of output format names. Duplicates are
// rejected and the list must not be empty.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format given")
	}
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if !isFormat(f) {
			return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", f, strings.Join(Formats, ", "))
		}
		if seen[f] {
			return New(ErrCodeInvalidFormat, "format %q given twice", f)
		}
		seen[f] = true
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// ValidateTheme accepts "auto", "dark" and "light".
func ValidateTheme(theme string) error {
	switch theme {
	case "auto", "dark", "light":
		return nil
	}
	return New(ErrCodeInvalidTheme, "unknown theme %q (want auto, dark or light)", theme)
}

// maxViewport bounds headless render sizes.
const maxViewport = 16384

// ValidateViewport checks a headless render size.
func ValidateViewport(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || width <= 0 || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport must be positive, got %gx%g", width, height)
	}
	if width > maxViewport || height > maxViewport {
		return New(ErrCodeInvalidViewport, "viewport too large (max %dx%d)", maxViewport, maxViewport)
	}
	return nil
}

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateRedisURL validates a Redis connection URL.
// It ensures the URL has a redis:// or rediss:// scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "redis URL must use redis or rediss scheme")
	}
	return nil
}
