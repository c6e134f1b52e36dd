package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCanvasSide bounds the width and height of a drawing surface in pixels.
const MaxCanvasSide = 16384

// ValidateDimensions checks that a canvas size is positive, finite and
// within [MaxCanvasSide].
func ValidateDimensions(width, height float64) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return New(ErrCodeInvalidInput, "%s must be a finite number", v.name)
		}
		if v.val <= 0 {
			return New(ErrCodeInvalidInput, "%s must be positive, got %g", v.name, v.val)
		}
		if v.val > MaxCanvasSide {
			return New(ErrCodeInvalidInput, "%s too large (max %d pixels)", v.name, MaxCanvasSide)
		}
	}
	return nil
}

// ValidateFormats checks that every requested output format is in valid.
func ValidateFormats(formats []string, valid []string) error {
	for _, f := range formats {
		if !slices.Contains(valid, f) {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(valid, ", "))
		}
	}
	return nil
}

// ValidateLabel rejects node labels that cannot be shown in a tooltip:
// labels containing control characters or exceeding 256 characters.
func ValidateLabel(label string) error {
	if utf8.RuneCountInString(label) > 256 {
		return New(ErrCodeInvalidDataset, "label too long (max 256 characters)")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output or input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
