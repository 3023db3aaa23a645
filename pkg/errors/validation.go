package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateColumns checks that ncol is a usable column count.
func ValidateColumns(ncol int) error {
	if ncol <= 0 {
		return New(ErrCodeInvalidColumns, "column count must be positive, got %d", ncol)
	}
	return nil
}

// ValidateSameLength checks that two parallel sequences have equal length.
// The names are used in the message only.
func ValidateSameLength(aName string, a int, bName string, b int) error {
	if a != b {
		return New(ErrCodeLengthMismatch, "%s and %s must have the same length (%d != %d)", aName, bName, a, b)
	}
	return nil
}

// ValidateFraction checks that v is a finite value in [0, 1].
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "%s must be within [0, 1], got %g", name, v)
	}
	return nil
}

// MaxDPI is the highest raster resolution accepted for rendering.
const MaxDPI = 1200

// ValidateDPI checks that dpi is a finite resolution in (0, MaxDPI].
func ValidateDPI(dpi float64) error {
	if math.IsNaN(dpi) || math.IsInf(dpi, 0) || dpi <= 0 || dpi > MaxDPI {
		return New(ErrCodeInvalidInput, "dpi must be within (0, %d], got %g", MaxDPI, dpi)
	}
	return nil
}

// ValidateOutputName validates a base name used to derive output files.
// It rejects names that could be used for path traversal.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "name contains invalid characters: %q", name)
	}
	return nil
}
