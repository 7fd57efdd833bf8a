package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateRange checks that v is a finite number in [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidRange, "%s must be a finite number", name)
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidRange, "%s must be within [%g, %g], got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateIntRange checks that v is in [lo, hi].
func ValidateIntRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidRange, "%s must be within [%d, %d], got %d", name, lo, hi, v)
	}
	return nil
}

// ValidateSpan checks a min/max pair: both ends within [lo, hi] and min <= max.
// Equal ends are allowed and collapse the span to a single value.
func ValidateSpan(name string, minV, maxV, lo, hi float64) error {
	if err := ValidateRange(name+" min", minV, lo, hi); err != nil {
		return err
	}
	if err := ValidateRange(name+" max", maxV, lo, hi); err != nil {
		return err
	}
	if minV > maxV {
		return New(ErrCodeInvalidRange, "%s min (%g) exceeds max (%g)", name, minV, maxV)
	}
	return nil
}

// ValidateLabel checks free text drawn onto the poster.
//
// Rules:
//   - Maximum length of 200 characters
//   - No control characters (newlines included; labels are single-line)
func ValidateLabel(name, s string) error {
	const maxLabelLength = 200
	if len([]rune(s)) > maxLabelLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", name, maxLabelLength)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidInput, "%s contains control characters", name)
	}
	return nil
}
