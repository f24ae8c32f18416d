// Package utils provides small helpers for parsing query-string values.
// They are independent of domain or business logic.
package utils

import (
	"math"
	"strconv"
	"strings"
)

// AtoiDefault converts s to an int, returning def when s is empty or not an
// integer.
//
//	n := utils.AtoiDefault("42", 0) // 42
//	n = utils.AtoiDefault("x", 5)   // 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParseFloat parses a finite float. The second result is false for empty,
// malformed, NaN or infinite input.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
