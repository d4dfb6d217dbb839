// Package numutil holds the engine's defensive numeric parsing and the
// display formatting contracts shared by the metric builder and exports.
package numutil

import (
	"math"
	"strconv"
	"strings"
)

// ParseFlexible parses a loosely encoded numeric string. The source emits
// plain numbers, comma-decimal numbers ("3,5") and occasionally
// dot-grouped comma-decimal numbers ("1.234,56"). Malformed input parses
// to 0 rather than erroring: garbage degrades statistics silently so the
// report always renders.
func ParseFlexible(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") {
		// Comma decimal; any dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseFlexiblePtr parses a nullable numeric column. Nil parses to 0.
func ParseFlexiblePtr(s *string) float64 {
	if s == nil {
		return 0
	}
	return ParseFlexible(*s)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage returns part/total*100 rounded to one decimal, or 0 when
// total is zero.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round1(part / total * 100)
}
