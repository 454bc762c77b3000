// Package vitals normalizes raw, loosely-typed vital-sign fields into
// strict numeric values. Nothing here decides what a value means
// clinically; that is the scoring package's job. A field that fails
// normalization is reported with an explicit ok=false, never silently
// coerced to zero.
package vitals

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// numberPattern accepts an optional sign, digits, and an optional
	// decimal fraction. Scientific notation and embedded whitespace are
	// rejected on purpose: the upstream feed uses them only in garbage rows.
	numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

	// bpPattern accepts exactly "<sys>/<dia>" with non-negative integer
	// parts and optional spaces around the slash.
	bpPattern = regexp.MustCompile(`^([0-9]+)\s*/\s*([0-9]+)$`)
)

// Number parses a raw field into a finite float64. It accepts JSON
// numbers and numeric strings (outer whitespace trimmed); anything else
// — null, blank, booleans, scientific notation, non-numeric text —
// returns ok=false.
func Number(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if !numberPattern.MatchString(s) {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// BloodPressure parses a raw field into a systolic/diastolic pair.
// Only strings of the exact shape "<integer>/<integer>" qualify;
// missing slashes, decimal parts, signs, or any extra characters
// (outer whitespace included) return ok=false.
func BloodPressure(raw interface{}) (sys, dia int, ok bool) {
	s, isStr := raw.(string)
	if !isStr {
		return 0, 0, false
	}

	m := bpPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	sys, err1 := strconv.Atoi(m[1])
	dia, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return sys, dia, true
}
