package quickpaste

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// currencyPrefixRe strips currency symbols and codes from the front of a
// numeric token.
var currencyPrefixRe = regexp.MustCompile(`(?i)^(?:[$€£]|usd|eur|gbp)\s*`)

// magnitudeSuffixes maps shorthand magnitude suffixes to multipliers.
var magnitudeSuffixes = map[string]float64{
	"k": 1e3,
	"m": 1e6,
	"b": 1e9,
}

// parseMoney coerces memo-style money text ("$1,250,000.00", "USD 50k",
// "2.5M") to a plain number. A token that fails coercion after stripping is a
// miss, not a zero.
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	s = currencyPrefixRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	mult := 1.0
	lower := strings.ToLower(s)
	for suffix, m := range magnitudeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			mult = m
			s = strings.TrimSpace(s[:len(s)-1])
			break
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v * mult, true
}

// parseNumber coerces a bare numeric token, stripping thousands separators.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
