package address

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/meridian/fund-console/internal/types"
)

// The regex tier segments a US/CA-style postal address without any network
// dependency. Succeeding here always implies review: the grammar cannot
// verify the address exists, only that it segments.

var (
	// cityStateZipRe matches "City, ST 12345" or "City, ST 12345-6789".
	cityStateZipRe = regexp.MustCompile(`(?m)([\w][\w .'\-]+),\s*([A-Z]{2}),?\s+(\d{5}(?:-\d{4})?)`)

	// streetLineRe matches a segment starting with a street number.
	streetLineRe = regexp.MustCompile(`^\d+\s+\S+`)

	// embeddedStreetRe extracts a street address buried in prose
	// ("offices at 500 Market Street").
	embeddedStreetRe = regexp.MustCompile(`(\d+\s+[\w][\w\s]*(?:Street|St|Avenue|Ave|Boulevard|Blvd|Drive|Dr|Road|Rd|Lane|Ln|Way|Place|Pl|Court|Ct|Circle|Cir|Parkway|Pkwy|Highway|Hwy|Suite|Ste)\.?)`)

	countryTailRe = regexp.MustCompile(`(?i)\b(usa|united states|canada|us)\b\s*\.?\s*$`)
)

type regexSource struct{}

func (r *regexSource) Name() string { return "regex" }

// TryNormalize segments the text into number/street, city, state, zip and an
// optional trailing country. Failing to find a city/state/zip anchor is a
// tier failure so the chain can move to the fallback.
func (r *regexSource) TryNormalize(_ context.Context, raw string) (*types.AddressNormalizationResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty address text")
	}

	m := cityStateZipRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return nil, fmt.Errorf("no city/state/zip anchor in text")
	}

	city := strings.TrimSpace(raw[m[2]:m[3]])
	state := raw[m[4]:m[5]]
	zip := raw[m[6]:m[7]]
	if !isKnownState(state) {
		return nil, fmt.Errorf("unknown state code %q", state)
	}

	// Street: search the text before the anchor, last segment first.
	line1 := ""
	preceding := strings.TrimRight(strings.TrimSpace(raw[:m[0]]), ",")
	segments := splitSegments(preceding)
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if streetLineRe.MatchString(seg) {
			line1 = seg
			// Pull in a leading suite/unit continuation if the previous
			// segment is also street-like.
			if i > 0 && streetLineRe.MatchString(segments[i-1]) {
				line1 = segments[i-1] + ", " + seg
			}
			break
		}
		if em := embeddedStreetRe.FindString(seg); em != "" && line1 == "" {
			line1 = em
		}
	}

	country := ""
	tail := raw[m[1]:]
	if cm := countryTailRe.FindStringSubmatch(tail); cm != nil {
		country = canonicalCountry(cm[1])
	}

	return &types.AddressNormalizationResult{
		Method:      types.AddressMethodRegex,
		NeedsReview: true,
		Fields: types.AddressFields{
			Line1:   line1,
			City:    city,
			State:   state,
			Zip:     zip,
			Country: country,
		},
	}, nil
}

// splitSegments breaks the pre-anchor text on commas and newlines.
func splitSegments(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func canonicalCountry(s string) string {
	switch strings.ToLower(s) {
	case "usa", "us", "united states":
		return "United States"
	case "canada":
		return "Canada"
	}
	return s
}
