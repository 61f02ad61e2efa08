package quickpaste

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order against the cleaned date text. Memos use
// everything from "January 5, 2025" to "01/05/2025"; anything that matches
// none of these is a parse failure, not a guess.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2006", // month-only memos resolve to the 1st
}

var trailingClauseRe = regexp.MustCompile(`[.;].*$`)

// normalizeDate coerces memo date text to an ISO YYYY-MM-DD calendar date.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = trailingClauseRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.TrimSuffix(s, ","))
	if s == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
