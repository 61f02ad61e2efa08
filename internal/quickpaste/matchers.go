package quickpaste

import (
	"regexp"
	"strings"

	"github.com/meridian/fund-console/internal/types"
)

// Labeled-value patterns. Memos vary between "Investment Amount: $50,000",
// "Amount Invested - $50k" and prose like "we are investing $50,000", so each
// field carries several matchers tried in priority order.
var (
	investmentAmountRe = regexp.MustCompile(`(?i)(?:investment amount|amount invested|check size)\s*[:\-]\s*(.+)`)
	investingProseRe   = regexp.MustCompile(`(?i)invest(?:ing|ed|ment of)?\s+((?:[$€£]|usd\s*)[\d,.]+\s*[kmb]?)`)

	roundSizeRe   = regexp.MustCompile(`(?i)(?:round size|total round|raising|round of)\s*[:\-]?\s*((?:[$€£]|usd\s*)?[\d,.]+\s*[kmb]?)`)
	capLabelRe    = regexp.MustCompile(`(?i)(?:valuation cap|conversion cap|post[- ]money cap|\bcap\b)\s*[:\-]?\s*((?:[$€£]|usd\s*)?[\d,.]+\s*[kmb]?)`)
	discountRe    = regexp.MustCompile(`(?i)discount\s*(?:rate|percent(?:age)?)?\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*%?`)
	proRataYesRe  = regexp.MustCompile(`(?i)pro[- ]?rata(?:\s+rights)?\s*[:\-]?\s*(yes|no|y|n)\b`)
	proRataProse  = regexp.MustCompile(`(?i)\b(with|includes?|has)\s+pro[- ]?rata(?:\s+rights)?\b`)
	proRataNegRe  = regexp.MustCompile(`(?i)\b(no|without|waived)\s+pro[- ]?rata(?:\s+rights)?\b`)
	completedOnRe = regexp.MustCompile(`(?i)(?:completed|closed|signed|executed)\s+on\s+(.+)`)
	dateLabelRe   = regexp.MustCompile(`(?i)(?:investment date|close date|date)\s*[:\-]\s*(.+)`)

	descriptionRe = regexp.MustCompile(`(?i)^(?:description|about|overview|what they do)\s*[:\-]\s*(.+)`)
	rationaleRe   = regexp.MustCompile(`(?i)^(?:investment rationale|rationale|investment thesis|thesis|why we invested)\s*[:\-]\s*(.+)`)

	countryLabelRe = regexp.MustCompile(`(?i)^country(?:\s+of\s+incorporation)?\s*[:\-]\s*(.+)`)
)

// memoFields returns the attempted field set for the investment-memo variant.
func memoFields() []fieldSpec {
	return []fieldSpec{
		{types.FieldInvestmentAmount, []matcher{
			labeledMoney(investmentAmountRe),
			wholeTextMoney(investingProseRe),
		}},
		{types.FieldInstrument, []matcher{matchInstrument}},
		{types.FieldRoundSize, []matcher{wholeTextMoney(roundSizeRe)}},
		{types.FieldConversionCap, []matcher{wholeTextMoney(capLabelRe)}},
		{types.FieldDiscountPercent, []matcher{matchDiscount}},
		{types.FieldProRata, []matcher{matchProRata}},
		{types.FieldInvestmentDate, []matcher{
			labeledDate(completedOnRe),
			labeledDate(dateLabelRe),
		}},
		{types.FieldDescription, []matcher{labeledBlock(descriptionRe)}},
		{types.FieldInvestmentRationale, []matcher{labeledBlock(rationaleRe)}},
	}
}

// diligenceFields returns the scalar field set for the diligence variant.
// Founders and HQ fields run through dedicated extractors in the engine.
func diligenceFields() []fieldSpec {
	return []fieldSpec{
		{types.FieldCountry, []matcher{labeledLine(countryLabelRe), matchCountryKeyword}},
		{types.FieldIncorporationType, []matcher{matchIncorporation}},
		{types.FieldDescription, []matcher{labeledBlock(descriptionRe)}},
	}
}

// labeledMoney matches a label on any line and coerces the remainder to a
// number. Coercion failure is a matcher miss, never a zero.
func labeledMoney(re *regexp.Regexp) matcher {
	return func(d *document) (any, bool) {
		for _, line := range d.lines {
			if m := re.FindStringSubmatch(line); m != nil {
				if v, ok := parseMoney(m[1]); ok {
					return v, true
				}
			}
		}
		return nil, false
	}
}

// wholeTextMoney matches against the full raw text, for amounts embedded in
// prose rather than sitting on a labeled line.
func wholeTextMoney(re *regexp.Regexp) matcher {
	return func(d *document) (any, bool) {
		if m := re.FindStringSubmatch(d.raw); m != nil {
			if v, ok := parseMoney(m[1]); ok {
				return v, true
			}
		}
		return nil, false
	}
}

func matchDiscount(d *document) (any, bool) {
	if m := discountRe.FindStringSubmatch(d.raw); m != nil {
		if v, ok := parseNumber(m[1]); ok && v >= 0 && v <= 100 {
			return v, true
		}
	}
	return nil, false
}

// matchProRata requires explicit Yes/No phrasing. Absence of the phrase is a
// parse failure, not false.
func matchProRata(d *document) (any, bool) {
	if m := proRataYesRe.FindStringSubmatch(d.raw); m != nil {
		v := strings.ToLower(m[1])
		return v == "yes" || v == "y", true
	}
	if proRataNegRe.MatchString(d.raw) {
		return false, true
	}
	if proRataProse.MatchString(d.raw) {
		return true, true
	}
	return nil, false
}

func labeledDate(re *regexp.Regexp) matcher {
	return func(d *document) (any, bool) {
		for _, line := range d.lines {
			if m := re.FindStringSubmatch(line); m != nil {
				if iso, ok := normalizeDate(m[1]); ok {
					return iso, true
				}
			}
		}
		return nil, false
	}
}

// labeledLine captures a labeled single-line value verbatim.
func labeledLine(re *regexp.Regexp) matcher {
	return func(d *document) (any, bool) {
		for _, line := range d.lines {
			if m := re.FindStringSubmatch(line); m != nil {
				v := strings.TrimSpace(m[1])
				if v != "" {
					return v, true
				}
			}
		}
		return nil, false
	}
}

// labeledBlock captures a labeled value plus immediately following prose
// lines, stopping at the next labeled line.
func labeledBlock(re *regexp.Regexp) matcher {
	return func(d *document) (any, bool) {
		for i, line := range d.lines {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			parts := []string{strings.TrimSpace(m[1])}
			for j := i + 1; j < len(d.lines); j++ {
				if looksLikeLabel(d.lines[j]) {
					break
				}
				parts = append(parts, d.lines[j])
			}
			v := strings.TrimSpace(strings.Join(parts, " "))
			if v != "" {
				return v, true
			}
		}
		return nil, false
	}
}

var labelLineRe = regexp.MustCompile(`^[A-Za-z][A-Za-z /()-]{1,40}\s*[:\-]\s`)

func looksLikeLabel(line string) bool {
	return labelLineRe.MatchString(line + " ")
}

// instrumentVocab maps keyword sets to enum values, checked in order: the
// more specific phrasings first. Unmatched text is a parse failure rather
// than a guessed default.
var instrumentVocab = []struct {
	value    string
	keywords []string
}{
	{types.InstrumentSafePre, []string{"pre-money safe", "pre money safe", "safe (pre", "safe, pre"}},
	{types.InstrumentSafePost, []string{"post-money safe", "post money safe", "safe (post", "safe, post"}},
	{types.InstrumentConvertibleNote, []string{"convertible note", "conv note", "convertible debt", "promissory note"}},
	{types.InstrumentPricedEquity, []string{"priced equity", "priced round", "equity round", "series seed", "series a", "preferred stock"}},
	// Bare "SAFE" defaults to the post-money form, the standard instrument
	// since 2018.
	{types.InstrumentSafePost, []string{"safe"}},
}

func matchInstrument(d *document) (any, bool) {
	for _, entry := range instrumentVocab {
		for _, kw := range entry.keywords {
			if containsKeyword(d.lower, kw) {
				return entry.value, true
			}
		}
	}
	return nil, false
}

var incorporationVocab = []struct {
	value    string
	keywords []string
}{
	{types.IncorporationCCorp, []string{"c-corp", "c corp", "c corporation", "delaware corporation"}},
	{types.IncorporationSCorp, []string{"s-corp", "s corp", "s corporation"}},
	{types.IncorporationLLC, []string{"llc", "limited liability company"}},
	{types.IncorporationLtd, []string{"ltd", "limited company", "pte ltd", "gmbh"}},
}

func matchIncorporation(d *document) (any, bool) {
	for _, entry := range incorporationVocab {
		for _, kw := range entry.keywords {
			if containsKeyword(d.lower, kw) {
				return entry.value, true
			}
		}
	}
	return nil, false
}

// commonCountries is the keyword fallback when no Country: label exists.
var commonCountries = []string{
	"united states", "usa", "canada", "united kingdom", "uk", "germany", "france",
	"india", "singapore", "israel", "australia", "brazil", "mexico", "japan",
}

var countryCanonical = map[string]string{
	"usa": "United States",
	"uk":  "United Kingdom",
}

func matchCountryKeyword(d *document) (any, bool) {
	for _, c := range commonCountries {
		if containsKeyword(d.lower, c) {
			if canon, ok := countryCanonical[c]; ok {
				return canon, true
			}
			return titleCase(c), true
		}
	}
	return nil, false
}

// containsKeyword reports whether text contains kw bounded by non-alphanumeric
// characters, so "safe" does not match inside "unsafe".
func containsKeyword(text, kw string) bool {
	start := 0
	for {
		idx := strings.Index(text[start:], kw)
		if idx < 0 {
			return false
		}
		abs := start + idx
		end := abs + len(kw)
		leftOK := abs == 0 || !isAlphaNum(text[abs-1])
		rightOK := end == len(text) || !isAlphaNum(text[end])
		if leftOK && rightOK {
			return true
		}
		start = abs + 1
	}
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
