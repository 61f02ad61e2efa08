// Package quickpaste extracts structured investment and founder data from
// free text pasted by an admin user (AngelList memos, diligence notes).
//
// Each target field has an ordered list of matchers; the first matcher that
// yields a plausible value wins. Fields where every matcher misses are
// recorded as parse failures, never guessed. The engine never returns an
// error for malformed input: catastrophic input produces a result with every
// attempted field marked failed.
package quickpaste

import (
	"context"
	"regexp"
	"strings"

	"github.com/meridian/fund-console/internal/address"
	"github.com/meridian/fund-console/internal/metrics"
	"github.com/meridian/fund-console/internal/types"
)

// document is the tokenized form of a pasted blob. Source text is copied out
// of heterogeneous documents, so line breaks and whitespace are unreliable;
// matchers work over trimmed logical lines plus the raw and lowercased text.
type document struct {
	raw   string
	lower string
	lines []string
}

var collapseSpaceRe = regexp.MustCompile(`[ \t]+`)

// newDocument tokenizes pasted text. Returns nil for empty input.
func newDocument(text string) *document {
	if looksLikeHTML(text) {
		text = flattenHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = collapseSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}

	return &document{
		raw:   text,
		lower: strings.ToLower(text),
		lines: lines,
	}
}

// matcher attempts to extract one field's value from a document. Matchers are
// pure: same document, same answer.
type matcher func(d *document) (any, bool)

// fieldSpec binds a field to its priority-ordered matchers.
type fieldSpec struct {
	field    types.FieldName
	matchers []matcher
}

// runField applies a field's matchers in order, recording the outcome.
func runField(d *document, spec fieldSpec, res *types.ExtractionResult) {
	for _, m := range spec.matchers {
		if v, ok := m(d); ok {
			res.RecordSuccess(spec.field, v)
			return
		}
	}
	res.RecordFailure(spec.field)
}

// Engine parses pasted blobs. The zero value is not usable; construct with
// New. The address normalizer is only consulted by the diligence variant.
type Engine struct {
	addr *address.Normalizer
}

// New creates an extraction engine. addr may be nil, in which case HQ address
// fields degrade to the engine's own line matchers.
func New(addr *address.Normalizer) *Engine {
	return &Engine{addr: addr}
}

// Parse extracts investment-memo fields from pasted text. It is synchronous,
// never panics, and always returns a result; empty or unusable input yields a
// result with every memo field in Failed.
func (e *Engine) Parse(text string) *types.ExtractionResult {
	metrics.PasteEvents.WithLabelValues("memo").Inc()
	res := types.NewExtractionResult()
	d := newDocument(text)
	if d == nil {
		for _, spec := range memoFields() {
			res.RecordFailure(spec.field)
		}
		countOutcomes(res)
		return res
	}

	for _, spec := range memoFields() {
		runField(d, spec, res)
	}
	countOutcomes(res)
	return res
}

// countOutcomes records per-field extraction counters.
func countOutcomes(res *types.ExtractionResult) {
	for _, f := range res.Parsed {
		metrics.FieldsParsed.WithLabelValues(string(f), "parsed").Inc()
	}
	for _, f := range res.Failed {
		metrics.FieldsParsed.WithLabelValues(string(f), "failed").Inc()
	}
}

// ParseDiligence extracts founder and company-formation fields from a
// diligence blob. It may call the external geocoding service to normalize the
// HQ address, which is why this variant takes a context. Malformed input is
// still not an error; the only error returned is context cancellation.
func (e *Engine) ParseDiligence(ctx context.Context, text string) (*types.ExtractionResult, error) {
	metrics.PasteEvents.WithLabelValues("diligence").Inc()
	res := types.NewExtractionResult()
	d := newDocument(text)
	if d == nil {
		for _, spec := range diligenceFields() {
			res.RecordFailure(spec.field)
		}
		res.RecordFailure(types.FieldFounders)
		for _, f := range hqFields {
			res.RecordFailure(f)
		}
		countOutcomes(res)
		return res, nil
	}

	for _, spec := range diligenceFields() {
		runField(d, spec, res)
	}

	founders := extractFounders(d)
	if len(founders) > 0 {
		res.RecordSuccess(types.FieldFounders, founders)
	} else {
		res.RecordFailure(types.FieldFounders)
	}

	if err := e.extractHQ(ctx, d, res); err != nil {
		return nil, err
	}
	countOutcomes(res)
	return res, nil
}

var hqFields = []types.FieldName{
	types.FieldHQLine1, types.FieldHQCity, types.FieldHQState,
	types.FieldHQZip, types.FieldHQCountry,
}

var hqLabelRe = regexp.MustCompile(`(?i)(?:hq|headquarters|address|located at|principal office)[:\s]+(.+)`)

// extractHQ finds the raw HQ address text and runs it through the
// normalization chain, mapping the structured parts onto the HQ fields.
func (e *Engine) extractHQ(ctx context.Context, d *document, res *types.ExtractionResult) error {
	raw := ""
	for i, line := range d.lines {
		if m := hqLabelRe.FindStringSubmatch(line); m != nil {
			raw = strings.TrimSpace(m[1])
			// Street addresses often continue onto the next line or two.
			for j := i + 1; j < len(d.lines) && j <= i+2; j++ {
				if looksLikeAddressContinuation(d.lines[j]) {
					raw += ", " + d.lines[j]
				} else {
					break
				}
			}
			break
		}
	}
	if raw == "" {
		for _, f := range hqFields {
			res.RecordFailure(f)
		}
		return nil
	}

	var norm types.AddressNormalizationResult
	if e.addr != nil {
		norm = e.addr.Normalize(ctx, raw)
	} else {
		norm = types.AddressNormalizationResult{
			Method:      types.AddressMethodFallback,
			NeedsReview: true,
			Fields:      types.AddressFields{Line1: raw},
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	record := func(f types.FieldName, v string) {
		if v != "" {
			res.RecordSuccess(f, v)
		} else {
			res.RecordFailure(f)
		}
	}
	record(types.FieldHQLine1, norm.Fields.Line1)
	record(types.FieldHQCity, norm.Fields.City)
	record(types.FieldHQState, norm.Fields.State)
	record(types.FieldHQZip, norm.Fields.Zip)
	record(types.FieldHQCountry, norm.Fields.Country)
	return nil
}

var addressContinuationRe = regexp.MustCompile(`^\d|^(?i:suite|ste|unit|floor|apt|#)`)

func looksLikeAddressContinuation(line string) bool {
	return addressContinuationRe.MatchString(line)
}
