// Package types defines the shared domain records for the fund console:
// extraction results, founder records, address normalization output, and
// draft snapshots.
package types

// FieldName identifies a single extractable field on the investment wizard.
type FieldName string

// The fixed set of fields the quick-paste engine knows how to extract.
const (
	FieldInvestmentAmount    FieldName = "investment_amount"
	FieldInstrument          FieldName = "instrument"
	FieldRoundSize           FieldName = "round_size"
	FieldConversionCap       FieldName = "conversion_cap"
	FieldDiscountPercent     FieldName = "discount_percent"
	FieldProRata             FieldName = "pro_rata"
	FieldInvestmentDate      FieldName = "investment_date"
	FieldCountry             FieldName = "country"
	FieldIncorporationType   FieldName = "incorporation_type"
	FieldFounders            FieldName = "founders"
	FieldDescription         FieldName = "description"
	FieldInvestmentRationale FieldName = "investment_rationale"
	FieldHQLine1             FieldName = "hq_line1"
	FieldHQCity              FieldName = "hq_city"
	FieldHQState             FieldName = "hq_state"
	FieldHQZip               FieldName = "hq_zip"
	FieldHQCountry           FieldName = "hq_country"
)

// Instrument enum values matched by the extraction vocabulary.
const (
	InstrumentSafePost        = "safe_post"
	InstrumentSafePre         = "safe_pre"
	InstrumentConvertibleNote = "convertible_note"
	InstrumentPricedEquity    = "priced_equity"
)

// Incorporation type enum values.
const (
	IncorporationCCorp = "c_corp"
	IncorporationSCorp = "s_corp"
	IncorporationLLC   = "llc"
	IncorporationLtd   = "ltd"
)

// Founder role enum values.
const (
	RoleFounder   = "founder"
	RoleCofounder = "cofounder"
)

// MaxFounders caps how many founder records a single paste may yield.
// Blocks beyond the cap are dropped.
const MaxFounders = 3

// FounderRecord is one founder extracted from a diligence blob.
type FounderRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"` // founder | cofounder
	LinkedIn string `json:"linkedin,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ExtractionResult is the output of parsing a single pasted blob. Fields the
// engine attempted appear in exactly one of Parsed or Failed; values are only
// present for parsed fields. Results are created fresh per paste event and
// never mutated after return.
type ExtractionResult struct {
	Fields map[FieldName]any `json:"fields"`
	Parsed []FieldName       `json:"successfully_parsed"`
	Failed []FieldName       `json:"failed_to_parse"`
}

// NewExtractionResult returns an empty result ready to record field outcomes.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{Fields: make(map[FieldName]any)}
}

// RecordSuccess stores a parsed value and marks the field successful.
func (r *ExtractionResult) RecordSuccess(f FieldName, v any) {
	r.Fields[f] = v
	r.Parsed = append(r.Parsed, f)
}

// RecordFailure marks a field as attempted but unresolved. The caller should
// leave it to manual entry.
func (r *ExtractionResult) RecordFailure(f FieldName) {
	r.Failed = append(r.Failed, f)
}

// DidParse reports whether f was successfully extracted.
func (r *ExtractionResult) DidParse(f FieldName) bool {
	for _, p := range r.Parsed {
		if p == f {
			return true
		}
	}
	return false
}

// DidFail reports whether f was attempted but not resolved.
func (r *ExtractionResult) DidFail(f FieldName) bool {
	for _, p := range r.Failed {
		if p == f {
			return true
		}
	}
	return false
}
