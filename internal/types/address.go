package types

// AddressMethod identifies which normalization strategy produced a result.
// Ordered preference: geocoder > regex > fallback.
type AddressMethod string

const (
	AddressMethodGeocoder AddressMethod = "geocoder"
	AddressMethodRegex    AddressMethod = "regex"
	AddressMethodFallback AddressMethod = "fallback"
)

// AddressFields holds the structured parts of a normalized address.
// Coordinates are only ever populated by the geocoder tier.
type AddressFields struct {
	Line1     string   `json:"line1"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// AddressNormalizationResult is the output of the address sub-parser.
// NeedsReview is set when confidence in the parse is low even though a
// method succeeded; the UI should flag the address for manual review.
type AddressNormalizationResult struct {
	Method      AddressMethod `json:"method"`
	NeedsReview bool          `json:"needs_review"`
	Fields      AddressFields `json:"fields"`
}
