package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDraftSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{
			name:     "plain field map",
			document: `{"company_name": "Acme", "amount": 500000, "pro_rata": true}`,
			valid:    true,
		},
		{
			name:     "nested values allowed",
			document: `{"founders": [{"name": "Ada"}], "address": {"city": "Berlin"}}`,
			valid:    true,
		},
		{
			name:     "empty snapshot",
			document: `{}`,
			valid:    true,
		},
		{
			name:     "null value rejected",
			document: `{"company_name": null}`,
			valid:    false,
		},
		{
			name:     "uppercase field name rejected",
			document: `{"CompanyName": "Acme"}`,
			valid:    false,
		},
		{
			name:     "top level array rejected",
			document: `["company_name"]`,
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(DraftSnapshot, []byte(tt.document))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.NotEmpty(t, ve.Errors)
			}
		})
	}
}

func TestValidateExtractionResult(t *testing.T) {
	valid := `{
		"fields": {"company_name": "Acme", "amount": 1250000},
		"successfully_parsed": ["company_name", "amount"],
		"failed_to_parse": ["valuation_cap"]
	}`
	assert.NoError(t, Validate(ExtractionResult, []byte(valid)))

	missing := `{"fields": {}}`
	var ve *ValidationError
	require.ErrorAs(t, Validate(ExtractionResult, []byte(missing)), &ve)

	extra := `{
		"fields": {},
		"successfully_parsed": [],
		"failed_to_parse": [],
		"bonus": true
	}`
	assert.Error(t, Validate(ExtractionResult, []byte(extra)))
}

func TestValidateUnknownSchema(t *testing.T) {
	var sle *SchemaLoadError
	err := Validate("no_such_schema", []byte(`{}`))
	require.ErrorAs(t, err, &sle)
	assert.Equal(t, "no_such_schema", sle.Name)
}

func TestValidateMalformedDocument(t *testing.T) {
	err := Validate(DraftSnapshot, []byte(`{not json`))
	assert.Error(t, err)
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	err := Validate(ExtractionResult, []byte(`{"fields": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
