package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned responses keyed on a prompt substring.
type fakeClient struct {
	content map[string]string
	jsonOut map[string]string
	err     error
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for key, out := range f.content {
		if strings.Contains(prompt, key) {
			return out, nil
		}
	}
	return "generated text", nil
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for key, out := range f.jsonOut {
		if strings.Contains(prompt, key) {
			return out, nil
		}
	}
	return "[]", nil
}

func (f *fakeClient) Close() error { return nil }

func TestEnrichCompany(t *testing.T) {
	svc := NewService(&fakeClient{
		content: map[string]string{"tagline": `"Robots that fold laundry."`},
		jsonOut: map[string]string{
			"tags":     `["Robotics", "consumer hardware", "robotics"]`,
			"keywords": `["laundry automation", " home robots "]`,
		},
	})

	result, err := svc.EnrichCompany(context.Background(), "Acme Robotics", "Home robotics company.")
	require.NoError(t, err)

	assert.Equal(t, "Robots that fold laundry.", result.Tagline)
	assert.Equal(t, []string{"robotics", "consumer hardware"}, result.Tags)
	assert.Equal(t, []string{"laundry automation", "home robots"}, result.Keywords)
}

func TestEnrichCompanyValidatesInput(t *testing.T) {
	svc := NewService(&fakeClient{})

	var ve *ValidationError
	_, err := svc.EnrichCompany(context.Background(), "", "desc")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, err = svc.EnrichCompany(context.Background(), "Acme", "   ")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "description", ve.Field)
}

func TestEnrichCompanyProviderFailure(t *testing.T) {
	svc := NewService(&fakeClient{err: errors.New("quota exhausted")})

	_, err := svc.EnrichCompany(context.Background(), "Acme", "desc")
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.ErrorContains(t, err, "enrichment failed")
}

func TestGenerateListRejectsNonArrayJSON(t *testing.T) {
	svc := NewService(&fakeClient{
		jsonOut: map[string]string{"tags": `{"tags": ["a"]}`},
	})

	_, err := svc.GenerateTags(context.Background(), "Acme", "desc")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestGenerateTaglineStripsQuotes(t *testing.T) {
	svc := NewService(&fakeClient{
		content: map[string]string{"tagline": "  \"Fintech for ferrets\"  "},
	})

	tagline, err := svc.GenerateTagline(context.Background(), "Ferret Bank", "Banking for pets.")
	require.NoError(t, err)
	assert.Equal(t, "Fintech for ferrets", tagline)
}

func TestGenerateRationale(t *testing.T) {
	svc := NewService(&fakeClient{
		content: map[string]string{"rationale": "Strong founding team in a growing market.\n"},
	})

	text, err := svc.GenerateRationale(context.Background(), "Acme", "Home robotics.", "Met at demo day.")
	require.NoError(t, err)
	assert.Equal(t, "Strong founding team in a growing market.", text)
}

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `["a"]`, cleanJSONBlock("```json\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, cleanJSONBlock("```\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, cleanJSONBlock(`["a"]`))
}
