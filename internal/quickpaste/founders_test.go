package quickpaste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/fund-console/internal/types"
)

func TestExtractFoundersLabeledBlock(t *testing.T) {
	d := doc(t, `Founder: Ada Lovelace
ada@acme.com
https://linkedin.com/in/adalovelace
Previously built the analytical engine team.

Co-founder: Charles Babbage
charles@acme.com`)

	founders := extractFounders(d)
	require.Len(t, founders, 2)

	assert.Equal(t, "Ada Lovelace", founders[0].Name)
	assert.Equal(t, "ada@acme.com", founders[0].Email)
	assert.Equal(t, types.RoleFounder, founders[0].Role)
	assert.Equal(t, "https://linkedin.com/in/adalovelace", founders[0].LinkedIn)
	assert.Contains(t, founders[0].Bio, "analytical engine")

	assert.Equal(t, "Charles Babbage", founders[1].Name)
	assert.Equal(t, types.RoleCofounder, founders[1].Role)
}

func TestExtractFoundersNameOnSameLine(t *testing.T) {
	d := doc(t, "Grace Hopper <grace@flowmatic.io>")
	founders := extractFounders(d)
	require.Len(t, founders, 1)
	assert.Equal(t, "Grace Hopper", founders[0].Name)
	assert.Equal(t, "grace@flowmatic.io", founders[0].Email)
}

func TestExtractFoundersNameLineAbove(t *testing.T) {
	d := doc(t, "Alan Turing\nalan@enigma.dev\nWorking on sequence models.")
	founders := extractFounders(d)
	require.Len(t, founders, 1)
	assert.Equal(t, "Alan Turing", founders[0].Name)
	assert.Equal(t, "Working on sequence models.", founders[0].Bio)
}

func TestExtractFoundersCapsAtThree(t *testing.T) {
	d := doc(t, `Founder: Ada Lovelace
ada@acme.com
Founder: Charles Babbage
charles@acme.com
Founder: Grace Hopper
grace@acme.com
Founder: Alan Turing
alan@acme.com`)

	founders := extractFounders(d)
	require.Len(t, founders, types.MaxFounders)
	assert.Equal(t, "Ada Lovelace", founders[0].Name)
	assert.Equal(t, "Charles Babbage", founders[1].Name)
	assert.Equal(t, "Grace Hopper", founders[2].Name)
}

func TestExtractFoundersSkipsUnattributedEmail(t *testing.T) {
	d := doc(t, "Send the docs to legal@lawfirm.example.com for review.")
	assert.Empty(t, extractFounders(d))
}
