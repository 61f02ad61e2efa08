package draft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSnapshotStripsNulls(t *testing.T) {
	b, err := MarshalSnapshot(map[string]any{
		"name":  "Acme",
		"empty": nil,
		"zero":  0.0,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Acme","zero":0}`, string(b))
}

func TestMarshalSnapshotStripsNonFiniteFloats(t *testing.T) {
	b, err := MarshalSnapshot(map[string]any{
		"nan":    math.NaN(),
		"posinf": math.Inf(1),
		"neginf": math.Inf(-1),
		"amount": 50000.0,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":50000}`, string(b))
}

func TestMarshalSnapshotRecursesIntoNested(t *testing.T) {
	b, err := MarshalSnapshot(map[string]any{
		"founders": []any{
			map[string]any{"name": "Ada", "email": nil},
			nil,
		},
		"hq": map[string]any{"city": "SF", "lat": math.NaN()},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"founders":[{"name":"Ada"}],"hq":{"city":"SF"}}`, string(b))
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := map[string]any{"name": "Acme", "amount": 1250000.0, "pro_rata": true}
	b, err := MarshalSnapshot(in)
	require.NoError(t, err)

	out, err := UnmarshalSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalSnapshotRejectsGarbage(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte("{truncated"))
	assert.Error(t, err)
}
