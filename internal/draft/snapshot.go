package draft

import (
	"encoding/json"
	"fmt"
	"math"
)

// MarshalSnapshot serializes a form snapshot, stripping nulls and
// non-representable floats (NaN, ±Inf) so the stored draft stays compact and
// round-trippable. Stripping recurses into nested maps and slices.
func MarshalSnapshot(data map[string]any) ([]byte, error) {
	cleaned := cleanMap(data)
	b, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return b, nil
}

// UnmarshalSnapshot parses stored snapshot bytes.
func UnmarshalSnapshot(b []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to parse stored snapshot: %w", err)
	}
	return data, nil
}

func cleanMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if cv, keep := cleanValue(v); keep {
			out[k] = cv
		}
	}
	return out
}

func cleanValue(v any) (any, bool) {
	switch tv := v.(type) {
	case nil:
		return nil, false
	case float64:
		if math.IsNaN(tv) || math.IsInf(tv, 0) {
			return nil, false
		}
		return tv, true
	case float32:
		f := float64(tv)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true
	case map[string]any:
		return cleanMap(tv), true
	case []any:
		out := make([]any, 0, len(tv))
		for _, e := range tv {
			if ce, keep := cleanValue(e); keep {
				out = append(out, ce)
			}
		}
		return out, true
	default:
		return v, true
	}
}
