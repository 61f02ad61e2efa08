package quickpaste

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain with commas", "$1,250,000.00", 1250000, true},
		{"no symbol", "50000", 50000, true},
		{"usd prefix", "USD 50,000", 50000, true},
		{"k suffix", "$50k", 50000, true},
		{"uppercase K", "$50K", 50000, true},
		{"m suffix", "2.5M", 2500000, true},
		{"b suffix", "$1b", 1e9, true},
		{"euro symbol", "€100,000", 100000, true},
		{"pound symbol", "£75k", 75000, true},
		{"trailing period", "$500,000.", 500000, true},
		{"words", "Magic Beans", 0, false},
		{"empty", "", 0, false},
		{"only symbol", "$", 0, false},
		{"negative", "-5000", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseMoney(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"20", 20, true},
		{"12.5", 12.5, true},
		{"1,000", 1000, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 0.001, tt.input)
		}
	}
}
