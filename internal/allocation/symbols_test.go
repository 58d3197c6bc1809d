package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSymbols(t *testing.T) {
	in := []Observation{{"AAPL", 0.1}, {"BRK.B", 0.2}, {"^GSPC", 0.3}, {"", 0.4}, {"TSLA", -0.5}}
	got := FilterSymbols(in)

	assert.Equal(t, []Observation{{"AAPL", 0.1}, {"TSLA", -0.5}}, got)
	assert.Len(t, in, 5)
}

func TestNormalizeSymbols(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "trims and upper-cases", in: []string{" aapl", "msft "}, want: []string{"AAPL", "MSFT"}},
		{name: "drops blanks and duplicates", in: []string{"AAPL", "", "aapl", "  "}, want: []string{"AAPL"}},
		{name: "nil input", in: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSymbols(tt.in))
		})
	}
}
