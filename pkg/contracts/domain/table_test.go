package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCell(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantNumeric bool
		wantNumber  float64
	}{
		{name: "integer", raw: "42", wantNumeric: true, wantNumber: 42},
		{name: "thousands separator", raw: "1,250.50", wantNumeric: true, wantNumber: 1250.5},
		{name: "negative", raw: " -3.5 ", wantNumeric: true, wantNumber: -3.5},
		{name: "blank", raw: "  "},
		{name: "text", raw: "n/a"},
		{name: "NaN", raw: "NaN"},
		{name: "lower nan", raw: "nan"},
		{name: "inf", raw: "inf"},
		{name: "negative infinity", raw: "-Infinity"},
		{name: "positive infinity", raw: "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCell(tt.raw)
			assert.Equal(t, tt.raw, c.Raw)
			assert.Equal(t, tt.wantNumeric, c.Numeric)
			assert.Equal(t, tt.wantNumber, c.Number)
		})
	}
}
