package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input    string
		exchange string
		code     string
		secCode  string
		str      string
	}{
		{"TSE:5819", "TSE", "5819", "58190", "TSE:5819"},
		{"tse:7203", "TSE", "7203", "72030", "TSE:7203"},
		{"5819.T", "TSE", "5819", "58190", "TSE:5819"},
		{"7203.N", "NSE", "7203", "72030", "NSE:7203"},
		{"5819", "TSE", "5819", "58190", "TSE:5819"},
		{"58190", "TSE", "5819", "58190", "TSE:5819"},
		{" 130a ", "TSE", "130A", "130A0", "TSE:130A"},
		{"5819.X", "TSE", "5819.X", "5819.X", "TSE:5819.X"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ticker := ParseTicker(tt.input)
			assert.Equal(t, tt.exchange, ticker.Exchange)
			assert.Equal(t, tt.code, ticker.Code)
			assert.Equal(t, tt.secCode, ticker.SecCode())
			assert.Equal(t, tt.str, ticker.String())
			assert.Equal(t, tt.input, ticker.Raw)
		})
	}
}

func TestParseTicker_Empty(t *testing.T) {
	ticker := ParseTicker("  ")
	assert.Equal(t, Ticker{}, ticker)
	assert.Equal(t, "", ticker.String())
}
