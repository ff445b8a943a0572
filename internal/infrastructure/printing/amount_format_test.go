package printing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ============================================
// FormatAmount Tests
// ============================================

func TestFormatAmount_Numbers(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"float with grouping", 1500.5, "1 500,50"},
		{"small integer", 42, "42,00"},
		{"exact thousand", int64(1000), "1 000,00"},
		{"millions get two separators", 1234567.89, "1 234 567,89"},
		{"zero", 0, "0,00"},
		{"negative", -1500.5, "-1 500,50"},
		{"decimal value", decimal.RequireFromString("357.00"), "357,00"},
		{"rounds to two decimals", decimal.RequireFromString("20.9979"), "21,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.value))
		})
	}
}

func TestFormatAmount_Strings(t *testing.T) {
	assert.Equal(t, "1 530,50", FormatAmount("1530.50"))
	assert.Equal(t, "99,90", FormatAmount(" 99.9 "), "surrounding whitespace is tolerated")
}

func TestFormatAmount_PassThrough(t *testing.T) {
	assert.Equal(t, "", FormatAmount(nil))
	assert.Equal(t, "", FormatAmount(""))
	assert.Equal(t, "N/A", FormatAmount("N/A"), "non-numeric text is returned unchanged")
}

func TestFormatAmount_GroupSeparatorIsNoBreakSpace(t *testing.T) {
	formatted := FormatAmount(1000)
	assert.Contains(t, formatted, " ")
	assert.NotContains(t, formatted, " ", "a breaking space would wrap inside printed amounts")
}
