package printing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// groupSeparator is the no-break space (U+00A0) placed between digit groups
// in the French locale.
const groupSeparator = " "

// FormatAmount renders a numeric value in the French locale: thousands
// grouped with no-break spaces and a comma decimal separator, always with
// two decimals. Example: 1500.5 -> "1 500,50".
//
// Nil and the empty string render as "". A string that does not parse as
// a number is returned unchanged so free-text cells survive formatting.
func FormatAmount(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return formatDecimal(v)
	case string:
		if v == "" {
			return ""
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return v
		}
		return formatDecimal(d)
	case float64:
		return formatDecimal(decimal.NewFromFloat(v))
	case float32:
		return formatDecimal(decimal.NewFromFloat32(v))
	case int:
		return formatDecimal(decimal.NewFromInt(int64(v)))
	case int64:
		return formatDecimal(decimal.NewFromInt(v))
	case int32:
		return formatDecimal(decimal.NewFromInt32(v))
	default:
		return fmt.Sprintf("%v", value)
	}
}

func formatDecimal(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	dot := strings.IndexByte(fixed, '.')
	intPart := fixed[:dot]
	fracPart := fixed[dot+1:]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
