package statement

import (
	"math"
	"strconv"
	"strings"
)

// formatAmount renders a number the way the dashboard did (tr-TR
// grouping): dot thousands separators, comma decimals, at most three
// fraction digits with trailing zeros dropped.
func formatAmount(v float64) string {
	neg := v < 0
	abs := math.Abs(v)
	rounded := math.Round(abs*1000) / 1000

	raw := strconv.FormatFloat(rounded, 'f', -1, 64)
	intPart := raw
	fracPart := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart, fracPart = raw[:i], raw[i+1:]
		if len(fracPart) > 3 {
			fracPart = fracPart[:3]
		}
		fracPart = strings.TrimRight(fracPart, "0")
	}

	var b strings.Builder
	if neg && (intPart != "0" || fracPart != "") {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

func formatInt(v int) string {
	return formatAmount(float64(v))
}
