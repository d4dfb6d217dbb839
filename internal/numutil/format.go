package numutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCount formats an integer with dot-grouped thousands ("12.345").
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatCurrency formats a monetary amount with zero decimals and a
// trailing currency symbol ("1.234 €").
func FormatCurrency(v float64, symbol string) string {
	return FormatCount(int(math.Round(v))) + " " + symbol
}

// FormatPercent formats a percentage with one comma decimal ("12,5%").
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(Round1(v), 'f', 1, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// FormatDuration renders seconds as "Xh Ym" when the value is an hour or
// more, otherwise "X min Ys".
func FormatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	if total >= 3600 {
		return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
	}
	return fmt.Sprintf("%d min %ds", total/60, total%60)
}
