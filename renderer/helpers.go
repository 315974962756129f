package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/networth"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// formatMoney formats v in currency with its symbol and minor units.
func formatMoney(v networth.Decimal, currency string) string {
	return networth.Money(v, currency).String()
}

// formatPercent formats a 0-100 percentage.
func formatPercent(p networth.Decimal) string {
	return p.StringFixed(1) + "%"
}

// formatRate formats a yearly rate given as a fraction (0.05 is 5%).
func formatRate(r networth.Decimal) string {
	if r.IsZero() {
		return "-"
	}
	return r.Mul(networth.D(100)).StringFixed(2) + "%"
}

func formatDays(s networth.DaysStatus) string {
	if s.IsDelayed {
		return fmt.Sprintf("%s late", s.StatusText)
	}
	if s.UsedExtendedMaturity {
		return fmt.Sprintf("%s (extended)", s.StatusText)
	}
	return s.StatusText
}
