package dashboard

import (
	"fmt"
	"math"
)

// NotAvailable marks a cell with no matching value. It is never rendered as 0.
const NotAvailable = "n/a"

// FormatVolume renders a quote-currency amount in compact form: $10.5b.
func FormatVolume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fb", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fm", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", v)
}
