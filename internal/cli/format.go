// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats a dollar amount with comma separators, negatives
// rendered with a leading minus. e.g., 1234567.8 -> "$1,234,568"
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-" + FormatMoney(-amount)
	}
	if amount >= 1000 {
		return "$" + FormatNumber(int64(math.Round(amount)))
	}
	if amount >= 100 {
		return fmt.Sprintf("$%.0f", amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatMoneyDelta formats a signed dollar change.
// e.g., -4200 -> "-$4,200", 300 -> "+$300"
func FormatMoneyDelta(delta float64) string {
	if delta < 0 {
		return "-" + FormatMoney(-delta)
	}
	return "+" + FormatMoney(delta)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatSignedPercent formats a 0-1 float as a signed percentage.
// e.g., 0.032 -> "+3.2%", -0.01 -> "-1.0%"
func FormatSignedPercent(f float64) string {
	if f < 0 {
		return fmt.Sprintf("-%.1f%%", -f*100)
	}
	return fmt.Sprintf("+%.1f%%", f*100)
}

// FormatMultiplier formats a scenario multiplier. e.g., 1.15 -> "1.15x"
func FormatMultiplier(m float64) string {
	return fmt.Sprintf("%.2fx", m)
}

// FormatWeek formats a week start date for table output.
func FormatWeek(d time.Time) string {
	return d.Format("Jan 02")
}

// FormatDate formats a full date.
func FormatDate(d time.Time) string {
	return d.Format("2006-01-02")
}
