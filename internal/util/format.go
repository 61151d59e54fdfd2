package util

import (
	"time"
	
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with thousands separators and two decimals.
// 1234567.5 -> "1,234,567.50".
func FormatMoney(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return humanize.FormatFloat("#,###.##", f)
}

// TruncateContent shortens s to maxLength characters, adding "..." when cut.
func TruncateContent(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength]) + "..."
}

func TimePointer(t time.Time) *time.Time {
	return &t
}
