package validator

import (
	"fmt"
	"unicode/utf8"
	
	"github.com/shopspring/decimal"
)

const (
	maxItemTitleLength = 200
	amountScale        = 2
)

// maxItemAmount is the first value that no longer fits numeric(10, 2).
var maxItemAmount = decimal.New(1, 8)

func ValidateString(value string, minLength int, maxLength int) error {
	n := utf8.RuneCountInString(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}
	
	return nil
}

func ValidateItemTitle(title string) error {
	if err := ValidateString(title, 1, maxItemTitleLength); err != nil {
		return fmt.Errorf("title %w", err)
	}
	return nil
}

// ValidateItemPricing checks the start price and minimum increment of a new item.
func ValidateItemPricing(startPrice, minIncrement decimal.Decimal) error {
	if startPrice.IsNegative() {
		return fmt.Errorf("start_price cannot be negative, provided: %s", startPrice)
	}
	if !minIncrement.IsPositive() {
		return fmt.Errorf("min_increment must be positive, provided: %s", minIncrement)
	}
	
	for field, value := range map[string]decimal.Decimal{"start_price": startPrice, "min_increment": minIncrement} {
		if !value.Equal(value.Round(amountScale)) {
			return fmt.Errorf("%s must have at most %d decimal places, provided: %s", field, amountScale, value)
		}
		if value.GreaterThanOrEqual(maxItemAmount) {
			return fmt.Errorf("%s must be less than %s, provided: %s", field, maxItemAmount, value)
		}
	}
	
	return nil
}
