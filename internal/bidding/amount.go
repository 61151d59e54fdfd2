package bidding

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	
	"github.com/shopspring/decimal"
)

const amountScale int32 = 2

// maxAmount is the first value that no longer fits numeric(10, 2).
var maxAmount = decimal.New(1, 8)

var ErrMissingAmount = errors.New("bid message has no amount")

// BidMessage is the inbound frame a bidder sends.
type BidMessage struct {
	Amount json.RawMessage `json:"amount"`
}

// DecodeBidMessage extracts the raw amount token from an inbound frame.
// The amount may be a JSON number or a decimal string; the returned text is unparsed.
func DecodeBidMessage(data []byte) (string, error) {
	var msg BidMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return "", err
	}
	
	raw := bytes.TrimSpace(msg.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrMissingAmount
	}
	
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	
	return string(raw), nil
}

// ParseAmount parses a bid amount. It reports false for anything that is not a positive
// decimal with at most two fractional digits that fits numeric(10, 2).
func ParseAmount(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, false
	}
	
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	
	if !amount.IsPositive() || amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, false
	}
	
	if !amount.Equal(amount.Round(amountScale)) {
		return decimal.Zero, false
	}
	
	return amount, true
}
