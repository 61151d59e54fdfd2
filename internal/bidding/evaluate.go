package bidding

import (
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/shopspring/decimal"
)

// Floor is the minimum amount the next bid on item must meet:
// the last accepted amount, or the start price when there is none, plus the increment.
func Floor(item db.Item, lastBid *db.Bid) decimal.Decimal {
	current := item.StartPrice
	if lastBid != nil {
		current = lastBid.Amount
	}
	return current.Add(item.MinIncrement)
}

// EvaluateBid decides a bid against a snapshot of the item. It touches no storage,
// and returns nil when the bid may be accepted.
func EvaluateBid(item db.Item, lastBid *db.Bid, amount decimal.Decimal) *Rejection {
	if !item.IsActive {
		return rejectItemClosed()
	}
	
	if !amount.IsPositive() {
		return rejectInvalidFormat()
	}
	
	floor := Floor(item, lastBid)
	if amount.LessThan(floor) {
		return &Rejection{
			Reason: ReasonBelowMinimum,
			Floor:  floor,
		}
	}
	
	return nil
}
