package stream

import (
	"fmt"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	"github.com/shopspring/decimal"
)

const (
	EventBidAccepted = "bid_accepted"
	EventItemClosed  = "item_closed"
)

// Event is the archived form of a state change of an item.
type Event struct {
	ID         string          `json:"event_id"`
	Type       string          `json:"type"`
	ItemID     int64           `json:"item_id"`
	BidID      string          `json:"bid_id"`
	BidderID   string          `json:"bidder_id"`
	BidderName string          `json:"bidder_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func subject(itemID int64) string {
	return fmt.Sprintf("%s.%d", subjectPrefix, itemID)
}

// ClosureEvents returns the events describing closure, in the order they happened.
// Event IDs are derived from the closure so a republished closure is deduplicated.
func ClosureEvents(closure bidding.Closure) []Event {
	bid := closure.Bid
	
	closedAt := bid.CreatedAt
	if closure.Item.ClosedAt != nil {
		closedAt = *closure.Item.ClosedAt
	}
	
	return []Event{
		{
			ID:         fmt.Sprintf("%s-%s", EventBidAccepted, bid.ID),
			Type:       EventBidAccepted,
			ItemID:     bid.ItemID,
			BidID:      bid.ID.String(),
			BidderID:   bid.BidderID,
			BidderName: bid.BidderName,
			Amount:     bid.Amount,
			OccurredAt: bid.CreatedAt,
		},
		{
			ID:         fmt.Sprintf("%s-%d", EventItemClosed, closure.Item.ID),
			Type:       EventItemClosed,
			ItemID:     closure.Item.ID,
			BidID:      bid.ID.String(),
			BidderID:   closure.Result.WinnerID,
			Amount:     bid.Amount,
			OccurredAt: closedAt,
		},
	}
}
