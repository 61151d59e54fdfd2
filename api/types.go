package api

import (
	"time"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/google/uuid"
)

// bidRecord is an accepted bid as clients see it.
type bidRecord struct {
	ID         uuid.UUID `json:"id"`
	ItemID     int64     `json:"item_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     string    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

func newBidRecord(bid db.Bid) bidRecord {
	return bidRecord{
		ID:         bid.ID,
		ItemID:     bid.ItemID,
		BidderID:   bid.BidderID,
		BidderName: bid.BidderName,
		Amount:     bid.Amount.StringFixed(2),
		CreatedAt:  bid.CreatedAt,
	}
}

type bidAcceptedPayload struct {
	Bid    bidRecord `json:"bid"`
	Closed bool      `json:"closed"`
}

type itemClosedPayload struct {
	Type         string    `json:"type"`
	ItemID       int64     `json:"item_id"`
	WinnerID     string    `json:"winner_id"`
	WinningBidID uuid.UUID `json:"winning_bid_id"`
	Amount       string    `json:"amount"`
	ClosedAt     time.Time `json:"closed_at"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Floor   string `json:"floor,omitempty"`
}

type presencePayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type itemResponse struct {
	db.Item
	LastBid       *bidRecord        `json:"last_bid"`
	MinimumBid    *string           `json:"minimum_bid"`
	AuctionResult *db.AuctionResult `json:"auction_result"`
}
