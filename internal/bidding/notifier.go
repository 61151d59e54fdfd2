package bidding

import (
	"context"
	"errors"
	"fmt"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/util"
	"github.com/rs/zerolog/log"
)

// Notification categories emitted on closure.
const (
	CategoryAuctionWon  = "AUCTION_WON"
	CategoryAuctionLost = "AUCTION_LOST"
)

// Deliverer hands a notification to the external delivery channel.
// Delivery is best effort and at least once.
type Deliverer interface {
	Deliver(ctx context.Context, userID, category, message string, itemID int64) error
}

// BidderLister lists the distinct bidders of an item.
type BidderLister interface {
	ListBidderIDsByItemID(ctx context.Context, itemID int64) ([]string, error)
}

// ResultNotifier tells every bidder of a closed item whether they won.
type ResultNotifier struct {
	store     BidderLister
	deliverer Deliverer
}

func NewResultNotifier(store BidderLister, deliverer Deliverer) *ResultNotifier {
	return &ResultNotifier{
		store:     store,
		deliverer: deliverer,
	}
}

func (n *ResultNotifier) HandleClosure(ctx context.Context, closure Closure) error {
	return n.NotifyClosed(ctx, closure.Item, closure.Bid)
}

// NotifyClosed sends one notification per distinct bidder of item.
// A failed delivery is logged and does not stop the others.
func (n *ResultNotifier) NotifyClosed(ctx context.Context, item db.Item, winningBid db.Bid) error {
	bidderIDs, err := n.store.ListBidderIDsByItemID(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("failed to list bidders of item ID %d: %w", item.ID, err)
	}
	
	// The winner is notified even if the list was read before the winning bid was visible.
	recipients := make([]string, 0, len(bidderIDs)+1)
	seen := make(map[string]bool, len(bidderIDs)+1)
	for _, id := range append(bidderIDs, winningBid.BidderID) {
		if !seen[id] {
			seen[id] = true
			recipients = append(recipients, id)
		}
	}
	
	var errs []error
	for _, userID := range recipients {
		category, message := resultMessage(item, winningBid, userID)
		
		if err = n.deliverer.Deliver(ctx, userID, category, message, item.ID); err != nil {
			log.Err(err).
				Str("recipient_id", userID).
				Int64("item_id", item.ID).
				Str("category", category).
				Msg("failed to deliver auction result notification")
			errs = append(errs, err)
		}
	}
	
	log.Info().
		Int64("item_id", item.ID).
		Int("recipients", len(recipients)).
		Int("failed", len(errs)).
		Msg("auction result notifications dispatched")
	
	return errors.Join(errs...)
}

func resultMessage(item db.Item, winningBid db.Bid, userID string) (category, message string) {
	if userID == winningBid.BidderID {
		return CategoryAuctionWon, fmt.Sprintf("Congratulations! You won the bid for %s at %s.",
			item.Title, util.FormatMoney(winningBid.Amount))
	}
	
	return CategoryAuctionLost, fmt.Sprintf("You did not win the bid for %s. The winning bid was %s.",
		item.Title, util.FormatMoney(winningBid.Amount))
}
