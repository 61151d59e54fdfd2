package bidding

import (
	"context"
	"errors"
	"time"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/rs/zerolog/log"
)

const (
	defaultStoreTimeout   = 5 * time.Second
	closureHandlerTimeout = 30 * time.Second
)

// Store is the part of db.Store the Arbiter relies on.
type Store interface {
	GetItemByID(ctx context.Context, id int64) (db.Item, error)
	PlaceBidTx(ctx context.Context, arg db.PlaceBidTxParams) (db.PlaceBidTxResult, error)
}

// Bidder is the authenticated principal placing a bid.
type Bidder struct {
	ID   string
	Name string
}

// Closure describes the one-time transition of an item to closed.
type Closure struct {
	Item   db.Item
	Bid    db.Bid
	Result db.AuctionResult
}

// ClosureHandler is told about every closure, after the closing transaction has committed.
type ClosureHandler interface {
	HandleClosure(ctx context.Context, closure Closure) error
}

// Outcome is the decision for one bid. Exactly one of Closure or Rejection is set.
type Outcome struct {
	Accepted  bool
	Closed    bool
	Closure   Closure
	Rejection *Rejection
}

func accepted(c Closure) Outcome {
	return Outcome{Accepted: true, Closed: true, Closure: c}
}

func rejected(r *Rejection) Outcome {
	return Outcome{Rejection: r}
}

// Arbiter accepts or rejects bids and performs the closing transition.
// The first bid that meets the floor wins and closes the item.
type Arbiter struct {
	store          Store
	storeTimeout   time.Duration
	closureHandler []ClosureHandler
}

// NewArbiter creates an Arbiter. A non-positive storeTimeout falls back to 5s.
func NewArbiter(store Store, storeTimeout time.Duration, handlers ...ClosureHandler) *Arbiter {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	
	return &Arbiter{
		store:          store,
		storeTimeout:   storeTimeout,
		closureHandler: handlers,
	}
}

// PlaceBid decides a bid of rawAmount on itemID.
// Business-rule rejections come back as an Outcome; only NotFound and StorageFailure
// are returned as *Error. The Arbiter never retries.
func (a *Arbiter) PlaceBid(ctx context.Context, itemID int64, bidder Bidder, rawAmount string) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, a.storeTimeout)
	defer cancel()
	
	item, err := a.store.GetItemByID(ctx, itemID)
	if err != nil {
		return Outcome{}, storeError(err)
	}
	
	if !item.IsActive {
		return rejected(rejectItemClosed()), nil
	}
	
	amount, ok := ParseAmount(rawAmount)
	if !ok {
		return rejected(rejectInvalidFormat()), nil
	}
	
	result, err := a.store.PlaceBidTx(ctx, db.PlaceBidTxParams{
		ItemID:     itemID,
		BidderID:   bidder.ID,
		BidderName: bidder.Name,
		Amount:     amount,
		CheckBid: func(item db.Item, lastBid *db.Bid) error {
			if r := EvaluateBid(item, lastBid, amount); r != nil {
				return r
			}
			return nil
		},
	})
	if err != nil {
		var rejection *Rejection
		switch {
		case errors.As(err, &rejection):
			return rejected(rejection), nil
		case errors.Is(err, db.ErrItemClosed):
			return rejected(rejectItemClosed()), nil
		case errors.Is(err, db.ErrItemAlreadyClosed):
			log.Info().
				Int64("item_id", itemID).
				Str("bidder_id", bidder.ID).
				Str("amount", amount.String()).
				Msg("bid lost the closing race")
			return rejected(rejectItemClosed()), nil
		default:
			return Outcome{}, storeError(err)
		}
	}
	
	closure := Closure{
		Item:   result.Item,
		Bid:    result.Bid,
		Result: result.AuctionResult,
	}
	go a.publishClosure(closure)
	
	return accepted(closure), nil
}

func (a *Arbiter) publishClosure(closure Closure) {
	ctx, cancel := context.WithTimeout(context.Background(), closureHandlerTimeout)
	defer cancel()
	
	for _, h := range a.closureHandler {
		if err := h.HandleClosure(ctx, closure); err != nil {
			log.Err(err).
				Int64("item_id", closure.Item.ID).
				Str("winning_bid_id", closure.Bid.ID.String()).
				Msg("closure handler failed")
		}
	}
}

func storeError(err error) error {
	if errors.Is(err, db.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Err: err}
	}
	return &Error{Kind: KindStorageFailure, Err: err}
}
