package db

import (
	"context"
	"errors"
	"fmt"
	"time"
	
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type PlaceBidTxParams struct {
	ItemID     int64
	BidderID   string
	BidderName string
	Amount     decimal.Decimal
	CheckBid   func(item Item, lastBid *Bid) error // Called with the locked item and the last accepted bid (nil if none); a non-nil error aborts the transaction
}

type PlaceBidTxResult struct {
	Item          Item          `json:"item"`
	Bid           Bid           `json:"bid"`
	AuctionResult AuctionResult `json:"auction_result"`
}

// PlaceBidTx validates, records and closes an item in one transaction.
// The item row stays locked from the floor check until commit, and the close itself
// is conditional on is_active, so at most one bid per item can ever win.
func (store *SQLStore) PlaceBidTx(ctx context.Context, arg PlaceBidTxParams) (PlaceBidTxResult, error) {
	var result PlaceBidTxResult
	
	err := store.ExecTx(ctx, func(qTx *Queries) error {
		// 1. Lock the item row
		item, err := qTx.GetItemByIDForUpdate(ctx, arg.ItemID)
		if err != nil {
			return err
		}
		
		if !item.IsActive {
			return ErrItemClosed
		}
		
		// 2. Last accepted bid, if any
		var lastBid *Bid
		bid, err := qTx.GetLastBidByItemID(ctx, arg.ItemID)
		switch {
		case err == nil:
			lastBid = &bid
		case !errors.Is(err, ErrRecordNotFound):
			return fmt.Errorf("failed to get last bid of item ID %d: %w", arg.ItemID, err)
		}
		
		if arg.CheckBid != nil {
			if err = arg.CheckBid(item, lastBid); err != nil {
				return err
			}
		}
		
		// 3. Record the bid
		bidID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate bid ID: %w", err)
		}
		
		result.Bid, err = qTx.CreateBid(ctx, CreateBidParams{
			ID:         bidID,
			ItemID:     arg.ItemID,
			BidderID:   arg.BidderID,
			BidderName: arg.BidderName,
			Amount:     arg.Amount,
		})
		if err != nil {
			return fmt.Errorf("failed to create bid: %w", err)
		}
		
		// 4. Close the item only if it is still active
		closedAt := result.Bid.CreatedAt
		result.Item, err = qTx.CloseItem(ctx, CloseItemParams{
			ID:       arg.ItemID,
			ClosedAt: &closedAt,
		})
		if err != nil {
			if errors.Is(err, ErrRecordNotFound) {
				return ErrItemAlreadyClosed
			}
			return fmt.Errorf("failed to close item: %w", err)
		}
		
		// 5. Record the result
		result.AuctionResult, err = qTx.CreateAuctionResult(ctx, CreateAuctionResultParams{
			ItemID:       arg.ItemID,
			WinnerID:     arg.BidderID,
			WinningBidID: result.Bid.ID,
			FinalizedAt:  time.Now(),
		})
		if err != nil {
			if errCode, constraint := ErrorDescription(err); errCode == UniqueViolationCode && constraint == AuctionResultPkeyConstraint {
				return ErrItemAlreadyClosed
			}
			return fmt.Errorf("failed to create auction result: %w", err)
		}
		
		return nil
	})
	if err != nil {
		return PlaceBidTxResult{}, err
	}
	
	log.Info().
		Int64("item_id", arg.ItemID).
		Str("bid_id", result.Bid.ID.String()).
		Str("winner_id", arg.BidderID).
		Str("amount", arg.Amount.String()).
		Msg("item closed by winning bid")
	
	return result, nil
}
