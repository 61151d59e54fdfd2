package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBelowFloor = errors.New("below floor")

func createTestItem(t *testing.T, store Store) Item {
	t.Helper()
	item, err := store.CreateItem(context.Background(), CreateItemParams{
		Title:        "Brass compass",
		StartPrice:   decimal.NewFromInt(100),
		MinIncrement: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return item
}

func floorCheck(amount decimal.Decimal) func(Item, *Bid) error {
	return func(item Item, lastBid *Bid) error {
		floor := item.StartPrice.Add(item.MinIncrement)
		if lastBid != nil {
			floor = lastBid.Amount.Add(item.MinIncrement)
		}
		if amount.LessThan(floor) {
			return errBelowFloor
		}
		return nil
	}
}

func TestPlaceBidTxRejectedBidIsNotPersisted(t *testing.T) {
	store := requireTestStore(t)
	ctx := context.Background()
	item := createTestItem(t, store)
	
	amount := decimal.NewFromInt(105)
	_, err := store.PlaceBidTx(ctx, PlaceBidTxParams{
		ItemID:     item.ID,
		BidderID:   "alice",
		BidderName: "Alice",
		Amount:     amount,
		CheckBid:   floorCheck(amount),
	})
	require.ErrorIs(t, err, errBelowFloor)
	
	bids, err := store.ListBidsByItemID(ctx, item.ID)
	require.NoError(t, err)
	require.Empty(t, bids)
	
	got, err := store.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)
}

func TestPlaceBidTxClosesItem(t *testing.T) {
	store := requireTestStore(t)
	ctx := context.Background()
	item := createTestItem(t, store)
	
	amount := decimal.NewFromInt(110)
	result, err := store.PlaceBidTx(ctx, PlaceBidTxParams{
		ItemID:     item.ID,
		BidderID:   "alice",
		BidderName: "Alice",
		Amount:     amount,
		CheckBid:   floorCheck(amount),
	})
	require.NoError(t, err)
	require.False(t, result.Item.IsActive)
	require.NotNil(t, result.Item.ClosedAt)
	require.Equal(t, "alice", result.AuctionResult.WinnerID)
	require.Equal(t, result.Bid.ID, result.AuctionResult.WinningBidID)
	require.True(t, amount.Equal(result.Bid.Amount))
	
	_, err = store.PlaceBidTx(ctx, PlaceBidTxParams{
		ItemID:     item.ID,
		BidderID:   "bob",
		BidderName: "Bob",
		Amount:     decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, ErrItemClosed)
}

func TestPlaceBidTxSingleWinnerUnderContention(t *testing.T) {
	store := requireTestStore(t)
	ctx := context.Background()
	item := createTestItem(t, store)
	
	const bidders = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			
			bidderID := fmt.Sprintf("bidder-%d", i)
			amount := decimal.NewFromInt(int64(110 + i))
			_, err := store.PlaceBidTx(ctx, PlaceBidTxParams{
				ItemID:     item.ID,
				BidderID:   bidderID,
				BidderName: bidderID,
				Amount:     amount,
				CheckBid:   floorCheck(amount),
			})
			if err == nil {
				mu.Lock()
				winners = append(winners, bidderID)
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, ErrItemClosed) || errors.Is(err, ErrItemAlreadyClosed), "unexpected error: %v", err)
		}(i)
	}
	wg.Wait()
	
	require.Len(t, winners, 1)
	
	bids, err := store.ListBidsByItemID(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	
	result, err := store.GetAuctionResultByItemID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, winners[0], result.WinnerID)
}
