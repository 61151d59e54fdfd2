// Package memstore keeps items, bids and auction results in process memory.
// It implements db.Store with one mutex per item, so every mutation of an item
// is serialized the same way the row lock serializes it in Postgres.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/google/uuid"
)

type itemState struct {
	mu     sync.Mutex
	item   db.Item
	bids   []db.Bid
	result *db.AuctionResult
}

type Store struct {
	mu     sync.RWMutex
	items  map[int64]*itemState
	bidIdx map[uuid.UUID]int64
	nextID int64
	now    func() time.Time
}

var _ db.Store = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{
		items:  make(map[int64]*itemState),
		bidIdx: make(map[uuid.UUID]int64),
		now:    time.Now,
	}
}

func (s *Store) lookup(id int64) (*itemState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	
	st, ok := s.items[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return st, nil
}

// nextBidTime keeps created_at strictly increasing per item.
func (s *Store) nextBidTime(st *itemState) time.Time {
	t := s.now()
	if n := len(st.bids); n > 0 && !t.After(st.bids[n-1].CreatedAt) {
		t = st.bids[n-1].CreatedAt.Add(time.Microsecond)
	}
	return t
}

func (s *Store) CreateItem(ctx context.Context, arg db.CreateItemParams) (db.Item, error) {
	if !arg.MinIncrement.IsPositive() {
		return db.Item{}, fmt.Errorf("min increment must be positive, got %s", arg.MinIncrement)
	}
	if arg.StartPrice.IsNegative() {
		return db.Item{}, fmt.Errorf("start price cannot be negative, got %s", arg.StartPrice)
	}
	
	s.mu.Lock()
	defer s.mu.Unlock()
	
	s.nextID++
	item := db.Item{
		ID:           s.nextID,
		Title:        arg.Title,
		StartPrice:   arg.StartPrice,
		MinIncrement: arg.MinIncrement,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	s.items[item.ID] = &itemState{item: item}
	return item, nil
}

func (s *Store) GetItemByID(ctx context.Context, id int64) (db.Item, error) {
	st, err := s.lookup(id)
	if err != nil {
		return db.Item{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.item, nil
}

// GetItemByIDForUpdate has no transaction to hold a lock for, so it behaves like GetItemByID.
func (s *Store) GetItemByIDForUpdate(ctx context.Context, id int64) (db.Item, error) {
	return s.GetItemByID(ctx, id)
}

func (s *Store) CloseItem(ctx context.Context, arg db.CloseItemParams) (db.Item, error) {
	st, err := s.lookup(arg.ID)
	if err != nil {
		return db.Item{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	
	if !st.item.IsActive {
		return db.Item{}, db.ErrRecordNotFound
	}
	closeLocked(st, arg.ClosedAt, s.now())
	return st.item, nil
}

func closeLocked(st *itemState, closedAt *time.Time, now time.Time) {
	if closedAt == nil {
		closedAt = &now
	}
	t := *closedAt
	st.item.IsActive = false
	st.item.ClosedAt = &t
}

func (s *Store) CreateBid(ctx context.Context, arg db.CreateBidParams) (db.Bid, error) {
	st, err := s.lookup(arg.ItemID)
	if err != nil {
		return db.Bid{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	
	bid := db.Bid{
		ID:         arg.ID,
		ItemID:     arg.ItemID,
		BidderID:   arg.BidderID,
		BidderName: arg.BidderName,
		Amount:     arg.Amount,
		CreatedAt:  s.nextBidTime(st),
	}
	st.bids = append(st.bids, bid)
	
	s.mu.Lock()
	s.bidIdx[bid.ID] = bid.ItemID
	s.mu.Unlock()
	
	return bid, nil
}

func (s *Store) DeleteBid(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	itemID, ok := s.bidIdx[id]
	delete(s.bidIdx, id)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	
	st, err := s.lookup(itemID)
	if err != nil {
		return nil
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, b := range st.bids {
		if b.ID == id {
			st.bids = append(st.bids[:i], st.bids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetLastBidByItemID(ctx context.Context, itemID int64) (db.Bid, error) {
	st, err := s.lookup(itemID)
	if err != nil {
		return db.Bid{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(st.bids) == 0 {
		return db.Bid{}, db.ErrRecordNotFound
	}
	return st.bids[len(st.bids)-1], nil
}

func (s *Store) ListBidsByItemID(ctx context.Context, itemID int64) ([]db.Bid, error) {
	st, err := s.lookup(itemID)
	if err != nil {
		return []db.Bid{}, nil
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	bids := make([]db.Bid, len(st.bids))
	copy(bids, st.bids)
	return bids, nil
}

func (s *Store) ListBidderIDsByItemID(ctx context.Context, itemID int64) ([]string, error) {
	bids, err := s.ListBidsByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	
	seen := make(map[string]bool)
	bidderIDs := []string{}
	for _, b := range bids {
		if !seen[b.BidderID] {
			seen[b.BidderID] = true
			bidderIDs = append(bidderIDs, b.BidderID)
		}
	}
	return bidderIDs, nil
}

func (s *Store) CreateAuctionResult(ctx context.Context, arg db.CreateAuctionResultParams) (db.AuctionResult, error) {
	st, err := s.lookup(arg.ItemID)
	if err != nil {
		return db.AuctionResult{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.result != nil {
		return db.AuctionResult{}, db.ErrItemAlreadyClosed
	}
	st.result = &db.AuctionResult{
		ItemID:       arg.ItemID,
		WinnerID:     arg.WinnerID,
		WinningBidID: arg.WinningBidID,
		FinalizedAt:  arg.FinalizedAt,
	}
	return *st.result, nil
}

func (s *Store) GetAuctionResultByItemID(ctx context.Context, itemID int64) (db.AuctionResult, error) {
	st, err := s.lookup(itemID)
	if err != nil {
		return db.AuctionResult{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.result == nil {
		return db.AuctionResult{}, db.ErrRecordNotFound
	}
	return *st.result, nil
}

// PlaceBidTx mirrors SQLStore.PlaceBidTx. Nothing is written until every check has passed,
// which is what a rollback gives the Postgres version.
func (s *Store) PlaceBidTx(ctx context.Context, arg db.PlaceBidTxParams) (db.PlaceBidTxResult, error) {
	st, err := s.lookup(arg.ItemID)
	if err != nil {
		return db.PlaceBidTxResult{}, err
	}
	
	st.mu.Lock()
	defer st.mu.Unlock()
	
	if err = ctx.Err(); err != nil {
		return db.PlaceBidTxResult{}, err
	}
	
	if !st.item.IsActive {
		return db.PlaceBidTxResult{}, db.ErrItemClosed
	}
	
	var lastBid *db.Bid
	if n := len(st.bids); n > 0 {
		b := st.bids[n-1]
		lastBid = &b
	}
	
	if arg.CheckBid != nil {
		if err = arg.CheckBid(st.item, lastBid); err != nil {
			return db.PlaceBidTxResult{}, err
		}
	}
	
	if st.result != nil {
		return db.PlaceBidTxResult{}, db.ErrItemAlreadyClosed
	}
	
	bidID, err := uuid.NewV7()
	if err != nil {
		return db.PlaceBidTxResult{}, fmt.Errorf("failed to generate bid ID: %w", err)
	}
	
	bid := db.Bid{
		ID:         bidID,
		ItemID:     arg.ItemID,
		BidderID:   arg.BidderID,
		BidderName: arg.BidderName,
		Amount:     arg.Amount,
		CreatedAt:  s.nextBidTime(st),
	}
	result := db.AuctionResult{
		ItemID:       arg.ItemID,
		WinnerID:     arg.BidderID,
		WinningBidID: bid.ID,
		FinalizedAt:  s.now(),
	}
	
	st.bids = append(st.bids, bid)
	closeLocked(st, &bid.CreatedAt, s.now())
	st.result = &result
	
	s.mu.Lock()
	s.bidIdx[bid.ID] = bid.ItemID
	s.mu.Unlock()
	
	return db.PlaceBidTxResult{
		Item:          st.item,
		Bid:           bid,
		AuctionResult: result,
	}, nil
}
