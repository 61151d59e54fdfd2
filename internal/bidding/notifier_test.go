package bidding

import (
	"context"
	"errors"
	"sync"
	"testing"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/db/memstore"
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	userID   string
	category string
	message  string
	itemID   int64
}

type fakeDeliverer struct {
	mu         sync.Mutex
	deliveries []delivery
	failFor    string
}

func (f *fakeDeliverer) Deliver(_ context.Context, userID, category, message string, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	
	if userID == f.failFor {
		return errors.New("queue unavailable")
	}
	f.deliveries = append(f.deliveries, delivery{userID, category, message, itemID})
	return nil
}

func seedBid(t *testing.T, store *memstore.Store, itemID int64, bidderID, amount string) {
	t.Helper()
	_, err := store.CreateBid(context.Background(), db.CreateBidParams{
		ID:       uuid.New(),
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   dec(amount),
	})
	require.NoError(t, err)
}

func TestResultNotifierNotifiesEachBidderOnce(t *testing.T) {
	store := memstore.New()
	item := newTestItem(t, store, "40", "10")
	seedBid(t, store, item.ID, "alice", "50")
	seedBid(t, store, item.ID, "bob", "60")
	
	deliverer := &fakeDeliverer{}
	arbiter := NewArbiter(store, 0)
	outcome, err := arbiter.PlaceBid(context.Background(), item.ID, Bidder{ID: "carol", Name: "Carol"}, "70")
	require.NoError(t, err)
	require.True(t, outcome.Accepted)
	
	notifier := NewResultNotifier(store, deliverer)
	require.NoError(t, notifier.HandleClosure(context.Background(), outcome.Closure))
	
	byUser := make(map[string]delivery)
	for _, d := range deliverer.deliveries {
		_, dup := byUser[d.userID]
		require.False(t, dup, "duplicate notification for %s", d.userID)
		byUser[d.userID] = d
	}
	require.Len(t, byUser, 3)
	
	require.Equal(t, CategoryAuctionWon, byUser["carol"].category)
	require.Equal(t, "Congratulations! You won the bid for Vintage camera at 70.00.", byUser["carol"].message)
	require.Equal(t, CategoryAuctionLost, byUser["alice"].category)
	require.Equal(t, CategoryAuctionLost, byUser["bob"].category)
	require.Equal(t, "You did not win the bid for Vintage camera. The winning bid was 70.00.", byUser["bob"].message)
	for _, d := range byUser {
		require.Equal(t, item.ID, d.itemID)
	}
}

func TestResultNotifierContinuesAfterFailedDelivery(t *testing.T) {
	store := memstore.New()
	item := newTestItem(t, store, "40", "10")
	seedBid(t, store, item.ID, "alice", "50")
	seedBid(t, store, item.ID, "bob", "60")
	
	winning := db.Bid{ID: uuid.New(), ItemID: item.ID, BidderID: "carol", Amount: dec("70")}
	deliverer := &fakeDeliverer{failFor: "alice"}
	
	err := NewResultNotifier(store, deliverer).NotifyClosed(context.Background(), item, winning)
	require.Error(t, err)
	
	// The winner is notified even though its bid is not in the store.
	require.Len(t, deliverer.deliveries, 2)
	require.Equal(t, "bob", deliverer.deliveries[0].userID)
	require.Equal(t, "carol", deliverer.deliveries[1].userID)
	require.Equal(t, CategoryAuctionWon, deliverer.deliveries[1].category)
}
