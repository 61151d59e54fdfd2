package room

import (
	"context"
	"testing"
	"time"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/stretchr/testify/require"
)

type fakeItems map[int64]db.Item

func (f fakeItems) GetItemByID(_ context.Context, id int64) (db.Item, error) {
	item, ok := f[id]
	if !ok {
		return db.Item{}, db.ErrRecordNotFound
	}
	return item, nil
}

func TestReaperSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	longAgo := now.Add(-10 * time.Minute)
	justNow := now.Add(-5 * time.Second)
	
	items := fakeItems{
		1: {ID: 1, IsActive: true},
		2: {ID: 2, IsActive: false, ClosedAt: &longAgo},
		3: {ID: 3, IsActive: false, ClosedAt: &justNow},
	}
	
	hub := NewHub()
	open := NewMember("open", "", "", 1)
	stale := NewMember("stale", "", "", 1)
	recent := NewMember("recent", "", "", 1)
	missing := NewMember("missing", "", "", 1)
	hub.Join(1, open)
	hub.Join(2, stale)
	hub.Join(3, recent)
	hub.Join(4, missing)
	
	reaper, err := NewReaper(hub, items, time.Minute, time.Minute)
	require.NoError(t, err)
	reaper.now = func() time.Time { return now }
	
	require.Equal(t, 2, reaper.Sweep(context.Background()))
	
	code, _ := stale.CloseStatus()
	require.Equal(t, CloseItemClosed, code)
	code, _ = missing.CloseStatus()
	require.Equal(t, CloseItemNotFound, code)
	
	code, _ = open.CloseStatus()
	require.Zero(t, code)
	code, _ = recent.CloseStatus()
	require.Zero(t, code)
}
