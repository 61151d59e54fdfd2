package room

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func mustMessage(t *testing.T, msgType string, payload any) Message {
	t.Helper()
	msg, err := NewMessage(msgType, payload)
	require.NoError(t, err)
	return msg
}

func drain(m *Member) []Message {
	var out []Message
	for {
		select {
		case msg := <-m.Outbound():
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHubBroadcastReachesEveryMember(t *testing.T) {
	hub := NewHub()
	a := NewMember("a", "user-a", "Alice", 8)
	b := NewMember("b", "user-b", "Bob", 8)
	hub.Join(1, a)
	hub.Join(1, b)
	
	other := NewMember("c", "user-c", "Carol", 8)
	hub.Join(2, other)
	
	msg := mustMessage(t, MessageTypeBid, map[string]string{"amount": "110.00"})
	require.NoError(t, hub.Broadcast(context.Background(), 1, msg))
	
	require.Len(t, drain(a), 1)
	require.Len(t, drain(b), 1)
	require.Empty(t, drain(other))
}

func TestHubPreservesOrderPerMember(t *testing.T) {
	hub := NewHub()
	members := make([]*Member, 5)
	for i := range members {
		members[i] = NewMember(fmt.Sprintf("m%d", i), "", "", 64)
		hub.Join(7, members[i])
	}
	
	for i := 0; i < 50; i++ {
		hub.Deliver(7, mustMessage(t, MessageTypeBid, i))
	}
	
	for _, m := range members {
		got := drain(m)
		require.Len(t, got, 50)
		for i, msg := range got {
			var n int
			require.NoError(t, json.Unmarshal(msg.Data, &n))
			require.Equal(t, i, n)
		}
	}
}

func TestHubConcurrentDeliveriesShareOneOrder(t *testing.T) {
	hub := NewHub()
	a := NewMember("a", "", "", 256)
	b := NewMember("b", "", "", 256)
	hub.Join(3, a)
	hub.Join(3, b)
	
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			hub.Deliver(3, mustMessage(t, MessageTypeBid, n))
		}(i)
	}
	wg.Wait()
	
	gotA, gotB := drain(a), drain(b)
	require.Len(t, gotA, 100)
	require.Equal(t, gotA, gotB)
}

func TestHubExcludesPresenceSubject(t *testing.T) {
	hub := NewHub()
	a := NewMember("a", "user-a", "Alice", 8)
	b := NewMember("b", "user-b", "Bob", 8)
	hub.Join(1, a)
	hub.Join(1, b)
	
	joined := mustMessage(t, MessageTypeUserJoined, map[string]string{"user": "Bob"}).Excluding(b.ID)
	hub.Deliver(1, joined)
	
	require.Len(t, drain(a), 1)
	require.Empty(t, drain(b))
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	slow := NewMember("slow", "", "", 1)
	fast := NewMember("fast", "", "", 8)
	hub.Join(1, slow)
	hub.Join(1, fast)
	
	hub.Deliver(1, mustMessage(t, MessageTypeBid, 1))
	hub.Deliver(1, mustMessage(t, MessageTypeBid, 2))
	
	select {
	case <-slow.Done():
	default:
		t.Fatal("slow member should have been dropped")
	}
	code, _ := slow.CloseStatus()
	require.Equal(t, CloseSlowConsumer, code)
	
	require.Len(t, drain(fast), 2)
	code, _ = fast.CloseStatus()
	require.Zero(t, code)
}

func TestHubRemovesEmptyRoom(t *testing.T) {
	hub := NewHub()
	a := hub.Join(9, NewMember("a", "", "", 1))
	b := hub.Join(9, NewMember("b", "", "", 1))
	require.Equal(t, []int64{9}, hub.ItemIDs())
	require.Equal(t, 2, hub.Count(9))
	
	a.Leave()
	a.Leave()
	require.Equal(t, 1, hub.Count(9))
	
	b.Leave()
	require.Empty(t, hub.ItemIDs())
	require.Zero(t, hub.Deliver(9, mustMessage(t, MessageTypeBid, 1)))
	
	code, _ := b.Member().CloseStatus()
	require.Equal(t, websocket.CloseNormalClosure, code)
}

func TestHubCloseRoomDropsMembers(t *testing.T) {
	hub := NewHub()
	a := NewMember("a", "", "", 1)
	b := NewMember("b", "", "", 1)
	hub.Join(4, a)
	hub.Join(4, b)
	
	require.Equal(t, 2, hub.CloseRoom(4, CloseItemClosed, "Item was ended"))
	for _, m := range []*Member{a, b} {
		code, reason := m.CloseStatus()
		require.Equal(t, CloseItemClosed, code)
		require.Equal(t, "Item was ended", reason)
		require.False(t, m.Send(mustMessage(t, MessageTypeBid, 1)))
	}
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []Message
}

func (p *recordingPublisher) Publish(_ context.Context, _ int64, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func TestHubBroadcastUsesRelay(t *testing.T) {
	hub := NewHub()
	pub := &recordingPublisher{}
	hub.UseRelay(pub)
	
	a := NewMember("a", "", "", 4)
	hub.Join(1, a)
	
	require.NoError(t, hub.Broadcast(context.Background(), 1, mustMessage(t, MessageTypeBid, 1)))
	require.Len(t, pub.messages, 1)
	require.Empty(t, drain(a))
}

func TestHubCensusSplitsSpectators(t *testing.T) {
	hub := NewHub()
	bidder := NewMember("a", "user-a", "Alice", 4)
	watcher := NewMember("w", "", "", 4)
	watcher.Spectator = true
	hub.Join(3, bidder)
	hub.Join(3, watcher)
	
	bidders, spectators := hub.Census(3)
	require.Equal(t, 1, bidders)
	require.Equal(t, 1, spectators)
	require.Equal(t, 2, hub.Count(3))
	
	bidders, spectators = hub.Census(99)
	require.Zero(t, bidders)
	require.Zero(t, spectators)
}
