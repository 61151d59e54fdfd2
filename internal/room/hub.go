package room

import (
	"context"
	"sort"
	"sync"
	
	"github.com/rs/zerolog/log"
)

// Publisher fans a message out to every instance serving the item.
type Publisher interface {
	Publish(ctx context.Context, itemID int64, msg Message) error
}

// Hub owns the rooms of all items. Rooms are created on the first join and
// removed when the last member leaves.
type Hub struct {
	mu    sync.Mutex
	rooms map[int64]*Room
	relay Publisher
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]*Room),
	}
}

// UseRelay routes Broadcast through p instead of delivering locally.
// p is expected to call Deliver on every instance, this one included.
func (h *Hub) UseRelay(p Publisher) {
	h.mu.Lock()
	h.relay = p
	h.mu.Unlock()
}

// Membership is the handle returned by Join. Leave is safe to call more than once.
type Membership struct {
	hub    *Hub
	itemID int64
	member *Member
	once   sync.Once
}

// Join adds m to the room of itemID, creating the room if needed.
func (h *Hub) Join(itemID int64, m *Member) *Membership {
	h.mu.Lock()
	r, ok := h.rooms[itemID]
	if !ok {
		r = newRoom(itemID)
		h.rooms[itemID] = r
	}
	r.add(m)
	h.mu.Unlock()
	
	log.Info().
		Int64("item_id", itemID).
		Str("member_id", m.ID).
		Str("user_id", m.UserID).
		Int("members", r.size()).
		Msg("member joined room")
	
	return &Membership{hub: h, itemID: itemID, member: m}
}

// Member returns the member this membership belongs to.
func (ms *Membership) Member() *Member {
	return ms.member
}

// Leave removes the member from its room and drops it.
func (ms *Membership) Leave() {
	ms.once.Do(func() {
		ms.hub.leave(ms.itemID, ms.member)
		ms.member.dropNormal()
	})
}

func (h *Hub) leave(itemID int64, m *Member) {
	h.mu.Lock()
	defer h.mu.Unlock()
	
	r, ok := h.rooms[itemID]
	if !ok {
		return
	}
	
	remaining := r.remove(m)
	if remaining == 0 {
		delete(h.rooms, itemID)
	}
	
	log.Info().
		Int64("item_id", itemID).
		Str("member_id", m.ID).
		Int("members", remaining).
		Msg("member left room")
}

func (h *Hub) room(itemID int64) (*Room, Publisher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[itemID], h.relay
}

// Broadcast sends msg to the room of itemID, through the relay when one is set.
func (h *Hub) Broadcast(ctx context.Context, itemID int64, msg Message) error {
	_, relay := h.room(itemID)
	if relay != nil {
		return relay.Publish(ctx, itemID, msg)
	}
	
	h.Deliver(itemID, msg)
	return nil
}

// Deliver hands msg to the local members of the room and returns how many accepted it.
func (h *Hub) Deliver(itemID int64, msg Message) int {
	r, _ := h.room(itemID)
	if r == nil {
		return 0
	}
	return r.deliver(msg)
}

// Count returns the number of local members in the room of itemID.
func (h *Hub) Count(itemID int64) int {
	r, _ := h.room(itemID)
	if r == nil {
		return 0
	}
	return r.size()
}

// Census returns how many local members of the room of itemID are bidders and how
// many are spectators.
func (h *Hub) Census(itemID int64) (bidders, spectators int) {
	r, _ := h.room(itemID)
	if r == nil {
		return 0, 0
	}
	return r.census()
}

// ItemIDs lists the items that currently have a room.
func (h *Hub) ItemIDs() []int64 {
	h.mu.Lock()
	ids := make([]int64, 0, len(h.rooms))
	for id := range h.rooms {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CloseRoom drops every member of the room with the given close status.
// Members leave the room themselves once their connections have shut down.
func (h *Hub) CloseRoom(itemID int64, code int, reason string) int {
	r, _ := h.room(itemID)
	if r == nil {
		return 0
	}
	
	members := r.snapshot()
	for _, m := range members {
		m.Drop(code, reason)
	}
	return len(members)
}
