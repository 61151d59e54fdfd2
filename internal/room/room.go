package room

import (
	"sync"
)

// Room is the broadcast group of one item. Its mutex is the single ordering point of
// the item's event stream: every member receives messages in the order they were
// delivered here.
type Room struct {
	itemID  int64
	mu      sync.Mutex
	members map[string]*Member
}

func newRoom(itemID int64) *Room {
	return &Room{
		itemID:  itemID,
		members: make(map[string]*Member),
	}
}

func (r *Room) add(m *Member) {
	r.mu.Lock()
	r.members[m.ID] = m
	r.mu.Unlock()
}

// remove deletes m and reports how many members remain.
func (r *Room) remove(m *Member) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	if cur, ok := r.members[m.ID]; ok && cur == m {
		delete(r.members, m.ID)
	}
	return len(r.members)
}

func (r *Room) deliver(msg Message) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	delivered := 0
	for id, m := range r.members {
		if id == msg.Exclude {
			continue
		}
		if m.Send(msg) {
			delivered++
		}
	}
	return delivered
}

func (r *Room) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// census splits the members into bidders and spectators.
func (r *Room) census() (bidders, spectators int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	for _, m := range r.members {
		if m.Spectator {
			spectators++
		} else {
			bidders++
		}
	}
	return
}

func (r *Room) snapshot() []*Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	members := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	return members
}
