package room

import (
	"sync"
	
	"github.com/gorilla/websocket"
)

// Member is one connection bound to a room. Its outbound buffer is drained by the
// connection's own writer, never by the room.
type Member struct {
	ID        string
	UserID    string
	Name      string
	Spectator bool // watches without bidding; counted apart from bidders
	
	send chan Message
	done chan struct{}
	
	once        sync.Once
	closeCode   int
	closeReason string
}

// NewMember creates a member with an outbound buffer of bufferSize messages.
func NewMember(id, userID, name string, bufferSize int) *Member {
	return &Member{
		ID:     id,
		UserID: userID,
		Name:   name,
		send:   make(chan Message, bufferSize),
		done:   make(chan struct{}),
	}
}

// Outbound yields the messages to write to the peer, in room order.
func (m *Member) Outbound() <-chan Message {
	return m.send
}

// Done is closed once the member has been dropped.
func (m *Member) Done() <-chan struct{} {
	return m.done
}

// CloseStatus returns the close code and reason recorded when the member was dropped.
func (m *Member) CloseStatus() (int, string) {
	select {
	case <-m.done:
		return m.closeCode, m.closeReason
	default:
		return 0, ""
	}
}

// Send queues msg without blocking. When the buffer is full the member is dropped,
// so one slow peer never holds up the rest of the room.
func (m *Member) Send(msg Message) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	
	select {
	case m.send <- msg:
		return true
	default:
		m.Drop(CloseSlowConsumer, "outbound buffer full")
		return false
	}
}

// Drop marks the member as gone. Only the first call records a close status.
func (m *Member) Drop(code int, reason string) {
	m.once.Do(func() {
		m.closeCode = code
		m.closeReason = reason
		close(m.done)
	})
}

func (m *Member) dropNormal() {
	m.Drop(websocket.CloseNormalClosure, "")
}
