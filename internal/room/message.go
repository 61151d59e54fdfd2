package room

import (
	"encoding/json"
	"fmt"
)

const (
	MessageTypeBid        = "bid"          // An accepted bid
	MessageTypeItemClosed = "item_closed"  // The item was closed by a winning bid
	MessageTypeUserJoined = "user_joined"  // A participant joined the room
	MessageTypeUserLeft   = "user_left"    // A participant left the room
	MessageTypeError      = "error"        // A rejection, sent only to the submitter
)

// Close codes sent when a connection is refused after the handshake or drained later.
const (
	CloseAnonymousNotAllowed = 4003
	CloseItemNotFound        = 4004
	CloseItemClosed          = 4009
	CloseSlowConsumer        = 4008
)

// Message is one event in a room's stream. Data is the encoded JSON frame.
type Message struct {
	Type    string
	Data    []byte
	Exclude string // Member ID that must not receive the message
}

// NewMessage encodes payload as the frame of a message of msgType.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s message: %w", msgType, err)
	}
	
	return Message{
		Type: msgType,
		Data: data,
	}, nil
}

// Excluding returns a copy of m that skips memberID.
func (m Message) Excluding(memberID string) Message {
	m.Exclude = memberID
	return m
}
