package notification

import (
	"time"
)

// Notification is one auction result addressed to a bidder.
type Notification struct {
	RecipientID string
	Category    string
	Message     string
	ItemID      int64
	IsRead      bool
	CreatedAt   time.Time
}
