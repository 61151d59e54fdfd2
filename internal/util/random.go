package util

import (
	"fmt"
	
	"github.com/lithammer/shortuuid/v4"
)

const (
	guestAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// GenerateMemberID returns an identifier for one connection in a room.
func GenerateMemberID() string {
	return shortuuid.New()
}

// GenerateGuest returns the identity given to an anonymous bidder,
// e.g. "guest-7KQ2MZP4" and "Guest 7KQ2".
func GenerateGuest() (userID, name string) {
	code := shortuuid.NewWithAlphabet(guestAlphabet)[:8]
	return fmt.Sprintf("guest-%s", code), fmt.Sprintf("Guest %s", code[:4])
}
