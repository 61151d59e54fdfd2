package token

import (
	"time"
)

// Maker issues and verifies the access tokens that identify bidders.
type Maker interface {
	CreateToken(userID, name string, duration time.Duration) (token string, payload *Payload, err error)
	VerifyToken(tokenString string) (payload *Payload, err error)
}
