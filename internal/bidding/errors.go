package bidding

import (
	"fmt"
	
	"github.com/shopspring/decimal"
)

// ErrorKind classifies failures that are not business-rule rejections.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindStorageFailure ErrorKind = "storage_failure"
)

// Error is returned by the Arbiter when a bid could not be decided at all.
// StorageFailure is transient; the client may resubmit.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RejectReason is the business rule a rejected bid violated.
type RejectReason string

const (
	ReasonItemClosed    RejectReason = "item_closed"
	ReasonInvalidFormat RejectReason = "invalid_format"
	ReasonBelowMinimum  RejectReason = "below_minimum"
)

// Rejection is a bid that was evaluated and refused. It is a value, not a failure:
// the connection that submitted it stays open.
type Rejection struct {
	Reason RejectReason
	Floor  decimal.Decimal // set for ReasonBelowMinimum
}

func (r *Rejection) Error() string {
	return r.Message()
}

// Message is the human readable text sent back to the bidder.
func (r *Rejection) Message() string {
	switch r.Reason {
	case ReasonItemClosed:
		return "Item is inactive"
	case ReasonInvalidFormat:
		return "Invalid bid format"
	case ReasonBelowMinimum:
		return fmt.Sprintf("Bid must be at least %s", r.Floor.StringFixed(2))
	default:
		return string(r.Reason)
	}
}

func rejectItemClosed() *Rejection {
	return &Rejection{Reason: ReasonItemClosed}
}

func rejectInvalidFormat() *Rejection {
	return &Rejection{Reason: ReasonInvalidFormat}
}
