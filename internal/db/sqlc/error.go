package db

import (
	"errors"
	
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	UniqueViolationCode = "23505"
)

const (
	AuctionResultPkeyConstraint = "auction_results_pkey"
)

var ErrRecordNotFound = pgx.ErrNoRows

var (
	// ErrItemClosed is returned when the item was already inactive when the bid was evaluated.
	ErrItemClosed = errors.New("item is closed")
	
	// ErrItemAlreadyClosed is returned when the conditional close found the item inactive,
	// meaning another bid won the race.
	ErrItemAlreadyClosed = errors.New("item was already closed by another bid")
)

// ErrorDescription returns the error code and constraint name from a Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	
	return
}
