package db

import (
	"context"
	"fmt"
)

// ExecTx executes a function within a database transaction.
func (store *SQLStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := store.connPool.Begin(ctx)
	if err != nil {
		return err
	}
	
	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return rollbackError(err, rbErr)
		}
		return err
	}
	
	return tx.Commit(ctx)
}

// rollbackError keeps err in the chain so callers can still match its sentinel or type.
func rollbackError(err, rbErr error) error {
	return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
}
