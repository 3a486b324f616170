// Package repokit holds the aliases and helpers repositories share over the store
package repokit

import (
	"context"

	"tgcheck/internal/platform/store"
)

type (
	// Queryer is what a repository reads and writes through, a pool or a tx
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
)

// WithTx runs fn in one transaction on tx; fn's error rolls it back
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
