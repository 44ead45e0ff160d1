package repositories

import "context"

// TxFn is a function that runs within a transaction.
// The ctx it receives carries the transaction (see GetTx).
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx runs fn in a transaction, committing only if fn returns nil
	ExecTx(ctx context.Context, fn TxFn) error
}
