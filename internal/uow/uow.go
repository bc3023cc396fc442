// Package uow groups repository writes into one transaction and defers side
// effects, such as cache invalidation, until that transaction has committed.
package uow

import (
	"context"
)

// AfterCommit runs once the transaction has committed.
type AfterCommit func(ctx context.Context)

// Transactor runs fn in a transaction carried by the ctx it passes to fn.
// It may call fn more than once when it retries a serialization failure.
type Transactor interface {
	RunTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UoW struct {
	tx Transactor
}

func NewUoW(tx Transactor) *UoW {
	return &UoW{tx: tx}
}

// Do runs fn inside a transaction. Hooks registered through after are
// collected per attempt, so a retried attempt starts from a clean list, and
// run in registration order after the commit. They get a context that is
// detached from ctx cancellation: the write is durable even if the caller
// has gone away.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, after func(AfterCommit)) error,
) error {
	var hooks []AfterCommit

	err := u.tx.RunTx(ctx, func(txCtx context.Context) error {
		hooks = hooks[:0]
		return fn(txCtx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	hookCtx := context.WithoutCancel(ctx)
	for _, h := range hooks {
		h(hookCtx)
	}

	return nil
}
