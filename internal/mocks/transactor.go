package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/shop-api/internal/store"
)

// Transactor is a store.Transactor that runs fn directly with a nil
// transaction and counts how often it was used.
type Transactor struct {
	mu    sync.Mutex
	calls int

	// Err, when set, is returned instead of running fn.
	Err error
}

// NewTransactor returns a Transactor that always runs fn.
func NewTransactor() *Transactor {
	return &Transactor{}
}

var _ store.Transactor = (*Transactor)(nil)

// RunInTransaction implements store.Transactor.
func (t *Transactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()

	if t.Err != nil {
		return t.Err
	}
	return fn(ctx, nil)
}

// Calls returns how many transactions were started.
func (t *Transactor) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
