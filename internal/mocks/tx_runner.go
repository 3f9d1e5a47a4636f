package mocks

import (
	"context"
	"sync"

	"github.com/fittrack/fittrack-api/internal/store"
)

// MockTxRunner implements store.TxRunner for testing. By default it runs fn
// with a nil transaction and records whether fn failed.
type MockTxRunner struct {
	RunInTxFn func(ctx context.Context, fn func(ctx context.Context, tx store.DBTX) error) error

	mu         sync.Mutex
	Calls      int
	RolledBack int
}

var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTx implements store.TxRunner
func (m *MockTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.DBTX) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	err := fn(ctx, nil)
	if err != nil {
		m.mu.Lock()
		m.RolledBack++
		m.mu.Unlock()
	}
	return err
}
