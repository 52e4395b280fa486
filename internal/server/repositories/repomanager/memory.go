package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/placeholder/internal/dbx"
	"github.com/dmitrijs2005/placeholder/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every handle from one in-memory store.
// Transactions are serialized rather than isolated: fn bodies never
// interleave, and a failed fn does not undo its writes.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	txMu  sync.Mutex
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) DB() dbx.DBTX { return nil }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Close() error { return nil }
