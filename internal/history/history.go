// Package history records evaluated survey sessions in a SQL store.
package history

import (
	"sync"

	"github.com/huangsam/presetter/internal/contract"
)

// HistoryStoreManager owns the HistoryStore used by the running process.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the active HistoryStore.
// It returns a no-op store when history was never initialized.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.store == nil {
		return noopStore
	}
	return mgr.store
}

// StaticHistoryManager hands out a fixed store. Useful for wiring tests and
// servers that do not go through the global Manager.
type StaticHistoryManager struct {
	Store contract.HistoryStore
}

var _ contract.HistoryManager = StaticHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (s StaticHistoryManager) GetHistoryStore() contract.HistoryStore {
	if s.Store == nil {
		return noopStore
	}
	return s.Store
}
