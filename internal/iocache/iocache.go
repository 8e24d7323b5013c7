package iocache

import (
	"sync"

	"github.com/huangsam/lineup/internal/contract"
)

// CacheStoreManager manages the solution cache and the history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	solutions    contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// NewCacheStoreManager wires already opened stores into a manager.
func NewCacheStoreManager(solutions contract.CacheStore, history contract.HistoryStore) *CacheStoreManager {
	return &CacheStoreManager{solutions: solutions, history: history}
}

// GetSolutionStore returns the solution CacheStore.
func (mgr *CacheStoreManager) GetSolutionStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.solutions
}

// GetHistoryStore returns the run HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
