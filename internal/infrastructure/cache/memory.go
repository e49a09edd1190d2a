package cache

import (
	"sync"
	"time"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

// RunStore is an in-memory registry of pipeline runs with expiration.
// It exists for observability only: state is transient per run and the
// store is not a persistence layer. Put stores a snapshot, so readers
// never observe a run the pipeline is still mutating.
type RunStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*runItem
}

type runItem struct {
	run        *entities.Run
	expireTime time.Time
}

// NewRunStore creates a new in-memory run registry
func NewRunStore(ttl time.Duration) *RunStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	store := &RunStore{
		ttl:   ttl,
		items: make(map[string]*runItem),
	}

	// Start cleanup goroutine to remove expired runs
	go store.cleanupExpired()

	return store
}

// Put stores a snapshot of the run's current state, refreshing its
// expiration. The live run can keep mutating after Put returns.
func (rs *RunStore) Put(run *entities.Run) {
	if run == nil {
		return
	}
	snapshot := run.Snapshot()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.items[snapshot.ID] = &runItem{
		run:        snapshot,
		expireTime: time.Now().Add(rs.ttl),
	}
}

// Get retrieves a run by id (nil, false when not found or expired)
func (rs *RunStore) Get(id string) (*entities.Run, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	item, exists := rs.items[id]
	if !exists {
		return nil, false
	}
	if time.Now().After(item.expireTime) {
		return nil, false
	}
	return item.run, true
}

// Delete removes a run
func (rs *RunStore) Delete(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	delete(rs.items, id)
}

// cleanupExpired periodically removes expired runs
func (rs *RunStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rs.mu.Lock()
		now := time.Now()
		for id, item := range rs.items {
			if now.After(item.expireTime) {
				delete(rs.items, id)
			}
		}
		rs.mu.Unlock()
	}
}
