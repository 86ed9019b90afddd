package visitor

import "sync"

// SyncMap is a thread-safe map
type SyncMap[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

// Get returns a value from the map
func (m *SyncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

// GetOrCompute returns cached value or computes and stores a new one
func (m *SyncMap[K, V]) GetOrCompute(k K, compute func() V) V {
	if v, ok := m.Get(k); ok {
		return v
	}
	v := compute()
	m.mux.Lock()
	defer m.mux.Unlock()
	if existing, ok := m.m[k]; ok {
		return existing
	}
	m.m[k] = v
	return v
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}
