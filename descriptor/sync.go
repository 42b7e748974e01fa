package descriptor

import "sync"

// syncMap is a thread-safe map
type syncMap[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

// Get returns a value from the map
func (m *syncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

// PutIfAbsent stores v under k unless a value is already present and
// returns the value that ends up in the map.
func (m *syncMap[K, V]) PutIfAbsent(k K, v V) V {
	m.mux.Lock()
	defer m.mux.Unlock()
	if prev, ok := m.m[k]; ok {
		return prev
	}
	m.m[k] = v
	return v
}

func newSyncMap[K comparable, V any]() *syncMap[K, V] {
	return &syncMap[K, V]{m: make(map[K]V)}
}
