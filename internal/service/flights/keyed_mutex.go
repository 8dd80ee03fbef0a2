package flights

import "sync"

// keyedMutex serializes the check-then-act sequence of assignment
// operations per flight number. Operations on different flights never
// contend with each other.
//
// Entries are never evicted: the map holds one mutex per flight number
// ever assigned against, which stays proportional to the flight
// population. The key is the flight number, so a rename concurrent
// with an assignment can momentarily run under two keys; the guarded
// seat UPDATE in the repository still keeps the counter non-negative
// in that window.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
