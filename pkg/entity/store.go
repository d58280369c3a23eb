// pkg/entity/store.go
package entity

import "sync"

// Store owns every vehicle in a simulation, keyed by entity ID.
// It is safe for concurrent readers; the engine is the only writer
// during a tick.
type Store struct {
	mu       sync.RWMutex
	vehicles map[uint64]*Vehicle
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{vehicles: make(map[uint64]*Vehicle)}
}

// Add registers a vehicle and returns its ID.
func (s *Store) Add(v *Vehicle) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID()] = v
	return v.ID()
}

// Remove deletes a vehicle and all of its component state, including
// any in-progress scripted flight.
func (s *Store) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vehicles, id)
}

// Get returns the vehicle with the given ID, or nil.
func (s *Store) Get(id uint64) *Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vehicles[id]
}

// Len returns the number of registered vehicles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}

// Each calls fn for every vehicle. The snapshot is taken under the
// read lock so fn may safely mutate vehicle components.
func (s *Store) Each(fn func(*Vehicle)) {
	s.mu.RLock()
	snapshot := make([]*Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		snapshot = append(snapshot, v)
	}
	s.mu.RUnlock()

	for _, v := range snapshot {
		fn(v)
	}
}
