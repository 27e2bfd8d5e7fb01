package store

import (
	"sort"
	"sync"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

// Snapshot is one published fetch-cycle result. The Records map must not be
// mutated after publication; Replace builds a fresh map each cycle.
type Snapshot struct {
	Records    map[string]vehicle.Record
	LastUpdate time.Time
	// FetchMillis is the measured duration of the cycle that produced this
	// snapshot.
	FetchMillis float64
}

// Vehicles returns the records as a slice ordered by ID, for stable
// serialization.
func (s Snapshot) Vehicles() []vehicle.Record {
	out := make([]vehicle.Record, 0, len(s.Records))
	for _, v := range s.Records {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Store exposes atomic replace and read of the current snapshot.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
}

func New() *Store {
	return &Store{current: Snapshot{Records: map[string]vehicle.Record{}}}
}

// Replace swaps in a new snapshot built from records and returns it. The
// caller hands over ownership of the map.
func (s *Store) Replace(records map[string]vehicle.Record, took time.Duration) Snapshot {
	snap := Snapshot{
		Records:     records,
		LastUpdate:  time.Now(),
		FetchMillis: float64(took.Microseconds()) / 1000.0,
	}
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	return snap
}

// Read returns the current snapshot. The returned value shares its record
// map with the published snapshot, which is immutable by contract.
func (s *Store) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
