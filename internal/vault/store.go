package vault

import (
	"github.com/user/mindvault/internal/logger"
)

// Persister handles loading and saving the full resource sequence. Saves are
// whole-snapshot overwrites; there is no incremental write.
type Persister interface {
	Load() ([]Resource, error)
	Save([]Resource) error
}

// Store owns the in-memory resource sequence and is the only component that
// mutates it. Every mutation re-persists the full sequence through the
// injected Persister; a failed save is logged and otherwise ignored, so the
// in-memory state stays authoritative for the session. Not goroutine-safe:
// callers drive it from a single event loop.
type Store struct {
	resources []Resource
	persist   Persister
	log       logger.Logger
}

// Open loads the persisted snapshot through p. When the snapshot is absent
// or unreadable it falls back to the seed dataset so a first run is never
// empty.
func Open(p Persister, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{persist: p, log: log}

	resources, err := p.Load()
	if err != nil {
		log.Warn("loading persisted vault failed, using seed data", logger.Error(err))
		resources = Seed()
	}
	s.resources = resources
	return s
}

// Add normalizes a partially-specified resource, assigns it a fresh ID and
// creation time, and prepends it to the sequence. It always succeeds.
func (s *Store) Add(partial Resource) Resource {
	partial.ID = ""
	partial.CreatedAt = 0
	r := Normalize(partial)
	s.resources = append([]Resource{r}, s.resources...)
	s.flush()
	return r
}

// Delete removes the resource with the given ID. Removing an unknown ID is
// a no-op, not an error.
func (s *Store) Delete(id string) {
	for i, r := range s.resources {
		if r.ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			s.flush()
			return
		}
	}
}

// UpdateNotes replaces the user notes on the resource with the given ID,
// leaving every other field untouched. Unknown IDs are a no-op.
func (s *Store) UpdateNotes(id, notes string) {
	for i := range s.resources {
		if s.resources[i].ID == id {
			s.resources[i].UserNotes = notes
			s.flush()
			return
		}
	}
}

// ReplaceAll discards the current sequence and installs resources wholesale.
// Used by import; the caller is responsible for prior normalization.
func (s *Store) ReplaceAll(resources []Resource) {
	if resources == nil {
		resources = []Resource{}
	}
	s.resources = resources
	s.flush()
}

// List returns the current sequence in raw insertion order (newest first).
// Callers must not mutate the returned slice.
func (s *Store) List() []Resource {
	return s.resources
}

// Len reports the number of stored resources.
func (s *Store) Len() int {
	return len(s.resources)
}

// Get returns the resource with the given ID, if present.
func (s *Store) Get(id string) (Resource, bool) {
	for _, r := range s.resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

func (s *Store) flush() {
	if err := s.persist.Save(s.resources); err != nil {
		s.log.Warn("persisting vault failed, in-memory state kept", logger.Error(err))
	}
}
