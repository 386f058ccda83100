package storage

import "github.com/user/mindvault/internal/vault"

// Memory is an in-memory vault.Persister for tests and throwaway sessions.
// It behaves like an unwritten slot until the first Save.
type Memory struct {
	Snapshot []vault.Resource
	SaveErr  error // injected failure for tests
	Saves    int
	written  bool
}

func (m *Memory) Load() ([]vault.Resource, error) {
	if !m.written {
		return nil, ErrNotFound
	}
	return m.Snapshot, nil
}

func (m *Memory) Save(resources []vault.Resource) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Snapshot = append([]vault.Resource(nil), resources...)
	m.written = true
	return nil
}

// Preload marks the persister as written so the next Load returns Snapshot.
func (m *Memory) Preload(resources []vault.Resource) {
	m.Snapshot = resources
	m.written = true
}
