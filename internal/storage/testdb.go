package storage

import "testing"

// NewTestStore returns a Store backed by a fresh in-memory database that is
// closed when the test ends.
func NewTestStore(t testing.TB) *Store {
	t.Helper()

	s, err := OpenStore(MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}
