package session

import "sort"

// SavedRepository persists saved listing ids across restarts
type SavedRepository interface {
	LoadSaved() ([]string, error)
	SetSaved(id string, saved bool) error
}

// SavedSet is the set of listing ids the user hearted
type SavedSet struct {
	ids  map[string]struct{}
	repo SavedRepository
}

// NewSavedSet returns an empty, session-only set
func NewSavedSet() *SavedSet {
	return &SavedSet{ids: make(map[string]struct{})}
}

// NewPersistentSavedSet loads the set from repo and writes every toggle through to it
func NewPersistentSavedSet(repo SavedRepository) (*SavedSet, error) {
	s := NewSavedSet()
	ids, err := repo.LoadSaved()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.repo = repo
	return s, nil
}

// Toggle flips membership of id and returns the new membership. When the set
// is persistent and the write fails, membership is left unchanged.
func (s *SavedSet) Toggle(id string) (bool, error) {
	_, present := s.ids[id]
	if s.repo != nil {
		if err := s.repo.SetSaved(id, !present); err != nil {
			return present, err
		}
	}
	if present {
		delete(s.ids, id)
		return false, nil
	}
	s.ids[id] = struct{}{}
	return true, nil
}

// IsSaved reports membership of id
func (s *SavedSet) IsSaved(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of saved ids
func (s *SavedSet) Len() int {
	return len(s.ids)
}

// IDs returns the saved ids sorted
func (s *SavedSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
