package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSavedRepo struct {
	ids  map[string]bool
	fail error
}

func (f *fakeSavedRepo) LoadSaved() ([]string, error) {
	var out []string
	for id, ok := range f.ids {
		if ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeSavedRepo) SetSaved(id string, saved bool) error {
	if f.fail != nil {
		return f.fail
	}
	f.ids[id] = saved
	return nil
}

func TestToggleFlipsOnce(t *testing.T) {
	s := NewSavedSet()

	saved, err := s.Toggle("1")
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, s.IsSaved("1"))
	assert.False(t, s.IsSaved("2"))
}

func TestToggleTwiceRoundTrips(t *testing.T) {
	for _, start := range []bool{false, true} {
		s := NewSavedSet()
		if start {
			_, _ = s.Toggle("x")
		}
		_, _ = s.Toggle("x")
		_, _ = s.Toggle("x")
		assert.Equal(t, start, s.IsSaved("x"))
	}
}

func TestToggleOrderMatters(t *testing.T) {
	s := NewSavedSet()
	for _, id := range []string{"a", "b", "a", "c", "b", "a"} {
		_, _ = s.Toggle(id)
	}
	assert.Equal(t, []string{"a", "c"}, s.IDs())
	assert.Equal(t, 2, s.Len())
}

func TestPersistentSavedSet(t *testing.T) {
	repo := &fakeSavedRepo{ids: map[string]bool{"2": true, "3": false}}
	s, err := NewPersistentSavedSet(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, s.IDs())

	_, err = s.Toggle("1")
	require.NoError(t, err)
	assert.True(t, repo.ids["1"])

	_, err = s.Toggle("2")
	require.NoError(t, err)
	assert.False(t, repo.ids["2"])
}

func TestPersistentToggleFailureKeepsMembership(t *testing.T) {
	repo := &fakeSavedRepo{ids: map[string]bool{}}
	s, err := NewPersistentSavedSet(repo)
	require.NoError(t, err)

	repo.fail = errors.New("disk full")
	saved, err := s.Toggle("1")
	assert.Error(t, err)
	assert.False(t, saved)
	assert.False(t, s.IsSaved("1"))
}
