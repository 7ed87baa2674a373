package session

import (
	"sort"

	"github.com/afrotie/ethio/internal/catalog"
)

// Session is the application state shared by every view. Navigation, the
// saved set and the theme are reachable only through their own contracts.
type Session struct {
	nav     *Navigator
	saved   *SavedSet
	theme   *Theme
	catalog *catalog.Catalog

	draft      *Draft
	myListings []catalog.Listing
	applied    map[string]struct{}
}

// New composes a session on home. A nil saved set starts empty and a nil
// catalog falls back to the built-in records.
func New(cat *catalog.Catalog, saved *SavedSet, theme *Theme) *Session {
	if cat == nil {
		cat = catalog.Default()
	}
	if saved == nil {
		saved = NewSavedSet()
	}
	if theme == nil {
		theme = NewTheme(NewMemoryStore(), nil, nil)
	}
	return &Session{
		nav:     NewNavigator(),
		saved:   saved,
		theme:   theme,
		catalog: cat,
		applied: make(map[string]struct{}),
	}
}

func (s *Session) Saved() *SavedSet          { return s.saved }
func (s *Session) Theme() *Theme             { return s.theme }
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }
func (s *Session) Current() View             { return s.nav.Current() }
func (s *Session) MyListings() []catalog.Listing {
	out := make([]catalog.Listing, len(s.myListings))
	copy(out, s.myListings)
	return out
}

// Selected returns the listing last opened in detail
func (s *Session) Selected() (catalog.Listing, bool) {
	return s.nav.Selected()
}

// SetCatalog swaps the record source, used when the catalog file is reloaded
func (s *Session) SetCatalog(c *catalog.Catalog) {
	if c != nil {
		s.catalog = c
	}
}

// SetView navigates to v, creating or discarding the post draft as post is
// entered or left
func (s *Session) SetView(v View) error {
	prev := s.nav.Current()
	if err := s.nav.SetView(v); err != nil {
		return err
	}
	s.syncDraft(prev)
	return nil
}

// SelectListingAndShow opens detail for l
func (s *Session) SelectListingAndShow(l catalog.Listing) {
	prev := s.nav.Current()
	s.nav.SelectListingAndShow(l)
	s.syncDraft(prev)
}

// OpenListing opens detail for the listing with id, searching the catalog and
// the user's own listings
func (s *Session) OpenListing(id string) bool {
	l, ok := s.FindListing(id)
	if !ok {
		return false
	}
	s.SelectListingAndShow(l)
	return true
}

// FindListing looks up id in the catalog and the user's own listings
func (s *Session) FindListing(id string) (catalog.Listing, bool) {
	if l, ok := s.catalog.Find(id); ok {
		return l, true
	}
	for _, l := range s.myListings {
		if l.ID == id {
			return l, true
		}
	}
	return catalog.Listing{}, false
}

// Back handles the back action. Inside the post wizard it steps back one
// wizard step first and leaves post only from step 1.
func (s *Session) Back() {
	prev := s.nav.Current()
	if prev == ViewPost && s.draft != nil && !s.draft.Back() {
		return
	}
	s.nav.Back()
	s.syncDraft(prev)
}

// Draft returns the active post draft
func (s *Session) Draft() (*Draft, bool) {
	return s.draft, s.draft != nil
}

// SubmitDraft publishes the draft to My Listings and returns home
func (s *Session) SubmitDraft() (catalog.Listing, error) {
	if s.draft == nil {
		return catalog.Listing{}, ErrNoDraft
	}
	l, err := s.draft.Listing()
	if err != nil {
		return catalog.Listing{}, err
	}
	s.myListings = append(s.myListings, l)
	if err := s.SetView(ViewHome); err != nil {
		return l, err
	}
	return l, nil
}

// ToggleSave flips the saved state of id
func (s *Session) ToggleSave(id string) (bool, error) {
	return s.saved.Toggle(id)
}

// IsSaved reports whether id is saved
func (s *Session) IsSaved(id string) bool {
	return s.saved.IsSaved(id)
}

// SavedListings resolves the saved ids to listings, skipping unknown ids
func (s *Session) SavedListings() []catalog.Listing {
	var out []catalog.Listing
	for _, id := range s.saved.IDs() {
		if l, ok := s.FindListing(id); ok {
			out = append(out, l)
		}
	}
	return out
}

// ChooseCategory handles a tap on the category strip. Jobs opens the jobs
// board; other categories return the filtered listings and stay on home.
func (s *Session) ChooseCategory(c catalog.Category) ([]catalog.Listing, error) {
	if c == catalog.CategoryJobs {
		return nil, s.SetView(ViewJobs)
	}
	return s.catalog.ByCategory(c), nil
}

// ApplyJob marks a job as applied to and reports whether it was new
func (s *Session) ApplyJob(id string) bool {
	if _, ok := s.applied[id]; ok {
		return false
	}
	s.applied[id] = struct{}{}
	return true
}

// HasApplied reports whether the user applied to job id
func (s *Session) HasApplied(id string) bool {
	_, ok := s.applied[id]
	return ok
}

// AppliedJobs returns the applied job ids sorted
func (s *Session) AppliedJobs() []string {
	out := make([]string, 0, len(s.applied))
	for id := range s.applied {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Session) syncDraft(prev View) {
	cur := s.nav.Current()
	switch {
	case prev != ViewPost && cur == ViewPost:
		s.draft = NewDraft()
	case prev == ViewPost && cur != ViewPost:
		if s.draft != nil {
			s.draft.invalidate()
		}
		s.draft = nil
	}
}
