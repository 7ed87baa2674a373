package session

import (
	"fmt"

	"github.com/afrotie/ethio/internal/catalog"
)

// Navigator is the view state machine. It keeps no history: leaving detail or
// post always returns home.
type Navigator struct {
	current  View
	selected *catalog.Listing
}

// NewNavigator returns a navigator positioned on home
func NewNavigator() *Navigator {
	return &Navigator{current: ViewHome}
}

// Current returns the active view
func (n *Navigator) Current() View {
	return n.current
}

// SetView transitions to v. Detail is rejected because it needs a selection,
// see SelectListingAndShow.
func (n *Navigator) SetView(v View) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownView, int(v))
	}
	if v == ViewDetail {
		return ErrDetailRequiresSelection
	}
	n.current = v
	return nil
}

// SelectListingAndShow records the listing and enters detail in one step
func (n *Navigator) SelectListingAndShow(l catalog.Listing) {
	n.selected = &l
	n.current = ViewDetail
}

// Selected returns the listing last chosen for detail. The reference stays set
// after leaving detail and is replaced by the next selection.
func (n *Navigator) Selected() (catalog.Listing, bool) {
	if n.selected == nil {
		return catalog.Listing{}, false
	}
	return *n.selected, true
}

// Back handles the back action: detail and post return home, other views stay put
func (n *Navigator) Back() {
	switch n.current {
	case ViewDetail, ViewPost:
		n.current = ViewHome
	case ViewHome, ViewJobs, ViewMessages, ViewProfile:
	}
}
