package session

import "fmt"

// View identifies the screen currently shown
type View int

const (
	ViewHome View = iota
	ViewDetail
	ViewPost
	ViewJobs
	ViewMessages
	ViewProfile

	viewCount
)

// Views returns every view in declaration order
func Views() []View {
	views := make([]View, 0, viewCount)
	for v := ViewHome; v < viewCount; v++ {
		views = append(views, v)
	}
	return views
}

// Valid reports whether v is one of the known views
func (v View) Valid() bool {
	return v >= ViewHome && v < viewCount
}

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewDetail:
		return "detail"
	case ViewPost:
		return "post"
	case ViewJobs:
		return "jobs"
	case ViewMessages:
		return "messages"
	case ViewProfile:
		return "profile"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// ShowsNavBar reports whether the bottom navigation is visible on v
func (v View) ShowsNavBar() bool {
	return v != ViewDetail && v != ViewPost
}

// ParseView parses a view name
func ParseView(s string) (View, error) {
	for _, v := range Views() {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}
