package session

import "errors"

var (
	// ErrUnknownView is returned for a navigation target outside the View set
	ErrUnknownView = errors.New("unknown view")

	// ErrDetailRequiresSelection is returned when detail is requested without a listing
	ErrDetailRequiresSelection = errors.New("detail view is reachable only by selecting a listing")

	// ErrNoDraft is returned when a draft operation runs outside the post view
	ErrNoDraft = errors.New("no post draft is active")

	// ErrTitleRequired gates the description assistant on an empty title
	ErrTitleRequired = errors.New("title is required")

	// ErrCategoryRequired gates the description assistant on an unset category
	ErrCategoryRequired = errors.New("category is required")
)
