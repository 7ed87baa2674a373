package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/afrotie/ethio/internal/catalog"
)

// Post wizard steps
const (
	StepCategory = 1
	StepDetails  = 2
	StepPhotos   = 3
)

const (
	draftCurrency = "ETB"
	draftSeller   = "You"
	draftPostedAt = "Just now"
)

// AssistRequest is what the description assistant needs for one call. Ticket
// must be handed back to ApplyAssist or FailAssist.
type AssistRequest struct {
	Ticket   uint64
	Title    string
	Category catalog.Category
	Features string
}

// Draft is the in-progress listing of the post wizard. It lives only while
// the post view is active.
type Draft struct {
	step     int
	category catalog.Category

	Title       string
	Price       string
	Location    string
	Description string
	Features    string

	images []string

	assistTicket  uint64
	assistPending bool
	assistErr     error
}

// NewDraft returns an empty draft on the category step
func NewDraft() *Draft {
	return &Draft{step: StepCategory}
}

// Step returns the wizard step, 1..3
func (d *Draft) Step() int { return d.step }

// Category returns the chosen category, empty until step 1 is done
func (d *Draft) Category() catalog.Category { return d.category }

// Images returns the attached image refs
func (d *Draft) Images() []string {
	out := make([]string, len(d.images))
	copy(out, d.images)
	return out
}

// SelectCategory records the category and advances to the details step
func (d *Draft) SelectCategory(c catalog.Category) error {
	if !c.Valid() {
		return fmt.Errorf("invalid category: %q", c)
	}
	d.category = c
	d.step = StepDetails
	return nil
}

// Next advances from details to photos
func (d *Draft) Next() {
	if d.step == StepDetails {
		d.step = StepPhotos
	}
}

// Back moves to the previous step. It returns true on step 1, where back
// means leaving the wizard.
func (d *Draft) Back() bool {
	if d.step <= StepCategory {
		return true
	}
	d.step--
	return false
}

// AddImage attaches an image ref
func (d *Draft) AddImage(ref string) {
	if ref != "" {
		d.images = append(d.images, ref)
	}
}

// BeginAssist issues a new assistant request. A later BeginAssist supersedes
// every earlier ticket.
func (d *Draft) BeginAssist() (AssistRequest, error) {
	if strings.TrimSpace(d.Title) == "" {
		return AssistRequest{}, ErrTitleRequired
	}
	if d.category == "" {
		return AssistRequest{}, ErrCategoryRequired
	}
	d.assistTicket++
	d.assistPending = true
	d.assistErr = nil
	return AssistRequest{
		Ticket:   d.assistTicket,
		Title:    d.Title,
		Category: d.category,
		Features: d.Features,
	}, nil
}

// ApplyAssist replaces the description with text if ticket is current
func (d *Draft) ApplyAssist(ticket uint64, text string) bool {
	if !d.currentTicket(ticket) {
		return false
	}
	d.assistPending = false
	if text != "" {
		d.Description = text
	}
	return true
}

// FailAssist records err as the inline hint if ticket is current. The
// description is left as it was.
func (d *Draft) FailAssist(ticket uint64, err error) bool {
	if !d.currentTicket(ticket) {
		return false
	}
	d.assistPending = false
	d.assistErr = err
	return true
}

// AssistPending reports whether a request is in flight
func (d *Draft) AssistPending() bool { return d.assistPending }

// AssistError returns the last assistant failure, nil after a success
func (d *Draft) AssistError() error { return d.assistErr }

func (d *Draft) invalidate() {
	d.assistTicket++
	d.assistPending = false
}

func (d *Draft) currentTicket(ticket uint64) bool {
	return d.assistPending && ticket == d.assistTicket
}

// Listing builds the listing the draft describes
func (d *Draft) Listing() (catalog.Listing, error) {
	if d.category == "" {
		return catalog.Listing{}, ErrCategoryRequired
	}
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return catalog.Listing{}, ErrTitleRequired
	}
	l := catalog.Listing{
		ID:          uuid.NewString(),
		Title:       title,
		Price:       strings.TrimSpace(d.Price),
		Currency:    draftCurrency,
		Location:    d.Location,
		Category:    d.category,
		Description: strings.TrimSpace(d.Description),
		Features:    splitFeatures(d.Features),
		Seller:      catalog.Seller{Name: draftSeller},
		PostedAt:    draftPostedAt,
	}
	if len(d.images) > 0 {
		l.Image = d.images[0]
	}
	return l, nil
}

func splitFeatures(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
