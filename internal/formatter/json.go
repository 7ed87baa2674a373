package formatter

import (
	"encoding/json"

	"github.com/afrotie/ethio/internal/catalog"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by --output json
type JSONOutput struct {
	Title    string                `json:"title,omitempty"`
	Listings []ListingOutput       `json:"listings,omitempty"`
	Jobs     []JobOutput           `json:"jobs,omitempty"`
	Chats    []catalog.ChatPreview `json:"chats,omitempty"`
	Unread   int                   `json:"unread,omitempty"`
}

// ListingOutput is a listing plus its saved flag
type ListingOutput struct {
	catalog.Listing
	Saved bool `json:"saved"`
}

// JobOutput is a job plus its applied flag
type JobOutput struct {
	catalog.JobListing
	Applied bool `json:"applied"`
}

func (f *jsonFormatter) Format(r *Report) ([]byte, error) {
	out := &JSONOutput{Title: r.Title}

	for _, l := range r.Listings {
		out.Listings = append(out.Listings, ListingOutput{Listing: l, Saved: r.Saved[l.ID]})
	}
	for _, j := range r.Jobs {
		out.Jobs = append(out.Jobs, JobOutput{JobListing: j, Applied: r.Applied[j.ID]})
	}
	if len(r.Chats) > 0 {
		out.Chats = r.Chats
		for _, c := range r.Chats {
			out.Unread += c.Unread
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
