package formatter

import (
	"fmt"
	"strings"

	"github.com/afrotie/ethio/internal/catalog"
)

// markdownFormatter formats output as Markdown tables
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(r *Report) ([]byte, error) {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "ETHIO"
	}
	b.WriteString("# " + title + "\n\n")

	if len(r.Listings) > 0 {
		f.writeListings(&b, r.Listings, r.Saved)
	}
	if len(r.Jobs) > 0 {
		f.writeJobs(&b, r.Jobs, r.Applied)
	}
	if len(r.Chats) > 0 {
		f.writeChats(&b, r.Chats)
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeListings(b *strings.Builder, listings []catalog.Listing, saved map[string]bool) {
	b.WriteString("## Listings\n\n")
	b.WriteString("| ID | Title | Price | Location | Category | Seller | Saved |\n")
	b.WriteString("|----|-------|-------|----------|----------|--------|-------|\n")
	for _, l := range listings {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			l.ID, escapeCell(l.Title), escapeCell(priceLabel(l)), escapeCell(l.Location),
			l.Category.DisplayName(), escapeCell(l.Seller.Name), yesNo(saved[l.ID]))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeJobs(b *strings.Builder, jobs []catalog.JobListing, applied map[string]bool) {
	b.WriteString("## Jobs\n\n")
	b.WriteString("| ID | Title | Company | Location | Salary | Type | Applied |\n")
	b.WriteString("|----|-------|---------|----------|--------|------|---------|\n")
	for _, j := range jobs {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			j.ID, escapeCell(j.Title), escapeCell(j.Company), escapeCell(j.Location),
			escapeCell(j.Salary), j.Type, yesNo(applied[j.ID]))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeChats(b *strings.Builder, chats []catalog.ChatPreview) {
	b.WriteString("## Messages\n\n")
	for _, c := range chats {
		fmt.Fprintf(b, "- **%s** (%s): %s", escapeCell(c.Name), c.Timestamp, escapeCell(c.LastMessage))
		if c.Unread > 0 {
			fmt.Fprintf(b, " _%d unread_", c.Unread)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
