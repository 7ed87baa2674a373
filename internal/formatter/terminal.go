package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(r *Report) ([]byte, error) {
	var b strings.Builder

	if r.Title != "" {
		f.writeHeader(&b, r.Title)
	}

	if len(r.Listings) > 0 {
		f.writeListings(&b, r.Listings, r.Saved)
	}
	if len(r.Jobs) > 0 {
		f.writeJobs(&b, r.Jobs, r.Applied)
	}
	if len(r.Chats) > 0 {
		f.writeChats(&b, r.Chats)
	}

	if len(r.Listings) == 0 && len(r.Jobs) == 0 && len(r.Chats) == 0 {
		b.WriteString("Nothing to show.\n")
	}

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder, title string) {
	width := len([]rune(title))
	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + title + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

func (f *terminalFormatter) writeListings(b *strings.Builder, listings []catalog.Listing, saved map[string]bool) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	fmt.Fprintf(b, "%s %d listing(s)\n", symbol, len(listings))

	items := make([]termfmt.TreeItem, 0, len(listings))
	for i, l := range listings {
		mark := emoji.GetEmoji("unsaved")
		if saved[l.ID] {
			mark = emoji.GetEmoji("saved")
		}

		seller := l.Seller.Name
		if l.Seller.Verified {
			seller += " " + emoji.GetEmoji("verified")
		}

		children := []termfmt.TreeItem{
			{Label: "Price", Value: priceLabel(l)},
			{Label: "Location", Value: l.Location},
			{Label: "Category", Value: l.Category.DisplayName()},
			{Label: "Seller", Value: seller},
		}
		if l.Seller.Rating > 0 {
			bar := termfmt.CreateConfidenceBar(l.Seller.Rating/5, f.opts)
			children = append(children, termfmt.TreeItem{Label: "Rating", Value: fmt.Sprintf("%s %.1f", bar, l.Seller.Rating)})
		}
		if len(l.Features) > 0 {
			children = append(children, termfmt.TreeItem{Label: "Features", Value: strings.Join(l.Features, ", ")})
		}
		children = append(children, termfmt.TreeItem{Label: "Posted", Value: l.PostedAt, Last: true})

		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %s %s", mark, emoji.GetEmoji(string(l.Category)), l.Title),
			Value:    "#" + l.ID,
			Children: children,
			Last:     i == len(listings)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeJobs(b *strings.Builder, jobs []catalog.JobListing, applied map[string]bool) {
	symbol := emoji.GetEmoji("jobs")
	fmt.Fprintf(b, "%s %d job(s)\n", symbol, len(jobs))

	items := make([]termfmt.TreeItem, 0, len(jobs))
	for i, j := range jobs {
		items = append(items, termfmt.TreeItem{
			Label: j.Title,
			Value: "#" + j.ID,
			Children: []termfmt.TreeItem{
				{Label: "Company", Value: j.Company},
				{Label: "Location", Value: j.Location},
				{Label: "Salary", Value: j.Salary},
				{Label: "Type", Value: string(j.Type)},
				{Label: "Applied", Value: yesNo(applied[j.ID]), Last: true},
			},
			Last: i == len(jobs)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeChats(b *strings.Builder, chats []catalog.ChatPreview) {
	unread := 0
	for _, c := range chats {
		unread += c.Unread
	}
	fmt.Fprintf(b, "%s %d conversation(s), %s unread\n", emoji.GetEmoji("messages"), len(chats), formatNumber(unread))

	for i, c := range chats {
		branch := "├─"
		if i == len(chats)-1 {
			branch = "└─"
		}
		badge := ""
		if c.Unread > 0 {
			badge = fmt.Sprintf(" (%d)", c.Unread)
		}
		fmt.Fprintf(b, "%s %s%s  %s  %s\n", branch, c.Name, badge, c.Timestamp, c.LastMessage)
	}
	b.WriteString("\n")
}

// priceLabel groups plain digit prices, leaving display strings like "15,000/mo" alone
func priceLabel(l catalog.Listing) string {
	price := l.Price
	if n, ok := plainNumber(price); ok {
		price = formatNumber(n)
	}
	if l.Currency == "" {
		return price
	}
	return price + " " + l.Currency
}

func plainNumber(s string) (int, bool) {
	if s == "" || len(s) > 15 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
