package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string
	Icon        string
	Badge       string
}

// List represents a navigable list component
type List struct {
	Title         string
	Items         []ListItem
	Selected      int
	Focused       bool
	Width         int
	Height        int
	ShowNumbers   bool
	ShowIcons     bool
	EmptyText     string
	searchQuery   string
	filteredItems []int // indices into Items
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:     title,
		Width:     width,
		Height:    height,
		ShowIcons: true,
		EmptyText: "Nothing here yet",
	}
}

// AddItem adds an item to the list
func (l *List) AddItem(item *ListItem) {
	l.Items = append(l.Items, *item)
	l.updateFilter()
}

// SetItems replaces the items, keeping the cursor in range
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.updateFilter()
	if l.Selected >= len(l.filteredItems) {
		l.Selected = len(l.filteredItems) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// Len returns the number of visible items
func (l *List) Len() int {
	return len(l.filteredItems)
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if len(l.filteredItems) == 0 || l.Selected >= len(l.filteredItems) {
		return nil
	}
	index := l.filteredItems[l.Selected]
	if index >= len(l.Items) {
		return nil
	}
	return &l.Items[index]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.filteredItems)-1 {
		l.Selected++
	}
}

// SetSearch sets the search query and filters items
func (l *List) SetSearch(query string) {
	l.searchQuery = query
	l.Selected = 0
	l.updateFilter()
}

// Search returns the active query
func (l *List) Search() string {
	return l.searchQuery
}

func (l *List) updateFilter() {
	l.filteredItems = l.filteredItems[:0]
	for i := range l.Items {
		if l.searchQuery == "" || matchesSearch(&l.Items[i], l.searchQuery) {
			l.filteredItems = append(l.filteredItems, i)
		}
	}
}

func matchesSearch(item *ListItem, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query)
}

// Render renders the list
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	var content []string
	if l.Title != "" {
		content = append(content, headerStyle.Render(l.Title))
	}

	if l.searchQuery != "" {
		searchText := fmt.Sprintf("Search: %s (%d results)", l.searchQuery, len(l.filteredItems))
		content = append(content, normalStyle.Render(searchText))
	}

	if len(l.filteredItems) == 0 {
		content = append(content, normalStyle.Italic(true).Render(l.EmptyText))
		return l.frame(content)
	}

	maxVisible := l.Height - 4 // title, search line and border
	if maxVisible < 1 {
		maxVisible = 1
	}

	startIndex := 0
	if l.Selected >= maxVisible {
		startIndex = l.Selected - maxVisible + 1
	}
	endIndex := startIndex + maxVisible
	if endIndex > len(l.filteredItems) {
		endIndex = len(l.filteredItems)
	}

	for i := startIndex; i < endIndex; i++ {
		item := l.Items[l.filteredItems[i]]
		content = append(content, l.renderItem(&item, i+1, l.Focused && i == l.Selected))
	}

	if len(l.filteredItems) > maxVisible {
		scrollInfo := fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(l.filteredItems))
		content = append(content, normalStyle.Render(scrollInfo))
	}

	return l.frame(content)
}

func (l *List) frame(content []string) string {
	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	border := borderColor
	if l.Focused {
		border = primaryColor
	}
	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	if l.Width > 4 {
		panelStyle = panelStyle.Width(l.Width - 2)
	}
	return panelStyle.Render(joined)
}

func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string

	if selected {
		parts = append(parts, "▶")
	} else {
		parts = append(parts, " ")
	}
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if l.ShowIcons && item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	title := item.Title
	if item.Description != "" {
		title += " · " + item.Description
	}
	parts = append(parts, title)
	if item.Badge != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(accentColor).Bold(true).Render(item.Badge))
	}

	line := strings.Join(parts, " ")

	var style lipgloss.Style
	if selected {
		style = lipgloss.NewStyle().Background(selectedColor).Foreground(primaryColor).Bold(true)
	} else {
		style = lipgloss.NewStyle().Foreground(statusColor(item.Status))
	}
	if l.Width > 6 {
		style = style.MaxWidth(l.Width - 6)
	}
	return style.Render(line)
}

// NewListingList creates a list of marketplace listings. saved reports
// whether a listing id is in the saved set.
func NewListingList(title string, listings []catalog.Listing, saved func(string) bool, width, height int) *List {
	list := NewList(title, width, height)
	list.EmptyText = "No listings found"
	list.SetItems(ListingItems(listings, saved))
	return list
}

// ListingItems converts listings to list rows
func ListingItems(listings []catalog.Listing, saved func(string) bool) []ListItem {
	items := make([]ListItem, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		badge := ""
		if saved != nil && saved(l.ID) {
			badge = emoji.GetEmoji("saved")
		}
		items = append(items, ListItem{
			ID:          l.ID,
			Title:       l.Title,
			Description: fmt.Sprintf("%s · %s %s", l.PriceLabel(), emoji.GetEmoji("location"), l.Location),
			Status:      "success",
			Icon:        emoji.GetEmoji(string(l.Category)),
			Badge:       badge,
		})
	}
	return items
}

// NewJobList creates a list of job openings. applied reports whether the
// user already applied to a job id.
func NewJobList(jobs []catalog.JobListing, applied func(string) bool, width, height int) *List {
	list := NewList("Jobs", width, height)
	list.EmptyText = "No openings right now"

	for _, job := range jobs {
		status := "info"
		badge := string(job.Type)
		if applied != nil && applied(job.ID) {
			status = "success"
			badge = emoji.GetEmoji("success") + " Applied"
		}
		list.AddItem(&ListItem{
			ID:          job.ID,
			Title:       job.Title,
			Description: fmt.Sprintf("%s · %s · %s", job.Company, job.Location, job.Salary),
			Status:      status,
			Icon:        emoji.GetEmoji("jobs"),
			Badge:       badge,
		})
	}

	return list
}

// NewChatList creates the messages list
func NewChatList(chats []catalog.ChatPreview, width, height int) *List {
	list := NewList("Messages", width, height)
	list.EmptyText = "No conversations yet"

	for _, chat := range chats {
		status := "muted"
		badge := ""
		if chat.Unread > 0 {
			status = "accent"
			badge = fmt.Sprintf("(%d)", chat.Unread)
		}
		list.AddItem(&ListItem{
			ID:          chat.ID,
			Title:       chat.Name,
			Description: fmt.Sprintf("%s · %s", chat.LastMessage, chat.Timestamp),
			Status:      status,
			Icon:        emoji.GetEmoji("messages"),
			Badge:       badge,
		})
	}

	return list
}
