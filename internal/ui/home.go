package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/logger"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui/components"
)

const (
	popularCityCount = 5
	placeholderCards = 3
)

type homeFocus int

const (
	focusListings homeFocus = iota
	focusCategories
)

// homeView is the featured grid with its category strip and search field
type homeView struct {
	sess *session.Session

	focus         homeFocus
	categoryIndex int
	category      catalog.Category // empty shows every category

	searching bool
	search    textinput.Model
	listings  *components.List

	width  int
	height int
}

func newHomeView(sess *session.Session) *homeView {
	h := &homeView{
		sess:   sess,
		search: components.NewTextInput("Search ETHIO..."),
	}
	h.listings = components.NewListingList("Featured", nil, sess.IsSaved, 80, 12)
	h.listings.SetFocused(true)
	return h
}

func (h *homeView) resize(width, height int) {
	h.width = width
	h.height = height
	h.search.Width = width - 7
	h.listings.Width = width
	h.listings.Height = height - 6 // search, strip and cities
}

// refresh recomputes the visible listings: a search query wins over the
// category filter
func (h *homeView) refresh() {
	cat := h.sess.Catalog()
	var listings []catalog.Listing
	title := "Featured"

	switch query := strings.TrimSpace(h.search.Value()); {
	case query != "":
		listings = cat.Search(query)
		title = "Results for \"" + query + "\""
	case h.category != "":
		listings = cat.ByCategory(h.category)
		title = h.category.DisplayName()
	default:
		listings = cat.Listings
	}

	h.listings.Title = title
	h.listings.SetItems(components.ListingItems(listings, h.sess.IsSaved))
}

func (h *homeView) beginSearch() {
	h.searching = true
	h.search.Focus()
	h.listings.SetFocused(false)
}

// endSearch leaves the search field, clearing the query when asked
func (h *homeView) endSearch(clear bool) {
	h.searching = false
	h.search.Blur()
	if clear {
		h.search.SetValue("")
	}
	h.listings.SetFocused(h.focus == focusListings)
	h.refresh()
}

func (h *homeView) toggleFocus() {
	if h.focus == focusListings {
		h.focus = focusCategories
	} else {
		h.focus = focusListings
	}
	h.listings.SetFocused(h.focus == focusListings)
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.home
	if h.searching {
		if msg.Type == tea.KeyEnter {
			h.endSearch(false)
			return m, nil
		}
		before := h.search.Value()
		var cmd tea.Cmd
		h.search, cmd = h.search.Update(msg)
		if h.search.Value() != before {
			h.refresh()
		}
		return m, cmd
	}

	switch msg.String() {
	case "/":
		h.beginSearch()
		return m, nil
	case "tab", "shift+tab":
		h.toggleFocus()
		return m, nil
	}

	if h.focus == focusCategories {
		return m.handleCategoryKey(msg)
	}
	if m.loading {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		h.listings.MoveUp()
	case "down", "j":
		h.listings.MoveDown()
	case "enter":
		if item := h.listings.GetSelectedItem(); item != nil {
			if m.sess.OpenListing(item.ID) {
				m.onEnter()
			}
		}
	case "s":
		if item := h.listings.GetSelectedItem(); item != nil {
			m.toggleSave(item.ID)
			h.refresh()
		}
	}
	return m, nil
}

func (m *Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.home
	categories := catalog.Categories()

	switch msg.String() {
	case "left", "h":
		if h.categoryIndex > 0 {
			h.categoryIndex--
		}
	case "right", "l":
		if h.categoryIndex < len(categories)-1 {
			h.categoryIndex++
		}
	case "enter":
		c := categories[h.categoryIndex]
		if c == h.category {
			h.category = ""
			h.refresh()
			return m, nil
		}
		if _, err := m.sess.ChooseCategory(c); err != nil {
			m.log.Error("category %s: %v", c, err)
			return m, nil
		}
		if m.sess.Current() != session.ViewHome {
			m.onEnter()
			return m, nil
		}
		h.category = c
		h.refresh()
	}
	return m, nil
}

// toggleSave flips the saved state of id and reports it on the status line
func (m *Model) toggleSave(id string) {
	saved, err := m.sess.ToggleSave(id)
	if err != nil {
		m.log.ErrorWithFields("saving listing failed", []logger.Field{logger.F("listing", id), logger.Error(err)})
		m.setError("Could not update saved items: %v", err)
		return
	}
	if saved {
		m.setStatus("%s Saved", emoji.GetEmoji("saved"))
	} else {
		m.setStatus("%s Removed from saved", emoji.GetEmoji("unsaved"))
	}
}

func (m *Model) renderHome(styles *Styles) string {
	h := m.home
	parts := []string{
		styles.Muted.Render(emoji.GetEmoji("search")+" ") + components.Field("", h.search.View(), h.searching, h.width-6),
		m.renderCategoryStrip(styles),
	}

	if m.loading {
		parts = append(parts, m.renderPlaceholders(styles))
	} else {
		parts = append(parts, h.listings.Render())
	}

	cities := m.sess.Catalog().PopularCities(popularCityCount)
	if len(cities) > 0 {
		parts = append(parts, styles.Muted.Render(emoji.GetEmoji("location")+" Popular: "+strings.Join(cities, " · ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderCategoryStrip(styles *Styles) string {
	h := m.home
	var tabs []string
	for i, c := range catalog.Categories() {
		label := emoji.GetEmoji(string(c)) + " " + c.DisplayName()
		style := styles.Tab
		if c == h.category {
			style = styles.ActiveTab
		}
		if h.focus == focusCategories && i == h.categoryIndex {
			style = styles.Selected.Padding(0, 1)
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderPlaceholders draws the shimmer cards shown while home is loading
func (m *Model) renderPlaceholders(styles *Styles) string {
	w := m.home.width - 4
	if w < 10 {
		w = 10
	}
	var cards []string
	for i := 0; i < placeholderCards; i++ {
		card := lipgloss.JoinVertical(lipgloss.Left,
			styles.Placeholder.Render(strings.Repeat(" ", w*2/3)),
			styles.Placeholder.Render(strings.Repeat(" ", w/3)),
		)
		cards = append(cards, styles.Card.Render(card))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
