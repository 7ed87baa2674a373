package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/ui/components"
)

const profileListLimit = 5

// handleProfileKey has nothing to do: the theme toggle on this screen is the
// global t key
func (m *Model) handleProfileKey(tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m *Model) renderProfile(styles *Styles) string {
	w, _ := m.contentSize()

	counts := components.ProfileCounts{
		MyListings:  len(m.sess.MyListings()),
		Saved:       m.sess.Saved().Len(),
		AppliedJobs: len(m.sess.AppliedJobs()),
	}
	dashboard := components.CreateProfileStats(counts)
	cardWidth := (w - 6) / 3
	if cardWidth < 16 {
		cardWidth = 16
	}
	dashboard.SetCardSize(cardWidth, 3)

	themeLabel := emoji.GetEmoji("sun") + " Light mode"
	if m.sess.Theme().IsDark() {
		themeLabel = emoji.GetEmoji("moon") + " Dark mode"
	}

	parts := []string{
		styles.Header.Render(emoji.GetEmoji("profile") + " My Profile"),
		"",
		dashboard.Render(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Subheader.Render("Appearance: "),
			styles.Body.Render(themeLabel+"  "),
			styles.Button.Render("[t] Toggle"),
		),
	}

	mine := components.NewSummaryBox("My Listings", w)
	for i, l := range m.sess.MyListings() {
		if i == profileListLimit {
			break
		}
		mine.AddLine(l.Title + " · " + l.PriceLabel())
	}
	if len(mine.Content) == 0 {
		mine.AddLine("You have not posted anything yet")
	}

	saved := components.NewSummaryBox("Saved", w)
	for i, l := range m.sess.SavedListings() {
		if i == profileListLimit {
			break
		}
		saved.AddLine(emoji.GetEmoji("saved") + " " + l.Title)
	}
	if len(saved.Content) == 0 {
		saved.AddLine("No saved items")
	}

	applied := components.NewSummaryBox("Applied Jobs", w)
	for _, id := range m.sess.AppliedJobs() {
		for _, j := range m.sess.Catalog().Jobs {
			if j.ID == id {
				applied.AddLine(j.Title + " · " + j.Company)
			}
		}
	}
	if len(applied.Content) == 0 {
		applied.AddLine("No applications yet")
	}

	parts = append(parts, mine.Render(), saved.Render(), applied.Render())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
