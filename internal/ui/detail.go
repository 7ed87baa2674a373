package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/imaging"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui/components"
)

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l, ok := m.sess.Selected()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "b", "backspace":
		return m.handleEscape()
	case "s":
		m.toggleSave(l.ID)
		m.home.refresh()
	case "p":
		if l.Seller.Phone == "" {
			m.setStatus("%s has not shared a phone number", l.Seller.Name)
		} else {
			m.setStatus("%s Call %s: %s", emoji.GetEmoji("phone"), l.Seller.Name, l.Seller.Phone)
		}
	case "c":
		return m.navigate(session.ViewMessages)
	}
	return m, nil
}

func (m *Model) renderDetail(styles *Styles) string {
	l, ok := m.sess.Selected()
	if !ok {
		return styles.Muted.Render("No listing selected")
	}

	w, _ := m.contentSize()
	wrap := lipgloss.NewStyle().Width(w - 4)

	saved := emoji.GetEmoji("unsaved") + " Save"
	if m.sess.IsSaved(l.ID) {
		saved = emoji.GetEmoji("saved") + " Saved"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Muted.Render(emoji.GetEmoji("back")+" [esc] "),
		styles.Subheader.Render(l.Category.DisplayName()),
	)

	image := emoji.GetEmoji("camera") + " " + l.Image
	if imaging.IsRef(l.Image) {
		if photo, ok := m.photos.Get(l.Image); ok {
			image = fmt.Sprintf("%s %s (%dx%d)", emoji.GetEmoji("camera"), photo.Name, photo.Width, photo.Height)
		}
	}

	parts := []string{
		header,
		"",
		styles.Header.Render(l.Title),
		styles.Price.Render(l.PriceLabel()),
		styles.Muted.Render(fmt.Sprintf("%s %s · %s", emoji.GetEmoji("location"), l.Location, l.PostedAt)),
		styles.Muted.Render(image),
		"",
		styles.Subheader.Render("Description"),
		wrap.Render(styles.Body.Render(l.Description)),
	}

	if len(l.Features) > 0 {
		parts = append(parts, "", styles.Subheader.Render("Features"))
		for _, f := range l.Features {
			parts = append(parts, styles.Body.Render("  • "+f))
		}
	}

	seller := components.NewSummaryBox("Seller", w/2)
	name := l.Seller.Name
	if l.Seller.Verified {
		name += " " + emoji.GetEmoji("verified")
	}
	seller.AddKeyValue("Name", name)
	if l.Seller.Rating > 0 {
		seller.AddKeyValue("Rating", fmt.Sprintf("%s %.1f", emoji.GetEmoji("rating"), l.Seller.Rating))
	}
	if l.Seller.Phone != "" {
		seller.AddKeyValue("Phone", l.Seller.Phone)
	}
	parts = append(parts, "", seller.Render())

	actions := []string{
		styles.Button.Render("[c] Chat"),
		styles.Tab.Render("[p] Call"),
		styles.Tab.Render("[s] " + saved),
	}
	parts = append(parts, "", strings.Join(actions, " "))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
