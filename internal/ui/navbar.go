package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/session"
)

type navItem struct {
	key   string
	view  session.View
	icon  string
	label string
}

var navItems = []navItem{
	{"1", session.ViewHome, "home", "Home"},
	{"2", session.ViewJobs, "jobs", "Jobs"},
	{"3", session.ViewPost, "post", "Post"},
	{"4", session.ViewMessages, "messages", "Chat"},
	{"5", session.ViewProfile, "profile", "Profile"},
}

// navTarget maps a nav bar hotkey to its view
func navTarget(key string) (session.View, bool) {
	for _, it := range navItems {
		if it.key == key {
			return it.view, true
		}
	}
	return 0, false
}

func (m *Model) renderNavBar(styles *Styles) string {
	current := m.sess.Current()
	tabs := make([]string, 0, len(navItems))
	for _, it := range navItems {
		label := it.key + " " + emoji.GetEmoji(it.icon) + " " + it.label
		st := styles.Tab
		switch {
		case it.view == current:
			st = styles.ActiveTab
		case it.view == session.ViewPost:
			st = styles.Accent.Padding(0, 1)
		}
		tabs = append(tabs, st.Render(label))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	help := styles.Muted.Render("t theme · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, strings.Repeat("─", lipgloss.Width(bar)), bar, help)
}

func (m *Model) renderTopBar(styles *Styles) string {
	brand := styles.Title.Render(emoji.GetEmoji("brand") + " ETHIO")

	themeIcon := emoji.GetEmoji("sun")
	if m.sess.Theme().IsDark() {
		themeIcon = emoji.GetEmoji("moon")
	}

	right := themeIcon
	if unread := m.sess.Catalog().UnreadCount(); unread > 0 {
		right = emoji.GetEmoji("bell") + " " + itoa(unread) + "  " + right
	}

	w, _ := m.contentSize()
	gap := w - lipgloss.Width(brand) - lipgloss.Width(right) - 2 // bar padding
	if gap < 1 {
		gap = 1
	}
	return styles.TopBar.Width(w).Render(brand + strings.Repeat(" ", gap) + right)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
