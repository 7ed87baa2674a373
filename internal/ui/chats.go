package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/emoji"
)

func (m *Model) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.chats.MoveUp()
	case "down", "j":
		m.chats.MoveDown()
	case "enter":
		if item := m.chats.GetSelectedItem(); item != nil {
			m.setStatus("%s Conversations open in the ETHIO app", emoji.GetEmoji("messages"))
		}
	}
	return m, nil
}

func (m *Model) renderMessages(styles *Styles) string {
	unread := m.sess.Catalog().UnreadCount()
	header := styles.Subheader.Render("Chats")
	if unread > 0 {
		header += " " + styles.Accent.Render(emoji.GetEmoji("bell")+" "+itoa(unread)+" unread")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.chats.Render())
}
