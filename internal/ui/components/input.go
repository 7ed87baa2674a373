package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NewTextInput returns a blurred single-line field in the app palette with a
// steady cursor
func NewTextInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(primaryColor)
	_ = in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// NewTextArea returns a blurred multi-line field without line numbers.
// A limit of zero means unlimited.
func NewTextArea(placeholder string, height, limit int) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = limit
	ta.SetHeight(height)

	placeholderStyle := lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = placeholderStyle
	ta.BlurredStyle.Placeholder = placeholderStyle
	ta.Cursor.Style = lipgloss.NewStyle().Foreground(primaryColor)
	_ = ta.Cursor.SetMode(cursor.CursorStatic)
	ta.Blur()
	return ta
}

// Field frames a widget view under its label. The focused field gets the
// primary color.
func Field(label, view string, focused bool, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	fieldStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(borderColor)
	if focused {
		labelStyle = labelStyle.Foreground(primaryColor)
		fieldStyle = fieldStyle.BorderForeground(primaryColor)
	}
	if width > 0 {
		fieldStyle = fieldStyle.Width(width)
	}

	var b strings.Builder
	if label != "" {
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fieldStyle.Render(view))
	return b.String()
}
