package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar is a horizontal bar driven by a percentage
type ProgressBar struct {
	Width       int
	Percent     int
	Label       string
	ShowPercent bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{
		Width:       width,
		ShowPercent: true,
	}
}

// SetPercent updates the progress, clamped to 0..100
func (p *ProgressBar) SetPercent(percent int) {
	switch {
	case percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	p.Percent = percent
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label string) {
	p.Label = label
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	progressStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	width := p.Width
	if width < 1 {
		width = 1
	}
	filledWidth := width * p.Percent / 100
	emptyWidth := width - filledWidth

	bar := progressStyle.Render(strings.Repeat("█", filledWidth)) +
		mutedStyle.Render(strings.Repeat("░", emptyWidth))

	result := bar
	if p.ShowPercent {
		result = fmt.Sprintf("%s %3d%%", bar, p.Percent)
	}
	if p.Label != "" {
		result = p.Label + "\n" + result
	}
	return result
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	style := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	spinner := style.Render(spinnerFrames[s.Frame%len(spinnerFrames)])

	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}
