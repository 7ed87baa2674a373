package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/logger"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui/components"
)

const (
	splashContact = "0941090959"
	splashFooter  = "POWERED BY AFROTIE TECH"

	supportPhone = "0942303002"
	supportEmail = "Ethiopianmark8@gmail.com"
)

func (m *Model) handleSplashTick(msg splashTickMsg) (tea.Model, tea.Cmd) {
	res := m.splash.Tick(msg.token)
	switch {
	case res.CheckDue:
		m.log.Debug("splash reached 100%%, checking connectivity")
		return m, checkConnectivity(m.ctx, m.checker, msg.token)
	case res.Stop:
		return m, nil
	}
	return m, splashTick(msg.token, m.splash.Timing().TickInterval)
}

func (m *Model) handleConnectivity(msg connectivityMsg) (tea.Model, tea.Cmd) {
	switch m.splash.ReportConnectivity(msg.token, msg.online) {
	case session.OutcomeHandoff:
		return m, scheduleHandoff(msg.token, m.splash.Timing().HandoffDelay)
	case session.OutcomeOffline:
		m.log.WarnWithFields("offline at startup", []logger.Field{logger.Count(m.splash.Checks())})
	}
	return m, nil
}

func (m *Model) handleHandoff(msg handoffMsg) (tea.Model, tea.Cmd) {
	if !m.splash.Complete(msg.token) {
		return m, nil
	}
	m.log.Info("startup complete")
	m.loading = true
	m.loadingGen++
	return m, scheduleLoadingDone(m.loadingGen, m.loadingDelay)
}

// handleSplashKey serves the connectivity error dialog. Nothing else on the
// splash screen takes input.
func (m *Model) handleSplashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	}
	if !m.splash.ErrorShown() {
		return m, nil
	}

	switch msg.String() {
	case "r", "enter":
		token := m.splash.Token()
		if m.splash.Retry(token) {
			m.log.Info("retrying connectivity check")
			return m, scheduleRetryCheck(token, m.splash.Timing().RetryDelay)
		}
	case "c", "esc":
		m.splash.Dismiss()
	}
	return m, nil
}

func (m *Model) renderSplash() string {
	styles := GetStyles()

	logo := styles.Title.Render(emoji.GetEmoji("brand") + " ETHIO")
	tagline := styles.Muted.Render("Ethiopia's marketplace")

	bar := components.NewProgressBar(30)
	bar.SetPercent(m.splash.Progress())

	var status string
	switch m.splash.Phase() {
	case session.SplashLoading:
		status = "Loading..."
	case session.SplashChecking:
		status = "Checking connection..."
	case session.SplashHandoff, session.SplashDone:
		status = emoji.GetEmoji("success") + " Connected"
	case session.SplashOffline:
		status = emoji.GetEmoji("offline") + " Offline"
	}

	content := []string{
		logo,
		tagline,
		"",
		bar.Render(),
		styles.Muted.Render(status),
	}
	if m.splash.ErrorShown() {
		content = append(content, "", m.renderOfflineDialog(styles))
	}
	content = append(content,
		"",
		styles.Muted.Render(fmt.Sprintf("%s %s", emoji.GetEmoji("phone"), splashContact)),
		styles.Accent.Render(splashFooter),
	)

	block := lipgloss.JoinVertical(lipgloss.Center, content...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) renderOfflineDialog(styles *Styles) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.Error.Render(emoji.GetEmoji("offline")+" No Internet"),
		styles.Body.Render("Please check your connection and try again."),
		"",
		styles.Muted.Render("Need help? Contact support:"),
		styles.Body.Render(emoji.GetEmoji("phone")+" "+supportPhone),
		styles.Body.Render(emoji.GetEmoji("email")+" "+supportEmail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Button.Render("[r] Retry"),
			"  ",
			styles.Tab.Render("[c] Close"),
		),
	)
	return styles.Dialog.Render(body)
}
