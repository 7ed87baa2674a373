package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/afrotie/ethio/internal/assist"
	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/netcheck"
	"github.com/afrotie/ethio/internal/session"
)

// Splash messages carry the sequencer token that was current when they were
// scheduled. The sequencer ignores stale ones.
type splashTickMsg struct{ token session.SplashToken }

type connectivityMsg struct {
	token  session.SplashToken
	online bool
}

type handoffMsg struct{ token session.SplashToken }

type retryCheckMsg struct{ token session.SplashToken }

type loadingDoneMsg struct{ generation uint64 }

type spinnerTickMsg struct{}

type assistResultMsg struct {
	draft  *session.Draft
	ticket uint64
	text   string
	err    error
}

type photoAttachedMsg struct {
	draft *session.Draft
	ref   string
	name  string
	err   error
}

type catalogReloadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

func splashTick(token session.SplashToken, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return splashTickMsg{token: token}
	})
}

func checkConnectivity(ctx context.Context, checker netcheck.Checker, token session.SplashToken) tea.Cmd {
	return func() tea.Msg {
		return connectivityMsg{token: token, online: checker.Online(ctx)}
	}
}

func scheduleHandoff(token session.SplashToken, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return handoffMsg{token: token}
	})
}

func scheduleRetryCheck(token session.SplashToken, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return retryCheckMsg{token: token}
	})
}

func scheduleLoadingDone(generation uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return loadingDoneMsg{generation: generation}
	})
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Describer writes listing descriptions
type Describer interface {
	Describe(ctx context.Context, req assist.Request) (string, error)
}

func requestDescription(ctx context.Context, d Describer, draft *session.Draft, req session.AssistRequest) tea.Cmd {
	return func() tea.Msg {
		text, err := d.Describe(ctx, assist.Request{
			Title:    req.Title,
			Category: req.Category,
			Features: req.Features,
		})
		return assistResultMsg{draft: draft, ticket: req.Ticket, text: text, err: err}
	}
}
