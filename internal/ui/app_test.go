package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrotie/ethio/internal/assist"
	"github.com/afrotie/ethio/internal/netcheck"
	"github.com/afrotie/ethio/internal/session"
)

type fakeDescriber struct {
	text string
	err  error
}

func (f fakeDescriber) Describe(context.Context, assist.Request) (string, error) {
	return f.text, f.err
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		send(m, keyRunes(string(r)))
	}
}

// runToCheck ticks the splash to 100% and returns the connectivity check
func runToCheck(t *testing.T, m *Model) tea.Cmd {
	t.Helper()
	token := m.splash.Token()
	var cmd tea.Cmd
	for i := 0; i < 100/session.DefaultSplashStep; i++ {
		cmd = send(m, splashTickMsg{token: token})
	}
	require.Equal(t, session.SplashChecking, m.splash.Phase())
	require.NotNil(t, cmd)
	return cmd
}

// readyModel returns a model past the splash and the loading shimmer
func readyModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Checker == nil {
		opts.Checker = netcheck.Static(true)
	}
	m := New(opts)
	check := runToCheck(t, m)
	require.NotNil(t, send(m, check()))
	send(m, handoffMsg{token: m.splash.Token()})
	require.True(t, m.splash.Finished())
	send(m, loadingDoneMsg{generation: m.loadingGen})
	require.False(t, m.loading)
	return m
}

func TestSplashHandsOffToHome(t *testing.T) {
	m := New(Options{Checker: netcheck.Static(true)})
	assert.Contains(t, m.View(), "POWERED BY AFROTIE TECH")

	check := runToCheck(t, m)
	msg := check()
	require.IsType(t, connectivityMsg{}, msg)
	require.NotNil(t, send(m, msg), "online schedules the hand-off")
	assert.Equal(t, session.SplashHandoff, m.splash.Phase())

	send(m, handoffMsg{token: m.splash.Token()})
	assert.True(t, m.splash.Finished())
	assert.True(t, m.loading, "home starts with placeholder cards")
	assert.NotContains(t, m.View(), "Featured")

	send(m, loadingDoneMsg{generation: m.loadingGen})
	assert.Equal(t, session.ViewHome, m.sess.Current())
	assert.Contains(t, m.View(), "Featured")
}

func TestSplashOfflineRetryAndDismiss(t *testing.T) {
	m := New(Options{Checker: netcheck.Static(false)})
	check := runToCheck(t, m)
	assert.Nil(t, send(m, check()))
	require.True(t, m.splash.ErrorShown())

	view := m.View()
	assert.Contains(t, view, "No Internet")
	assert.Contains(t, view, supportPhone)
	assert.Contains(t, view, supportEmail)

	retry := send(m, keyRunes("r"))
	require.NotNil(t, retry)
	assert.False(t, m.splash.ErrorShown())
	assert.Equal(t, session.SplashChecking, m.splash.Phase())

	recheck := send(m, retryCheckMsg{token: m.splash.Token()})
	require.NotNil(t, recheck)
	send(m, recheck())
	assert.True(t, m.splash.ErrorShown())
	assert.Equal(t, 2, m.splash.Checks())

	assert.Nil(t, send(m, keyRunes("c")))
	assert.False(t, m.splash.ErrorShown())
	assert.Equal(t, session.SplashOffline, m.splash.Phase())
	assert.False(t, m.splash.Finished(), "dismiss never hands off")

	for _, key := range []string{"r", "c"} {
		assert.Nil(t, send(m, keyRunes(key)), "%s after dismiss", key)
	}
	assert.Nil(t, send(m, keyType(tea.KeyEnter)))
	assert.Equal(t, session.SplashOffline, m.splash.Phase())
	assert.False(t, m.splash.ErrorShown())
	assert.Equal(t, 2, m.splash.Checks(), "no check runs after dismiss")
}

func TestSplashIgnoresKeysAndStaleTicks(t *testing.T) {
	m := New(Options{})
	stale := m.splash.Token()

	send(m, keyRunes("3"))
	assert.False(t, m.splash.Finished())

	m.splash.Cancel()
	assert.Nil(t, send(m, splashTickMsg{token: stale}))
	assert.Equal(t, 0, m.splash.Progress())
}

func TestLoadingTimerCancelledOnQuit(t *testing.T) {
	m := New(Options{Checker: netcheck.Static(true)})
	check := runToCheck(t, m)
	send(m, check())
	send(m, handoffMsg{token: m.splash.Token()})
	gen := m.loadingGen

	send(m, keyType(tea.KeyCtrlC))
	send(m, loadingDoneMsg{generation: gen})
	assert.True(t, m.loading, "stale loading timer is ignored")
	assert.Equal(t, "", m.View())
}

func TestNavBarTabsAndBack(t *testing.T) {
	m := readyModel(t, Options{})

	send(m, keyRunes("2"))
	assert.Equal(t, session.ViewJobs, m.sess.Current())
	assert.Contains(t, m.View(), "Apply Now")

	send(m, keyRunes("3"))
	assert.Equal(t, session.ViewPost, m.sess.Current())
	assert.NotContains(t, m.View(), "Profile", "nav bar hidden on post")

	send(m, keyRunes("5"))
	assert.Equal(t, session.ViewPost, m.sess.Current(), "digits are text on post")

	send(m, keyType(tea.KeyEsc))
	assert.Equal(t, session.ViewHome, m.sess.Current())
	_, ok := m.sess.Draft()
	assert.False(t, ok)

	send(m, keyRunes("5"))
	assert.Contains(t, m.View(), "Applied Jobs")
}

func TestOpenListingSaveAndBack(t *testing.T) {
	m := readyModel(t, Options{})

	send(m, keyType(tea.KeyEnter))
	require.Equal(t, session.ViewDetail, m.sess.Current())
	l, ok := m.sess.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", l.ID)
	assert.Contains(t, m.View(), l.Title)

	send(m, keyRunes("s"))
	assert.False(t, m.sess.IsSaved("1"), "home keys stay behind the splash")
	assert.Contains(t, m.View(), "Offline")
}

func TestJobsCategoryShortcutAndApply(t *testing.T) {
	m := readyModel(t, Options{})

	send(m, keyType(tea.KeyTab))
	for i := 0; i < 3; i++ {
		send(m, keyRunes("l"))
	}
	send(m, keyType(tea.KeyEnter))
	require.Equal(t, session.ViewJobs, m.sess.Current())

	send(m, keyType(tea.KeyEnter))
	assert.True(t, m.sess.HasApplied("j1"))
	send(m, keyType(tea.KeyEnter))
	assert.Len(t, m.sess.AppliedJobs(), 1)
	assert.Contains(t, m.status, "already applied")
}

func TestHomeSearchFiltersListings(t *testing.T) {
	m := readyModel(t, Options{})

	send(m, keyRunes("/"))
	typeText(m, "zzz-no-match")
	assert.Equal(t, 0, m.home.listings.Len())
	assert.Equal(t, session.ViewHome, m.sess.Current(), "typed digits and letters stay in the field")

	send(m, keyType(tea.KeyEsc))
	assert.False(t, m.home.searching)
	assert.Equal(t, len(m.sess.Catalog().Listings), m.home.listings.Len())
}

func TestThemeToggle(t *testing.T) {
	var presented []bool
	store := session.NewMemoryStore()
	theme := session.NewTheme(store, nil, func(dark bool) { presented = append(presented, dark) })
	m := readyModel(t, Options{Session: session.New(nil, nil, theme)})

	send(m, keyRunes("t"))
	assert.True(t, theme.IsDark())
	v, ok, err := store.Get(session.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Equal(t, []bool{false, true}, presented)
}

func startDetails(t *testing.T, m *Model) *session.Draft {
	t.Helper()
	send(m, keyRunes("3"))
	send(m, keyType(tea.KeyEnter)) // first category
	d, ok := m.sess.Draft()
	require.True(t, ok)
	require.Equal(t, session.StepDetails, d.Step())
	return d
}

func TestPostAssistFillsDescription(t *testing.T) {
	m := readyModel(t, Options{Describer: fakeDescriber{text: "Great phone, barely used."}})
	d := startDetails(t, m)

	assert.Nil(t, send(m, keyType(tea.KeyCtrlG)), "no request without a title")
	assert.Contains(t, m.post.hint, "title")

	typeText(m, "iPhone 13")
	assert.Equal(t, "iPhone 13", d.Title)
	require.NotNil(t, send(m, keyType(tea.KeyCtrlG)))
	assert.True(t, d.AssistPending())

	send(m, assistResultMsg{draft: d, ticket: 1, text: "Great phone, barely used."})
	assert.Equal(t, "Great phone, barely used.", d.Description)
	assert.Equal(t, "Great phone, barely used.", m.post.description.Value())
	assert.False(t, m.post.hintErr)
	assert.Contains(t, m.post.hint, "Description written")
}

func TestPostAssistEmptyTextKeepsDescription(t *testing.T) {
	tests := []struct {
		name    string
		current string
	}{
		{"blank description", ""},
		{"user text", "Mine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := readyModel(t, Options{Describer: fakeDescriber{}})
			d := startDetails(t, m)
			typeText(m, "Sofa")
			m.post.description.SetValue(tt.current)
			d.Description = tt.current

			require.NotNil(t, send(m, keyType(tea.KeyCtrlG)))
			send(m, assistResultMsg{draft: d, ticket: 1, text: ""})

			assert.False(t, d.AssistPending())
			assert.Equal(t, tt.current, d.Description)
			assert.Equal(t, tt.current, m.post.description.Value())
			assert.True(t, m.post.hintErr)
			assert.NotContains(t, m.post.hint, "Description written")
			assert.Contains(t, m.post.hint, "no text")
		})
	}
}

func TestPostDetailsFieldsTakeTypedText(t *testing.T) {
	m := readyModel(t, Options{})
	d := startDetails(t, m)

	typeText(m, "ቆንጆ ሶፋx")
	send(m, keyType(tea.KeyBackspace))
	send(m, keyType(tea.KeyTab))
	typeText(m, "25,000")
	send(m, keyType(tea.KeyTab))
	send(m, keyRunes("l")) // next city
	send(m, keyType(tea.KeyTab))
	typeText(m, "Leather, 3 seats")
	send(m, keyType(tea.KeyTab))
	typeText(m, "Barely used")

	assert.Equal(t, "ቆንጆ ሶፋ", d.Title)
	assert.Equal(t, "25,000", d.Price)
	assert.NotEqual(t, "Addis Ababa", d.Location)
	assert.Equal(t, "Leather, 3 seats", d.Features)
	assert.Equal(t, "Barely used", d.Description)
	assert.True(t, m.post.description.Focused())
	assert.False(t, m.post.title.Focused())
	assert.Contains(t, m.View(), "Barely used")
}

func TestPostPhotosStepOwnsFocus(t *testing.T) {
	m := readyModel(t, Options{})
	d := startDetails(t, m)
	typeText(m, "Lamp")

	send(m, keyType(tea.KeyCtrlN))
	require.Equal(t, session.StepPhotos, d.Step())
	typeText(m, "x.png")
	assert.Equal(t, "x.png", m.post.photoPath.Value())
	assert.Equal(t, "Lamp", d.Title)

	send(m, keyType(tea.KeyEsc))
	require.Equal(t, session.StepDetails, d.Step())
	assert.False(t, m.post.photoPath.Focused())
	typeText(m, "s")
	assert.Equal(t, "Lamps", d.Title)
}

func TestPostAssistFailureKeepsDescription(t *testing.T) {
	m := readyModel(t, Options{Describer: fakeDescriber{err: errors.New("boom")}})
	d := startDetails(t, m)
	typeText(m, "Sofa")
	m.post.description.SetValue("Mine")
	d.Description = "Mine"

	send(m, keyType(tea.KeyCtrlG))
	send(m, assistResultMsg{draft: d, ticket: 1, err: errors.New("boom")})
	assert.Equal(t, "Mine", d.Description)
	assert.True(t, m.post.hintErr)
}

func TestPostAssistResultAfterLeavingIsDiscarded(t *testing.T) {
	m := readyModel(t, Options{Describer: fakeDescriber{text: "late"}})
	d := startDetails(t, m)
	typeText(m, "Bike")
	send(m, keyType(tea.KeyCtrlG))

	send(m, keyType(tea.KeyEsc))
	send(m, keyType(tea.KeyEsc))
	require.Equal(t, session.ViewHome, m.sess.Current())

	send(m, keyRunes("3"))
	fresh, ok := m.sess.Draft()
	require.True(t, ok)

	send(m, assistResultMsg{draft: d, ticket: 1, text: "late"})
	assert.Empty(t, fresh.Description)
	assert.Empty(t, d.Description)
}

func TestPostSubmitReturnsHome(t *testing.T) {
	m := readyModel(t, Options{})
	startDetails(t, m)
	typeText(m, "Coffee table")

	send(m, keyType(tea.KeyCtrlN))
	d, _ := m.sess.Draft()
	require.Equal(t, session.StepPhotos, d.Step())

	send(m, keyType(tea.KeyCtrlS))
	assert.Equal(t, session.ViewHome, m.sess.Current())
	mine := m.sess.MyListings()
	require.Len(t, mine, 1)
	assert.Equal(t, "Coffee table", mine[0].Title)
	assert.Equal(t, "Addis Ababa", mine[0].Location)
	assert.True(t, strings.Contains(m.status, "Posted"))
}
