// Package ui is the interactive terminal client: the splash gate, the five
// tabbed views, listing detail and the post wizard.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/imaging"
	"github.com/afrotie/ethio/internal/logger"
	"github.com/afrotie/ethio/internal/netcheck"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui/components"
)

const defaultLoadingDelay = 2 * time.Second

// Options wires the model to its collaborators
type Options struct {
	Session   *session.Session
	Splash    *session.Splash
	Describer Describer
	Photos    *imaging.Registry
	Checker   netcheck.Checker
	Logger    *logger.Logger

	// LoadingDelay is how long home shows placeholder cards after the splash
	LoadingDelay time.Duration

	// CatalogPath is reloaded on change when WatchCatalog is set
	CatalogPath  string
	WatchCatalog bool
}

// Model is the root Bubble Tea model
type Model struct {
	sess      *session.Session
	splash    *session.Splash
	describer Describer
	photos    *imaging.Registry
	checker   netcheck.Checker
	log       *logger.Logger
	watcher   *catalogWatcher

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	quitting bool

	loadingDelay time.Duration
	loading      bool
	loadingGen   uint64

	home    *homeView
	jobs    *components.List
	chats   *components.List
	post    *postForm
	spinner *components.Spinner

	status    string
	statusErr bool
}

// New creates the root model. Missing collaborators get inert defaults.
func New(opts Options) *Model {
	if opts.Session == nil {
		opts.Session = session.New(nil, nil, nil)
	}
	if opts.Splash == nil {
		opts.Splash = session.NewSplash(session.DefaultSplashTiming())
	}
	if opts.Checker == nil {
		opts.Checker = netcheck.Static(true)
	}
	if opts.Photos == nil {
		opts.Photos = imaging.NewRegistry(0)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.LoadingDelay <= 0 {
		opts.LoadingDelay = defaultLoadingDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		sess:         opts.Session,
		splash:       opts.Splash,
		describer:    opts.Describer,
		photos:       opts.Photos,
		checker:      opts.Checker,
		log:          opts.Logger.WithComponent("ui"),
		ctx:          ctx,
		cancel:       cancel,
		loadingDelay: opts.LoadingDelay,
		spinner:      components.NewSpinner(),
		width:        80,
		height:       24,
	}
	m.home = newHomeView(m.sess)
	m.refreshLists()

	if opts.WatchCatalog && opts.CatalogPath != "" {
		w, err := newCatalogWatcher(opts.CatalogPath, m.log)
		if err != nil {
			m.log.Warn("catalog reload disabled: %v", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

// Init starts the splash ticks and the catalog watcher
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{splashTick(m.splash.Token(), m.splash.Timing().TickInterval)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.next())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case splashTickMsg:
		return m.handleSplashTick(msg)
	case connectivityMsg:
		return m.handleConnectivity(msg)
	case handoffMsg:
		return m.handleHandoff(msg)
	case retryCheckMsg:
		return m, checkConnectivity(m.ctx, m.checker, msg.token)
	case loadingDoneMsg:
		if msg.generation == m.loadingGen {
			m.loading = false
		}
		return m, nil
	case spinnerTickMsg:
		return m.handleSpinnerTick()
	case assistResultMsg:
		return m.handleAssistResult(msg)
	case photoAttachedMsg:
		return m.handlePhotoAttached(msg)
	case catalogReloadedMsg:
		return m.handleCatalogReloaded(msg)
	}
	return m, nil
}

// View renders the active screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.splash.Finished() {
		return m.renderSplash()
	}

	styles := GetStyles()
	current := m.sess.Current()

	var body string
	switch current {
	case session.ViewHome:
		body = m.renderHome(styles)
	case session.ViewDetail:
		body = m.renderDetail(styles)
	case session.ViewPost:
		body = m.renderPost(styles)
	case session.ViewJobs:
		body = m.renderJobs(styles)
	case session.ViewMessages:
		body = m.renderMessages(styles)
	case session.ViewProfile:
		body = m.renderProfile(styles)
	}

	parts := []string{m.renderTopBar(styles), body}
	if m.status != "" {
		st := styles.Muted
		if m.statusErr {
			st = styles.Error
		}
		parts = append(parts, st.Render(m.status))
	}
	if current.ShowsNavBar() {
		parts = append(parts, m.renderNavBar(styles))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Session returns the session the model drives
func (m *Model) Session() *session.Session {
	return m.sess
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.refreshLists()
	return m, nil
}

// handleKeyPress routes keys: quit and back first, then the splash gate,
// then the active view
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}
	if !m.splash.Finished() {
		return m.handleSplashKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		return m.handleEscape()
	}
	if m.capturesText() {
		return m.routeViewKey(msg)
	}

	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "t":
		return m.handleThemeToggle()
	}

	if m.sess.Current().ShowsNavBar() {
		if v, ok := navTarget(msg.String()); ok {
			return m.navigate(v)
		}
	}
	return m.routeViewKey(msg)
}

func (m *Model) routeViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.sess.Current() {
	case session.ViewHome:
		return m.handleHomeKey(msg)
	case session.ViewDetail:
		return m.handleDetailKey(msg)
	case session.ViewPost:
		return m.handlePostKey(msg)
	case session.ViewJobs:
		return m.handleJobsKey(msg)
	case session.ViewMessages:
		return m.handleMessagesKey(msg)
	case session.ViewProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

// capturesText reports whether printable keys belong to a text field
func (m *Model) capturesText() bool {
	switch m.sess.Current() {
	case session.ViewPost:
		return true
	case session.ViewHome:
		return m.home.searching
	}
	return false
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.splash.Cancel()
	m.loadingGen++
	m.cancel()
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.Warn("failed to close catalog watcher: %v", err)
		}
	}
	return m, tea.Quit
}

func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	if m.sess.Current() == session.ViewHome && m.home.searching {
		m.home.endSearch(true)
		return m, nil
	}
	prev := m.sess.Current()
	m.sess.Back()
	if prev != m.sess.Current() {
		m.onEnter()
		return m, nil
	}
	if d, ok := m.sess.Draft(); ok && m.post != nil && d.Step() == session.StepDetails {
		m.post.leavePhotos()
	}
	return m, nil
}

func (m *Model) handleThemeToggle() (tea.Model, tea.Cmd) {
	if err := m.sess.Theme().Toggle(); err != nil {
		m.log.Error("theme toggle failed: %v", err)
		m.setError("Could not save theme: %v", err)
		return m, nil
	}
	m.setStatus("Theme: %s", m.sess.Theme().Name())
	return m, nil
}

// navigate moves to a tab, logging rejected transitions
func (m *Model) navigate(v session.View) (tea.Model, tea.Cmd) {
	if err := m.sess.SetView(v); err != nil {
		m.log.Error("navigation to %s rejected: %v", v, err)
		return m, nil
	}
	m.onEnter()
	return m, nil
}

// onEnter resets per-view state after a transition
func (m *Model) onEnter() {
	m.status = ""
	m.statusErr = false
	switch m.sess.Current() {
	case session.ViewPost:
		m.post = newPostForm(m.sess)
	default:
		m.post = nil
	}
	m.refreshLists()
}

func (m *Model) refreshLists() {
	w, h := m.contentSize()
	m.home.resize(w, h)
	m.home.refresh()

	cat := m.sess.Catalog()
	selected := 0
	if m.jobs != nil {
		selected = m.jobs.Selected
	}
	m.jobs = components.NewJobList(cat.Jobs, m.sess.HasApplied, w, h)
	m.jobs.SetFocused(true)
	m.jobs.Selected = clampIndex(selected, m.jobs.Len())

	selected = 0
	if m.chats != nil {
		selected = m.chats.Selected
	}
	m.chats = components.NewChatList(cat.Chats, w, h)
	m.chats.SetFocused(true)
	m.chats.Selected = clampIndex(selected, m.chats.Len())
}

// contentSize is the area between the top bar and the nav bar
func (m *Model) contentSize() (int, int) {
	w := m.width
	if w < 40 {
		w = 40
	}
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	return w, h
}

func (m *Model) handleCatalogReloaded(msg catalogReloadedMsg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.watcher != nil {
		next = m.watcher.next()
	}
	if msg.err != nil {
		m.log.Warn("catalog reload failed: %v", msg.err)
		m.setError("Catalog reload failed: %v", msg.err)
		return m, next
	}
	m.sess.SetCatalog(msg.catalog)
	m.refreshLists()
	m.log.InfoWithFields("catalog reloaded", []logger.Field{logger.Count(len(msg.catalog.Listings))})
	m.setStatus("Catalog reloaded")
	return m, next
}

func (m *Model) handleSpinnerTick() (tea.Model, tea.Cmd) {
	if m.post == nil || !m.post.pending() {
		return m, nil
	}
	m.spinner.Tick()
	return m, spinnerTick()
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Run runs the interactive client until the user quits
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
