package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/assist"
	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/logger"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui/components"
)

const descriptionLimit = 600

var errNoDescription = errors.New("assistant returned no text")

// Fields of the details step, in tab order
const (
	fieldTitle = iota
	fieldPrice
	fieldLocation
	fieldFeatures
	fieldDescription
	fieldCount
)

// postForm holds the widgets of the post wizard. The draft itself lives in
// the session; the form copies field values into it on every edit.
type postForm struct {
	sess *session.Session

	categoryIndex int
	focus         int
	locationIndex int

	title       textinput.Model
	price       textinput.Model
	features    textinput.Model
	description textarea.Model
	photoPath   textinput.Model

	hint    string
	hintErr bool
}

func newPostForm(sess *session.Session) *postForm {
	f := &postForm{
		sess:        sess,
		title:       components.NewTextInput("What are you selling?"),
		price:       components.NewTextInput("e.g. 25,000"),
		features:    components.NewTextInput("Comma separated, e.g. Low mileage, New tires"),
		description: components.NewTextArea("Describe your item or use AI auto-write", 4, descriptionLimit),
		photoPath:   components.NewTextInput("Path to a .jpg or .png, enter to attach"),
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *postForm) draft() (*session.Draft, bool) {
	return f.sess.Draft()
}

func (f *postForm) pending() bool {
	d, ok := f.draft()
	return ok && d.AssistPending()
}

func (f *postForm) cities() []string {
	return f.sess.Catalog().Cities
}

func (f *postForm) location() string {
	cities := f.cities()
	if len(cities) == 0 {
		return ""
	}
	return cities[f.locationIndex%len(cities)]
}

// line returns the single-line input at field i, nil for location and
// description
func (f *postForm) line(i int) *textinput.Model {
	switch i {
	case fieldTitle:
		return &f.title
	case fieldPrice:
		return &f.price
	case fieldFeatures:
		return &f.features
	}
	return nil
}

func (f *postForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := 0; j < fieldCount; j++ {
		if in := f.line(j); in != nil {
			if j == f.focus {
				in.Focus()
			} else {
				in.Blur()
			}
		}
	}
	if f.focus == fieldDescription {
		f.description.Focus()
	} else {
		f.description.Blur()
	}
}

// enterPhotos moves keyboard focus to the photo path
func (f *postForm) enterPhotos() {
	f.title.Blur()
	f.price.Blur()
	f.features.Blur()
	f.description.Blur()
	f.photoPath.Focus()
}

// leavePhotos hands focus back to the details field last used
func (f *postForm) leavePhotos() {
	f.photoPath.Blur()
	f.setFocus(f.focus)
}

// update forwards msg to the focused widget
func (f *postForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldDescription {
		f.description, cmd = f.description.Update(msg)
		return cmd
	}
	if in := f.line(f.focus); in != nil {
		*in, cmd = in.Update(msg)
	}
	return cmd
}

// sync copies the widget values into the draft
func (f *postForm) sync(d *session.Draft) {
	d.Title = f.title.Value()
	d.Price = f.price.Value()
	d.Location = f.location()
	d.Features = f.features.Value()
	d.Description = f.description.Value()
}

func (f *postForm) setHint(isErr bool, format string, args ...interface{}) {
	f.hint = fmt.Sprintf(format, args...)
	f.hintErr = isErr
}

func (m *Model) handlePostKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.post
	d, ok := m.sess.Draft()
	if f == nil || !ok {
		return m, nil
	}

	switch d.Step() {
	case session.StepCategory:
		return m.handleCategoryStepKey(f, d, msg)
	case session.StepDetails:
		return m.handleDetailsStepKey(f, d, msg)
	case session.StepPhotos:
		return m.handlePhotosStepKey(f, d, msg)
	}
	return m, nil
}

func (m *Model) handleCategoryStepKey(f *postForm, d *session.Draft, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := catalog.Categories()
	switch msg.String() {
	case "up", "k", "left", "h":
		if f.categoryIndex > 0 {
			f.categoryIndex--
		}
	case "down", "j", "right", "l":
		if f.categoryIndex < len(categories)-1 {
			f.categoryIndex++
		}
	case "enter":
		if err := d.SelectCategory(categories[f.categoryIndex]); err != nil {
			f.setHint(true, "%v", err)
			return m, nil
		}
		f.setFocus(fieldTitle)
	}
	return m, nil
}

func (m *Model) handleDetailsStepKey(f *postForm, d *session.Draft, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "ctrl+g":
		return m, m.startAssist(f, d)
	case "ctrl+n":
		f.sync(d)
		d.Next()
		f.enterPhotos()
		return m, nil
	case "enter":
		if f.focus == fieldDescription {
			f.sync(d)
			d.Next()
			f.enterPhotos()
			return m, nil
		}
		f.setFocus(f.focus + 1)
		return m, nil
	}

	if f.focus == fieldLocation {
		n := len(f.cities())
		switch msg.String() {
		case "left", "h":
			if n > 0 {
				f.locationIndex = (f.locationIndex + n - 1) % n
			}
		case "right", "l", " ":
			if n > 0 {
				f.locationIndex = (f.locationIndex + 1) % n
			}
		}
		f.sync(d)
		return m, nil
	}

	cmd := f.update(msg)
	f.sync(d)
	return m, cmd
}

func (m *Model) handlePhotosStepKey(f *postForm, d *session.Draft, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submitDraft(f, d)
	case "enter":
		path := strings.TrimSpace(f.photoPath.Value())
		if path == "" {
			return m.submitDraft(f, d)
		}
		f.photoPath.SetValue("")
		f.setHint(false, "Attaching %s...", path)
		return m, m.attachPhoto(d, path)
	}
	var cmd tea.Cmd
	f.photoPath, cmd = f.photoPath.Update(msg)
	return m, cmd
}

// startAssist issues a description request for the draft. Precondition
// failures and a missing provider are reported inline.
func (m *Model) startAssist(f *postForm, d *session.Draft) tea.Cmd {
	f.sync(d)
	if d.AssistPending() {
		return nil
	}
	req, err := d.BeginAssist()
	if err != nil {
		f.setHint(true, "Enter a title first to use AI auto-write")
		return nil
	}
	if m.describer == nil {
		d.FailAssist(req.Ticket, assist.ErrNotConfigured)
		f.setHint(true, "%v", assist.ErrNotConfigured)
		return nil
	}
	f.setHint(false, "")
	m.spinner.SetLabel("Writing description...")
	m.log.DebugWithFields("description requested", []logger.Field{
		logger.F("category", req.Category),
		logger.F("ticket", req.Ticket),
	})
	return tea.Batch(requestDescription(m.ctx, m.describer, d, req), spinnerTick())
}

func (m *Model) handleAssistResult(msg assistResultMsg) (tea.Model, tea.Cmd) {
	d, ok := m.sess.Draft()
	if !ok || d != msg.draft || m.post == nil {
		m.log.Debug("discarding description for a closed draft")
		return m, nil
	}

	f := m.post
	if msg.err == nil && msg.text == "" {
		msg.err = errNoDescription
	}
	if msg.err != nil {
		if !d.FailAssist(msg.ticket, msg.err) {
			return m, nil
		}
		m.log.WarnWithFields("description request failed", []logger.Field{logger.Error(msg.err)})
		switch {
		case errors.Is(msg.err, assist.ErrNotConfigured):
			f.setHint(true, "%v", msg.err)
		case errors.Is(msg.err, errNoDescription):
			f.setHint(true, "The assistant returned no text. Your description is unchanged.")
		default:
			f.setHint(true, "Could not generate a description. Please try again.")
		}
		return m, nil
	}

	if !d.ApplyAssist(msg.ticket, msg.text) {
		m.log.Debug("discarding superseded description (ticket %d)", msg.ticket)
		return m, nil
	}
	f.description.SetValue(d.Description)
	f.setHint(false, "%s Description written", emoji.GetEmoji("sparkles"))
	return m, nil
}

func (m *Model) attachPhoto(d *session.Draft, path string) tea.Cmd {
	photos := m.photos
	return func() tea.Msg {
		photo, err := photos.AttachFile(path)
		if err != nil {
			return photoAttachedMsg{draft: d, name: path, err: err}
		}
		return photoAttachedMsg{draft: d, ref: photo.Ref, name: photo.Name}
	}
}

func (m *Model) handlePhotoAttached(msg photoAttachedMsg) (tea.Model, tea.Cmd) {
	d, ok := m.sess.Draft()
	if !ok || d != msg.draft || m.post == nil {
		if msg.ref != "" {
			m.photos.Release(msg.ref)
		}
		return m, nil
	}
	if msg.err != nil {
		m.log.WarnWithFields("photo attach failed", []logger.Field{logger.F("file", msg.name), logger.Error(msg.err)})
		m.post.setHint(true, "Could not attach %s: %v", msg.name, msg.err)
		return m, nil
	}
	d.AddImage(msg.ref)
	m.post.setHint(false, "%s Attached %s", emoji.GetEmoji("camera"), msg.name)
	return m, nil
}

func (m *Model) submitDraft(f *postForm, d *session.Draft) (tea.Model, tea.Cmd) {
	f.sync(d)
	l, err := m.sess.SubmitDraft()
	if err != nil {
		f.setHint(true, "%v", err)
		return m, nil
	}
	m.log.InfoWithFields("listing posted", []logger.Field{
		logger.F("id", l.ID),
		logger.F("category", l.Category),
		logger.Count(len(d.Images())),
	})
	m.onEnter()
	m.setStatus("%s Posted \"%s\"", emoji.GetEmoji("success"), l.Title)
	return m, nil
}

func (m *Model) renderPost(styles *Styles) string {
	f := m.post
	d, ok := m.sess.Draft()
	if f == nil || !ok {
		return styles.Muted.Render("No draft")
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Muted.Render(emoji.GetEmoji("back")+" [esc] "),
			styles.Header.Render("Post an Ad"),
			styles.Muted.Render(fmt.Sprintf("  Step %d of 3", d.Step())),
		),
		renderSteps(styles, d.Step()),
		"",
	}

	switch d.Step() {
	case session.StepCategory:
		parts = append(parts, m.renderCategoryStep(styles, f))
	case session.StepDetails:
		parts = append(parts, m.renderDetailsStep(styles, f, d))
	case session.StepPhotos:
		parts = append(parts, m.renderPhotosStep(styles, f, d))
	}

	if f.hint != "" {
		st := styles.Success
		if f.hintErr {
			st = styles.Error
		}
		parts = append(parts, "", st.Render(f.hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSteps(styles *Styles, step int) string {
	labels := []string{"Category", "Details", "Photos"}
	var out []string
	for i, label := range labels {
		st := styles.Tab
		if i+1 == step {
			st = styles.ActiveTab
		} else if i+1 < step {
			st = styles.Success
		}
		out = append(out, st.Render(fmt.Sprintf("%d %s", i+1, label)))
	}
	return strings.Join(out, styles.Muted.Render("─"))
}

func (m *Model) renderCategoryStep(styles *Styles, f *postForm) string {
	lines := []string{styles.Subheader.Render("What are you posting?")}
	for i, c := range catalog.Categories() {
		label := fmt.Sprintf("%s %s", emoji.GetEmoji(string(c)), c.DisplayName())
		if i == f.categoryIndex {
			lines = append(lines, styles.Selected.Render("▶ "+label))
		} else {
			lines = append(lines, styles.Body.Render("  "+label))
		}
	}
	lines = append(lines, "", styles.Muted.Render("enter select · esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderDetailsStep(styles *Styles, f *postForm, d *session.Draft) string {
	w, _ := m.contentSize()
	width := w - 6
	for i := 0; i < fieldCount; i++ {
		if in := f.line(i); in != nil {
			in.Width = width - 1
		}
	}
	f.description.SetWidth(width)

	location := f.location()
	locStyle := styles.Body
	label := styles.Muted.Bold(true)
	if f.focus == fieldLocation {
		locStyle = styles.Selected
		label = styles.Header
	}

	assistLine := styles.Accent.Render(emoji.GetEmoji("sparkles") + " [ctrl+g] AI auto-write")
	if d.AssistPending() {
		assistLine = m.spinner.Render()
	}

	lines := []string{
		styles.Muted.Render("Category: ") + styles.Subheader.Render(d.Category().DisplayName()),
		"",
		components.Field("Title", f.title.View(), f.focus == fieldTitle, width),
		components.Field("Price (ETB)", f.price.View(), f.focus == fieldPrice, width),
		label.Render("Location"),
		locStyle.Render(fmt.Sprintf("◀ %s %s ▶", emoji.GetEmoji("location"), location)),
		components.Field("Key features", f.features.View(), f.focus == fieldFeatures, width),
		components.Field(fmt.Sprintf("Description (%d/%d)", len([]rune(f.description.Value())), descriptionLimit),
			f.description.View(), f.focus == fieldDescription, width),
		assistLine,
		"",
		styles.Muted.Render("tab next field · enter on description or ctrl+n continue · esc back"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderPhotosStep(styles *Styles, f *postForm, d *session.Draft) string {
	w, _ := m.contentSize()
	f.photoPath.Width = w - 7

	lines := []string{styles.Subheader.Render(emoji.GetEmoji("camera") + " Add photos")}
	images := d.Images()
	if len(images) == 0 {
		lines = append(lines, styles.Muted.Render("No photos yet"))
	}
	for i, ref := range images {
		name := ref
		if photo, ok := m.photos.Get(ref); ok {
			name = fmt.Sprintf("%s (%dx%d)", photo.Name, photo.Width, photo.Height)
		}
		lines = append(lines, styles.Body.Render(fmt.Sprintf("  %d. %s", i+1, name)))
	}
	lines = append(lines,
		"",
		components.Field("Photo file", f.photoPath.View(), true, w-6),
		"",
		styles.Button.Render("[ctrl+s] Post Ad"),
		styles.Muted.Render("enter on an empty path also posts · esc back"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
