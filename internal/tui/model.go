// Package tui implements the interactive settings screen.
package tui

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/profilectl/internal/core/config"
	"github.com/colonyops/profilectl/internal/core/notify"
	"github.com/colonyops/profilectl/internal/core/styles"
	"github.com/colonyops/profilectl/internal/page"
	"github.com/colonyops/profilectl/internal/settings"
	"github.com/colonyops/profilectl/internal/transport"
	"github.com/colonyops/profilectl/internal/tui/toast"
)

// UIState is the loading state of the screen.
type UIState int

const (
	stateLoading UIState = iota
	stateReady
	stateFailed
)

type focusTarget int

const (
	focusTheme focusTarget = iota
	focusTimezone
	focusAutoToggle
	focusInterval
	focusSave
	focusSyncNow
	focusCount
)

// PageLoader loads the profile page.
type PageLoader interface {
	Load(ctx context.Context) (*page.Document, error)
}

// DocumentSink receives every loaded page so requests use its tokens.
type DocumentSink interface {
	SetDocument(transport.DocumentTokens)
}

// Deps are the collaborators of the settings screen.
type Deps struct {
	Context   context.Context
	Config    *config.Config
	Loader    PageLoader
	Transport settings.Transport
	Documents DocumentSink
	Logger    zerolog.Logger
	// Toasts defaults to a new Center.
	Toasts *toast.Center
}

type pageLoadedMsg struct {
	doc *page.Document
	err error
}

// Model is the Bubble Tea model of the settings screen.
type Model struct {
	deps   Deps
	logger zerolog.Logger
	keys   KeyMap

	state   UIState
	loadErr error
	doc     *page.Document

	toasts    *toast.Center
	toastView *toast.View

	theme    *settings.Theme
	timezone *settings.Timezone
	autoSync *settings.AutoSync
	manual   *settings.ManualSync

	focus     focusTarget
	spinner   spinner.Model
	filter    textinput.Model
	filtering bool

	width  int
	height int
}

func New(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Config == nil {
		cfg := config.DefaultConfig()
		deps.Config = &cfg
	}
	if deps.Toasts == nil {
		deps.Toasts = toast.New()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter timezones"
	filter.CharLimit = 64

	return Model{
		deps:      deps,
		logger:    deps.Logger.With().Str("component", "tui").Logger(),
		keys:      DefaultKeyMap(),
		state:     stateLoading,
		toasts:    deps.Toasts,
		toastView: toast.NewView(deps.Toasts),
		spinner:   sp,
		filter:    filter,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPage(), m.spinner.Tick)
}

func (m Model) loadPage() tea.Cmd {
	ctx, loader := m.deps.Context, m.deps.Loader
	return func() tea.Msg {
		doc, err := loader.Load(ctx)
		return pageLoadedMsg{doc: doc, err: err}
	}
}

// Reload refetches the profile page. It implements settings.Reloader.
func (m Model) Reload() tea.Cmd {
	return m.loadPage()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.toasts.Update(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case pageLoadedMsg:
		return m.handlePageLoaded(msg)
	case settings.ResultMsg:
		return m.handleResult(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("failed to load profile page")
		if m.doc == nil {
			m.state = stateFailed
			m.loadErr = msg.err
		}
		return m, m.toasts.Show("Failed to load profile", notify.LevelError)
	}

	m.doc = msg.doc
	m.state = stateReady
	m.loadErr = nil
	if m.deps.Documents != nil {
		m.deps.Documents.SetDocument(msg.doc)
	}
	if sel := msg.doc.Theme.Selected; sel != "" && !styles.ApplyTheme(sel) {
		m.logger.Warn().Str("theme", sel).Msg("unknown theme on profile page")
	}
	m.spinner.Style = styles.SpinnerStyle
	m.buildWidgets(msg.doc)
	return m, nil
}

// buildWidgets rebuilds widget state from doc. Widgets with a request in
// flight are kept so their result still reaches a pending controller.
func (m *Model) buildWidgets(doc *page.Document) {
	deps := settings.Deps{
		Context:   m.deps.Context,
		Transport: m.deps.Transport,
		Notifier:  m.toasts,
		Logger:    m.deps.Logger,
	}
	ep := m.deps.Config.Endpoints

	if m.theme == nil || !m.theme.Pending() {
		m.theme = settings.NewTheme(deps, ep.Theme, doc.Theme.Selected, doc.Theme.Values())
	}
	if m.timezone == nil || !m.timezone.Pending() {
		m.timezone = settings.NewTimezone(deps, ep.Timezone, doc.Timezone.Selected, doc.Timezone.Values(), settings.ReloadFunc(m.Reload))
	}
	if m.autoSync == nil || !m.autoSync.Pending() {
		st := settings.AutoSyncState{
			Enabled:   doc.AutoSyncEnabled,
			Interval:  doc.SyncInterval.Selected,
			Intervals: doc.SyncInterval.Values(),
			Location:  time.Local,
		}
		if loc, err := time.LoadLocation(doc.Timezone.Selected); err == nil && doc.Timezone.Selected != "" {
			st.Location = loc
		}
		if el, ok := doc.Element(page.NextSyncID); ok {
			st.NextSync = settings.NextSync{Present: true, Hidden: el.Hidden, Text: el.Text}
		}
		m.autoSync = settings.NewAutoSync(deps, ep.AutoSync, st)
	}
	if m.manual == nil || !m.manual.Pending() {
		label := ""
		if el, ok := doc.Element(page.SyncNowID); ok {
			label = el.Text
		}
		m.manual = settings.NewManualSync(deps, ep.Sync, label, doc.Has(page.QuickSyncID))
	}
}

func (m Model) widget(id string) settings.Widget {
	switch id {
	case settings.ThemeWidgetID:
		return m.theme
	case settings.TimezoneWidgetID:
		return m.timezone
	case settings.AutoSyncWidgetID:
		return m.autoSync
	case settings.ManualSyncWidgetID:
		return m.manual
	}
	return nil
}

func (m Model) handleResult(msg settings.ResultMsg) (tea.Model, tea.Cmd) {
	w := m.widget(msg.Widget)
	if w == nil {
		m.logger.Warn().Str("widget", msg.Widget).Msg("result for unknown widget")
		return m, nil
	}
	cmd := w.Finish(msg)
	if msg.Widget == settings.ThemeWidgetID {
		m.spinner.Style = styles.SpinnerStyle
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && (!m.filtering || msg.String() == "ctrl+c") {
		return m, tea.Quit
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissNewest()
		return m, nil
	case key.Matches(msg, m.keys.DismissAll):
		m.toasts.DismissAll()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadPage()
	}

	if m.state != stateReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % focusCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + focusCount - 1) % focusCount
	case key.Matches(msg, m.keys.Left):
		return m, m.change(-1)
	case key.Matches(msg, m.keys.Right):
		return m, m.change(1)
	case key.Matches(msg, m.keys.Press), key.Matches(msg, m.keys.Toggle):
		return m, m.press()
	case key.Matches(msg, m.keys.Filter):
		if m.focus == focusTimezone && m.timezone.Enabled() {
			m.filtering = true
			return m, m.filter.Focus()
		}
	case key.Matches(msg, m.keys.QuickSync):
		if m.manual.QuickSync() {
			return m, m.manual.Trigger()
		}
	case key.Matches(msg, m.keys.ClearFilter):
		m.filter.SetValue("")
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ClearFilter):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Press):
		m.filtering = false
		m.filter.Blur()
		if zones := m.TimezoneCandidates(); len(zones) > 0 && !slices.Contains(zones, m.timezone.Value()) {
			m.timezone.Cycle(zones, 0)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// change moves the focused select by delta.
func (m Model) change(delta int) tea.Cmd {
	switch m.focus {
	case focusTheme:
		return m.theme.Cycle(delta)
	case focusTimezone:
		m.timezone.Cycle(m.TimezoneCandidates(), delta)
	case focusInterval:
		m.autoSync.CycleInterval(delta)
	case focusAutoToggle:
		m.autoSync.Toggle()
	}
	return nil
}

// press activates the focused control.
func (m Model) press() tea.Cmd {
	switch m.focus {
	case focusTimezone:
		cmd, err := m.timezone.Submit()
		if err != nil {
			return m.toasts.Show("Failed to update timezone", notify.LevelError)
		}
		return cmd
	case focusAutoToggle:
		m.autoSync.Toggle()
	case focusSave:
		if m.autoSync.ButtonEnabled() {
			return m.autoSync.Submit()
		}
	case focusSyncNow:
		return m.manual.Trigger()
	}
	return nil
}

// TimezoneCandidates returns the timezone options matching the filter.
func (m Model) TimezoneCandidates() []string {
	if m.timezone == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		return m.timezone.Options()
	}
	var out []string
	for _, z := range m.timezone.Options() {
		if strings.Contains(strings.ToLower(z), q) {
			out = append(out, z)
		}
	}
	return out
}
