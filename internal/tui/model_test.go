package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/profilectl/internal/core/notify"
	"github.com/colonyops/profilectl/internal/core/styles"
	"github.com/colonyops/profilectl/internal/page"
	"github.com/colonyops/profilectl/internal/settings"
	"github.com/colonyops/profilectl/internal/transport"
	"github.com/colonyops/profilectl/internal/tui/toast"
	"github.com/colonyops/profilectl/pkg/tuitest"
)

const profileHTML = `<!DOCTYPE html>
<html><head><meta name="csrf-token" content="tok"></head>
<body>
<select id="themeSelect">
  <option value="system">system</option>
  <option value="light">light</option>
  <option value="dark" selected>dark</option>
</select>
<select id="timezoneSelect">
  <option value="UTC" selected>UTC</option>
  <option value="Europe/Berlin">Europe/Berlin</option>
  <option value="Asia/Tokyo">Asia/Tokyo</option>
</select>
<form id="autoSyncForm">
  <input type="checkbox" id="autoSyncEnabled">
  <select id="syncInterval" disabled>
    <option value="hourly">hourly</option>
    <option value="daily" selected>daily</option>
    <option value="weekly">weekly</option>
  </select>
</form>
<p id="nextSyncTime" class="hidden"></p>
<button id="syncNowBtn">Sync Now</button>
<button id="quickSyncButton">Sync</button>
</body></html>`

type fakeLoader struct {
	html  string
	err   error
	calls int
}

func (l *fakeLoader) Load(context.Context) (*page.Document, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return page.Parse(strings.NewReader(l.html))
}

type fakeTransport struct {
	requests []transport.Request
	env      transport.Envelope
	err      error
}

func (t *fakeTransport) Do(_ context.Context, r transport.Request) (transport.Envelope, error) {
	t.requests = append(t.requests, r)
	return t.env, t.err
}

type fakeSink struct{ docs int }

func (s *fakeSink) SetDocument(transport.DocumentTokens) { s.docs++ }

type harness struct {
	loader *fakeLoader
	tr     *fakeTransport
	sink   *fakeSink
	center *toast.Center
}

func newHarness(t *testing.T) (Model, *harness) {
	t.Helper()
	t.Cleanup(func() { styles.ApplyTheme(styles.ThemeDark) })

	h := &harness{
		loader: &fakeLoader{html: profileHTML},
		tr:     &fakeTransport{env: transport.Envelope{HTTPStatus: 200, Status: "success"}},
		sink:   &fakeSink{},
		center: toast.New(toast.WithScheduler(func(time.Duration, tea.Msg) tea.Cmd { return nil })),
	}
	m := New(Deps{
		Context:   context.Background(),
		Loader:    h.loader,
		Transport: h.tr,
		Documents: h.sink,
		Logger:    zerolog.Nop(),
		Toasts:    h.center,
	})
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func loaded(t *testing.T) (Model, *harness) {
	t.Helper()
	m, h := newHarness(t)
	m, _ = update(t, m, m.Reload()())
	require.Equal(t, stateReady, m.state)
	return m, h
}

// run executes cmd and feeds every resulting message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range tuitest.Drain(cmd) {
		var next tea.Cmd
		m, next = update(t, m, msg)
		m = run(t, m, next)
	}
	return m
}

func toastMessages(c *toast.Center) []string {
	var out []string
	for _, ts := range c.Toasts() {
		out = append(out, ts.Notification.Message)
	}
	return out
}

func TestModel_LoadsPage(t *testing.T) {
	m, h := loaded(t)

	assert.Equal(t, 1, h.sink.docs)
	assert.Equal(t, "dark", m.theme.Value())
	assert.Equal(t, "UTC", m.timezone.Value())
	assert.False(t, m.autoSync.IntervalEnabled())
	assert.True(t, m.manual.QuickSync())

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Appearance")
	assert.Contains(t, view, "‹ dark ›")
	assert.Contains(t, view, "Sync Now")
	assert.Contains(t, view, "s sync now")
}

func TestModel_LoadFailure(t *testing.T) {
	m, h := newHarness(t)
	h.loader.err = errors.New("connection refused")

	m, _ = update(t, m, m.Reload()())

	assert.Equal(t, stateFailed, m.state)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Could not load profile")
	assert.Equal(t, []string{"Failed to load profile"}, toastMessages(h.center))
}

func TestModel_ThemeChangeAppliesPalette(t *testing.T) {
	m, h := loaded(t)

	m, cmd := update(t, m, tuitest.KeyType(tea.KeyLeft))
	require.NotNil(t, cmd)
	assert.Equal(t, "light", m.theme.Value())
	assert.False(t, m.theme.Enabled())

	m = run(t, m, cmd)

	assert.Equal(t, styles.ThemeLight, styles.CurrentTheme)
	assert.True(t, m.theme.Enabled())
	assert.Equal(t, []string{"Theme updated successfully"}, toastMessages(h.center))
	require.Len(t, h.tr.requests, 1)
	assert.Equal(t, settings.ThemePath, h.tr.requests[0].Path)
}

func TestModel_TimezoneSubmitReloads(t *testing.T) {
	m, h := loaded(t)

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyType(tea.KeyRight))
	assert.Equal(t, "Europe/Berlin", m.timezone.Value())

	m, cmd := update(t, m, tuitest.KeyEnter())
	require.NotNil(t, cmd)
	m = run(t, m, cmd)

	assert.Equal(t, 2, h.loader.calls, "page reloaded once after success")
	assert.Equal(t, 2, h.sink.docs)
	assert.Equal(t, []string{"Timezone updated successfully"}, toastMessages(h.center))
}

func TestModel_TimezoneFilter(t *testing.T) {
	m, _ := loaded(t)

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyPress('/'))
	require.True(t, m.filtering)
	for _, r := range "tok" {
		m, _ = update(t, m, tuitest.KeyPress(r))
	}
	assert.Equal(t, []string{"Asia/Tokyo"}, m.TimezoneCandidates())

	m, _ = update(t, m, tuitest.KeyEnter())
	assert.False(t, m.filtering)
	assert.Equal(t, "Asia/Tokyo", m.timezone.Value())
}

func TestModel_AutoSyncForm(t *testing.T) {
	m, h := loaded(t)
	h.tr.env = transport.Envelope{
		HTTPStatus: 200,
		Status:     "success",
		Message:    "Auto-sync settings updated successfully",
		Data:       map[string]any{"next_sync": "2024-03-01T11:00:00Z"},
	}

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeySpace())
	assert.True(t, m.autoSync.IntervalEnabled())

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyType(tea.KeyRight))
	assert.Equal(t, "weekly", m.autoSync.Interval())

	m, _ = update(t, m, tuitest.KeyTab())
	m, cmd := update(t, m, tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Saving...")

	m = run(t, m, cmd)
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Save")
	assert.NotContains(t, view, "Saving...")
	assert.Contains(t, view, "Next sync scheduled for Mar 1, 2024 11:00 AM")
	assert.Equal(t, map[string]any{"auto_sync_enabled": true, "sync_interval": "weekly"}, h.tr.requests[0].Body)
}

func TestModel_QuickSyncAtMostOnce(t *testing.T) {
	m, h := loaded(t)

	m, first := update(t, m, tuitest.KeyPress('s'))
	require.NotNil(t, first)
	assert.True(t, m.manual.Busy())

	m, second := update(t, m, tuitest.KeyPress('s'))
	assert.Nil(t, second)

	m = run(t, m, first)
	assert.False(t, m.manual.Busy())
	assert.Len(t, h.tr.requests, 1)
	assert.Len(t, h.center.Toasts(), 1)
}

func TestModel_ReloadKeepsPendingWidget(t *testing.T) {
	m, h := loaded(t)

	m, cmd := update(t, m, tuitest.KeyPress('s'))
	require.NotNil(t, cmd)

	m, _ = update(t, m, m.Reload()())
	m = run(t, m, cmd)

	assert.Equal(t, []string{"Sync started successfully"}, toastMessages(h.center))
}

func TestModel_DismissToasts(t *testing.T) {
	m, h := loaded(t)
	h.center.Show("one", notify.LevelInfo)
	h.center.Show("two", notify.LevelError)
	h.center.Show("three", notify.LevelSuccess)

	m, _ = update(t, m, tuitest.KeyPress('x'))
	assert.Equal(t, []string{"one", "two"}, toastMessages(h.center))

	_, _ = update(t, m, tuitest.KeyPress('X'))
	assert.False(t, h.center.HasToasts())
}

func TestModel_Quit(t *testing.T) {
	m, _ := loaded(t)
	_, cmd := update(t, m, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
