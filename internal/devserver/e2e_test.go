package devserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/profilectl/internal/core/notify"
	"github.com/colonyops/profilectl/internal/page"
	"github.com/colonyops/profilectl/internal/settings"
	"github.com/colonyops/profilectl/internal/transport"
)

type recorded struct {
	message string
	level   notify.Level
}

type recordingNotifier struct{ shown []recorded }

func (n *recordingNotifier) Show(message string, level notify.Level) tea.Cmd {
	n.shown = append(n.shown, recorded{message, level})
	return nil
}

func newClient(t *testing.T, s *Server) (*transport.Client, *page.Document) {
	t.Helper()

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client, err := transport.New(transport.Options{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	doc, err := page.NewLoader(client, "/profile/").Load(context.Background())
	require.NoError(t, err)
	client.SetDocument(doc)
	return client, doc
}

func TestEndToEnd_Widgets(t *testing.T) {
	s := setupTestServer(t, time.Minute)
	client, doc := newClient(t, s)

	n := &recordingNotifier{}
	deps := settings.Deps{
		Context:   context.Background(),
		Transport: client,
		Notifier:  n,
		Logger:    zerolog.Nop(),
	}

	reloads := 0
	tz := settings.NewTimezone(deps, "", doc.Timezone.Selected, doc.Timezone.Values(),
		settings.ReloadFunc(func() tea.Cmd { reloads++; return nil }))
	require.NoError(t, tz.Select("America/Chicago"))
	cmd, err := tz.Submit()
	require.NoError(t, err)
	settings.Drive(tz, cmd)

	auto := settings.NewAutoSync(deps, "", settings.AutoSyncState{
		Enabled:   doc.AutoSyncEnabled,
		Interval:  doc.SyncInterval.Selected,
		Intervals: doc.SyncInterval.Values(),
		NextSync:  settings.NextSync{Present: doc.Has(page.NextSyncID)},
		Location:  time.UTC,
	})
	auto.Toggle()
	require.NoError(t, auto.SetInterval("hourly"))
	settings.Drive(auto, auto.Submit())

	manual := settings.NewManualSync(deps, "", "", doc.Has(page.QuickSyncID))
	settings.Drive(manual, manual.Trigger())
	settings.Drive(manual, manual.Trigger())

	assert.Equal(t, []recorded{
		{"Timezone updated successfully", notify.LevelSuccess},
		{"Auto-sync settings updated successfully", notify.LevelSuccess},
		{"Sync started successfully", notify.LevelSuccess},
		{"Sync already running", notify.LevelError},
	}, n.shown)
	assert.Equal(t, 1, reloads)
	assert.Equal(t, settings.NextSync{Present: true, Text: "Next sync scheduled for Mar 1, 2024 11:00 AM"}, auto.NextSync())

	prefs := s.Preferences()
	assert.Equal(t, "America/Chicago", prefs.Timezone)
	assert.True(t, prefs.AutoSyncEnabled)
	assert.Equal(t, "hourly", prefs.SyncInterval)
}

func TestEndToEnd_MissingTokenIsRejected(t *testing.T) {
	s := setupTestServer(t, 0)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client, err := transport.New(transport.Options{BaseURL: ts.URL, Timeout: 5 * time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)

	n := &recordingNotifier{}
	theme := settings.NewTheme(settings.Deps{Transport: client, Notifier: n, Logger: zerolog.Nop()}, "", "system", nil)
	cmd, err := theme.Set("dark")
	require.NoError(t, err)
	settings.Drive(theme, cmd)

	require.Len(t, n.shown, 1)
	assert.Equal(t, recorded{"CSRF verification failed", notify.LevelError}, n.shown[0])
	assert.Equal(t, "system", s.Preferences().Theme)
}
