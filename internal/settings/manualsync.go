package settings

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/profilectl/internal/transport"
)

const (
	ManualSyncWidgetID = "manualsync"
	SyncPath           = "/api/sync/"

	defaultSyncLabel = "Sync Now"
	syncingLabel     = "Syncing..."
)

// ManualSync is the "Sync Now" button. QuickSync reports whether the page
// also offers the quick-sync shortcut.
type ManualSync struct {
	ctrl      *Controller
	path      string
	label     string
	quickSync bool
}

func NewManualSync(deps Deps, path, label string, quickSync bool) *ManualSync {
	if path == "" {
		path = SyncPath
	}
	if label == "" {
		label = defaultSyncLabel
	}
	return &ManualSync{
		ctrl:      newController(ManualSyncWidgetID, deps, "Sync started successfully", "Failed to start sync"),
		path:      path,
		label:     label,
		quickSync: quickSync,
	}
}

func (w *ManualSync) ID() string      { return w.ctrl.ID() }
func (w *ManualSync) Pending() bool   { return w.ctrl.Pending() }
func (w *ManualSync) Enabled() bool   { return !w.ctrl.Pending() }
func (w *ManualSync) Busy() bool      { return w.ctrl.Pending() }
func (w *ManualSync) QuickSync() bool { return w.quickSync }

// Label is the button text, "Syncing..." while a request is in flight.
func (w *ManualSync) Label() string {
	if w.ctrl.Pending() {
		return syncingLabel
	}
	return w.label
}

// Trigger starts a sync. The request has no body.
func (w *ManualSync) Trigger() tea.Cmd {
	return w.ctrl.Begin(transport.Request{Path: w.path})
}

func (w *ManualSync) Finish(msg ResultMsg) tea.Cmd {
	return w.ctrl.Finish(msg, nil)
}
