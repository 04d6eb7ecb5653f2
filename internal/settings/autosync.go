package settings

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/profilectl/internal/transport"
)

const (
	AutoSyncWidgetID = "autosync"
	AutoSyncPath     = "/api/settings/auto-sync/"

	saveLabel   = "Save"
	savingLabel = "Saving..."

	nextSyncLayout = "Jan 2, 2006 3:04 PM"
)

// SyncIntervals are the accepted auto-sync intervals.
var SyncIntervals = []string{"hourly", "daily", "weekly"}

var nextSyncParseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// NextSync is the optional "next sync" display element.
type NextSync struct {
	Present bool
	Hidden  bool
	Text    string
}

// AutoSyncState is the initial state read from the page.
type AutoSyncState struct {
	Enabled   bool
	Interval  string
	Intervals []string
	NextSync  NextSync
	// Location formats next-sync timestamps, defaults to time.Local.
	Location *time.Location
}

// AutoSync is the auto-sync form: a toggle, an interval select and a Save
// button. The interval is only editable while the toggle is on.
type AutoSync struct {
	ctrl      *Controller
	path      string
	enabled   bool
	interval  string
	intervals []string
	next      NextSync
	loc       *time.Location
}

func NewAutoSync(deps Deps, path string, st AutoSyncState) *AutoSync {
	if path == "" {
		path = AutoSyncPath
	}
	if len(st.Intervals) == 0 {
		st.Intervals = SyncIntervals
	}
	if st.Interval == "" {
		st.Interval = st.Intervals[0]
	}
	if st.Location == nil {
		st.Location = time.Local
	}
	return &AutoSync{
		ctrl:      newController(AutoSyncWidgetID, deps, "Auto-sync settings updated", "Failed to update auto-sync settings"),
		path:      path,
		enabled:   st.Enabled,
		interval:  st.Interval,
		intervals: st.Intervals,
		next:      st.NextSync,
		loc:       st.Location,
	}
}

func (w *AutoSync) ID() string          { return w.ctrl.ID() }
func (w *AutoSync) Pending() bool       { return w.ctrl.Pending() }
func (w *AutoSync) AutoSyncOn() bool    { return w.enabled }
func (w *AutoSync) Interval() string    { return w.interval }
func (w *AutoSync) Intervals() []string { return w.intervals }
func (w *AutoSync) NextSync() NextSync  { return w.next }

// IntervalEnabled is derived from the toggle alone.
func (w *AutoSync) IntervalEnabled() bool { return w.enabled }

// ButtonEnabled reports whether Save can be pressed.
func (w *AutoSync) ButtonEnabled() bool { return !w.ctrl.Pending() }

// ButtonLabel is "Saving..." while a request is in flight.
func (w *AutoSync) ButtonLabel() string {
	if w.ctrl.Pending() {
		return savingLabel
	}
	return saveLabel
}

// ControlsEnabled reports whether the toggle and interval accept input.
// They are locked while Save is in flight.
func (w *AutoSync) ControlsEnabled() bool { return !w.ctrl.Pending() }

// SetEnabled changes the toggle without submitting. Ignored while saving.
func (w *AutoSync) SetEnabled(on bool) {
	if w.ctrl.Pending() {
		return
	}
	w.enabled = on
}

// Toggle flips the toggle without submitting. Ignored while saving.
func (w *AutoSync) Toggle() {
	if w.ctrl.Pending() {
		return
	}
	w.enabled = !w.enabled
}

// SetInterval changes the interval select. It is rejected while the select
// is disabled or a save is in flight.
func (w *AutoSync) SetInterval(interval string) error {
	if !slices.Contains(w.intervals, interval) {
		return fmt.Errorf("interval %q: %w", interval, ErrInvalidValue)
	}
	if w.ctrl.Pending() {
		return fmt.Errorf("interval %q: %w", interval, ErrBusy)
	}
	if !w.IntervalEnabled() {
		return fmt.Errorf("interval %q: auto-sync is disabled", interval)
	}
	w.interval = interval
	return nil
}

// CycleInterval moves the interval select by delta when it is enabled and
// no save is in flight.
func (w *AutoSync) CycleInterval(delta int) {
	if w.ctrl.Pending() || !w.IntervalEnabled() || len(w.intervals) == 0 {
		return
	}
	w.interval = w.intervals[cycleIndex(w.intervals, w.interval, delta)]
}

// Submit sends the toggle and interval.
func (w *AutoSync) Submit() tea.Cmd {
	return w.ctrl.Begin(transport.Request{
		Path: w.path,
		Body: map[string]any{
			"auto_sync_enabled": w.enabled,
			"sync_interval":     w.interval,
		},
	})
}

func (w *AutoSync) Finish(msg ResultMsg) tea.Cmd {
	return w.ctrl.Finish(msg, func(env transport.Envelope) tea.Cmd {
		w.updateNextSync(env)
		return nil
	})
}

func (w *AutoSync) updateNextSync(env transport.Envelope) {
	if !w.next.Present {
		return
	}
	raw, ok := env.String("next_sync")
	if !ok {
		w.next.Hidden = true
		return
	}
	ts, err := parseNextSync(raw)
	if err != nil {
		w.ctrl.logger.Warn().Err(err).Str("next_sync", raw).Msg("unparseable next sync time")
		w.next.Hidden = true
		return
	}
	w.next.Text = "Next sync scheduled for " + ts.In(w.loc).Format(nextSyncLayout)
	w.next.Hidden = false
}

func parseNextSync(raw string) (time.Time, error) {
	var err error
	for _, layout := range nextSyncParseLayouts {
		var ts time.Time
		ts, err = time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
