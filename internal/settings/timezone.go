package settings

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/profilectl/internal/transport"
)

const (
	TimezoneWidgetID = "timezone"
	TimezonePath     = "/api/settings/timezone/"
)

// Reloader refreshes the whole view after a timezone change, since every
// rendered timestamp depends on it.
type Reloader interface {
	Reload() tea.Cmd
}

// ReloadFunc adapts a function to Reloader.
type ReloadFunc func() tea.Cmd

func (f ReloadFunc) Reload() tea.Cmd { return f() }

// FallbackTimezones is offered when the page carries no timezone options.
var FallbackTimezones = []string{
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Berlin",
	"Europe/Paris",
	"Asia/Kolkata",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Pacific/Auckland",
}

// Timezone is the timezone select with an explicit submit.
type Timezone struct {
	ctrl    *Controller
	path    string
	options []string
	value   string
	reload  Reloader
}

func NewTimezone(deps Deps, path, current string, options []string, reload Reloader) *Timezone {
	if path == "" {
		path = TimezonePath
	}
	if len(options) == 0 {
		options = FallbackTimezones
	}
	if current == "" {
		current = "UTC"
	}
	return &Timezone{
		ctrl:    newController(TimezoneWidgetID, deps, "Timezone updated successfully", "Failed to update timezone"),
		path:    path,
		options: options,
		value:   current,
		reload:  reload,
	}
}

func (w *Timezone) ID() string        { return w.ctrl.ID() }
func (w *Timezone) Pending() bool     { return w.ctrl.Pending() }
func (w *Timezone) Enabled() bool     { return !w.ctrl.Pending() }
func (w *Timezone) Value() string     { return w.value }
func (w *Timezone) Options() []string { return w.options }

// ValidateTimezone reports whether zone is a loadable IANA name.
func ValidateTimezone(zone string) error {
	if strings.TrimSpace(zone) == "" || zone == "Local" {
		return fmt.Errorf("timezone %q: %w", zone, ErrInvalidValue)
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return fmt.Errorf("timezone %q: %w", zone, ErrInvalidValue)
	}
	return nil
}

// Select moves the control to zone without submitting.
func (w *Timezone) Select(zone string) error {
	if err := ValidateTimezone(zone); err != nil {
		return err
	}
	if w.ctrl.Pending() {
		return nil
	}
	w.value = zone
	return nil
}

// Cycle moves the selection within the given candidates, which is the
// filtered option list in the terminal UI.
func (w *Timezone) Cycle(candidates []string, delta int) {
	if w.ctrl.Pending() || len(candidates) == 0 {
		return
	}
	w.value = candidates[cycleIndex(candidates, w.value, delta)]
}

// Submit sends the selected timezone.
func (w *Timezone) Submit() (tea.Cmd, error) {
	if err := ValidateTimezone(w.value); err != nil {
		return nil, err
	}
	return w.ctrl.Begin(transport.Request{
		Path: w.path,
		Body: map[string]string{"timezone": w.value},
	}), nil
}

func (w *Timezone) Finish(msg ResultMsg) tea.Cmd {
	return w.ctrl.Finish(msg, func(transport.Envelope) tea.Cmd {
		if w.reload == nil {
			return nil
		}
		return w.reload.Reload()
	})
}
