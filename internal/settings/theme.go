package settings

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/profilectl/internal/core/styles"
	"github.com/colonyops/profilectl/internal/transport"
)

const (
	ThemeWidgetID = "theme"
	ThemePath     = "/api/preferences/theme/"
)

// Theme is the theme select. Changing the value submits immediately; the
// palette is applied only after the server accepts the change.
type Theme struct {
	ctrl    *Controller
	path    string
	options []string
	value   string
	apply   func(string) bool
}

// NewTheme creates the theme widget. Empty options default to the built-in
// theme names.
func NewTheme(deps Deps, path, current string, options []string) *Theme {
	if path == "" {
		path = ThemePath
	}
	if len(options) == 0 {
		options = styles.ThemeNames()
	}
	if current == "" {
		current = styles.DefaultTheme
	}
	return &Theme{
		ctrl:    newController(ThemeWidgetID, deps, "Theme updated successfully", "Failed to update theme"),
		path:    path,
		options: options,
		value:   current,
		apply:   styles.ApplyTheme,
	}
}

func (w *Theme) ID() string        { return w.ctrl.ID() }
func (w *Theme) Pending() bool     { return w.ctrl.Pending() }
func (w *Theme) Enabled() bool     { return !w.ctrl.Pending() }
func (w *Theme) Value() string     { return w.value }
func (w *Theme) Options() []string { return w.options }

// Set changes the select to value and submits it.
func (w *Theme) Set(value string) (tea.Cmd, error) {
	if !styles.IsTheme(value) || !slices.Contains(w.options, value) {
		return nil, fmt.Errorf("theme %q: %w", value, ErrInvalidValue)
	}
	if w.ctrl.Pending() {
		return nil, nil
	}
	w.value = value
	return w.ctrl.Begin(transport.Request{
		Path: w.path,
		Body: map[string]string{"theme": value},
	}), nil
}

// Cycle moves the selection by delta options and submits it.
func (w *Theme) Cycle(delta int) tea.Cmd {
	if w.ctrl.Pending() || len(w.options) == 0 {
		return nil
	}
	cmd, _ := w.Set(w.options[cycleIndex(w.options, w.value, delta)])
	return cmd
}

func (w *Theme) Finish(msg ResultMsg) tea.Cmd {
	value := w.value
	return w.ctrl.Finish(msg, func(transport.Envelope) tea.Cmd {
		w.apply(value)
		return nil
	})
}

func cycleIndex(options []string, current string, delta int) int {
	i := slices.Index(options, current)
	if i < 0 {
		i = 0
		if delta > 0 {
			delta--
		}
	}
	n := len(options)
	return ((i+delta)%n + n) % n
}
