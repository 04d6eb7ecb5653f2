// Package toast implements the notification center: a stack of short-lived,
// dismissible messages rendered over the rest of the screen.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/profilectl/internal/core/notify"
)

const (
	// DisplayDuration is how long a toast stays fully visible.
	DisplayDuration = 5000 * time.Millisecond
	// ExitDuration is the length of the dismissing phase before removal.
	ExitDuration = 300 * time.Millisecond
	// FrameInterval delays the reveal so a toast is first rendered collapsed.
	FrameInterval = time.Second / 60
)

// Phase is the visual state of a toast.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseVisible
	PhaseDismissing
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// Toast is one entry of the stack.
type Toast struct {
	Notification notify.Notification
	Phase        Phase
}

type (
	revealMsg struct{ id int64 }
	expireMsg struct{ id int64 }
	removeMsg struct{ id int64 }
)

// Scheduler returns a command that delivers msg after d.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TickScheduler schedules with tea.Tick.
func TickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Option configures a Center.
type Option func(*Center)

// WithScheduler replaces the timer implementation.
func WithScheduler(s Scheduler) Option {
	return func(c *Center) { c.schedule = s }
}

// WithClock replaces the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// Center owns the toast stack. It has one instance per program, shared by
// every settings widget. All methods must be called from the Bubble Tea
// update loop; lifecycle timers come back as messages through Update.
type Center struct {
	toasts   []Toast
	nextID   int64
	now      func() time.Time
	schedule Scheduler
}

// New creates an empty Center.
func New(opts ...Option) *Center {
	c := &Center{
		now:      time.Now,
		schedule: TickScheduler,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show appends a notification to the stack in its collapsed state and
// returns the command that reveals it on the next frame. Unknown levels are
// shown as info.
func (c *Center) Show(message string, level notify.Level) tea.Cmd {
	c.nextID++
	n := notify.Notification{
		ID:        c.nextID,
		Level:     notify.ParseLevel(string(level)),
		Message:   message,
		CreatedAt: c.now(),
	}
	c.toasts = append(c.toasts, Toast{Notification: n, Phase: PhaseEntering})
	return c.schedule(FrameInterval, revealMsg{id: n.ID})
}

// Update advances toast lifecycles. handled is false for messages that do
// not belong to the center. Messages for toasts that were already removed
// are handled as no-ops.
func (c *Center) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case revealMsg:
		if i := c.index(msg.id); i >= 0 && c.toasts[i].Phase == PhaseEntering {
			c.toasts[i].Phase = PhaseVisible
			return c.schedule(DisplayDuration, expireMsg(msg)), true
		}
		return nil, true
	case expireMsg:
		if i := c.index(msg.id); i >= 0 && c.toasts[i].Phase == PhaseVisible {
			c.toasts[i].Phase = PhaseDismissing
			return c.schedule(ExitDuration, removeMsg(msg)), true
		}
		return nil, true
	case removeMsg:
		c.Dismiss(msg.id)
		return nil, true
	}
	return nil, false
}

// Dismiss removes a toast immediately. It reports false when the toast is
// not in the stack.
func (c *Center) Dismiss(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
	return true
}

// DismissNewest removes the most recently shown toast.
func (c *Center) DismissNewest() bool {
	if len(c.toasts) == 0 {
		return false
	}
	return c.Dismiss(c.toasts[len(c.toasts)-1].Notification.ID)
}

// DismissAll removes all toasts.
func (c *Center) DismissAll() {
	c.toasts = c.toasts[:0]
}

// HasToasts returns true if there are any toasts in the stack.
func (c *Center) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns a copy of the stack, oldest first.
func (c *Center) Toasts() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Get returns the toast with the given id.
func (c *Center) Get(id int64) (Toast, bool) {
	if i := c.index(id); i >= 0 {
		return c.toasts[i], true
	}
	return Toast{}, false
}

func (c *Center) index(id int64) int {
	for i, t := range c.toasts {
		if t.Notification.ID == id {
			return i
		}
	}
	return -1
}
