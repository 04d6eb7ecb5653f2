// Package settings implements the settings action controllers: each widget
// captures the intended value, disables its control, performs one async
// preference mutation, and reports the outcome through exactly one
// notification before re-enabling the control.
package settings

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/profilectl/internal/core/logging"
	"github.com/colonyops/profilectl/internal/core/notify"
	"github.com/colonyops/profilectl/internal/transport"
)

// ErrInvalidValue is returned when a control is given a value the
// preference does not accept.
var ErrInvalidValue = errors.New("invalid value")

// ErrBusy is returned when a control is changed while its request is in
// flight.
var ErrBusy = errors.New("request in flight")

// ErrUnexpectedResult is reported when a trigger yields a result that does
// not belong to the widget being driven.
var ErrUnexpectedResult = errors.New("unexpected result")

// Notifier displays the outcome of a settings change.
type Notifier interface {
	Show(message string, level notify.Level) tea.Cmd
}

// Transport performs a preference mutation.
type Transport interface {
	Do(ctx context.Context, r transport.Request) (transport.Envelope, error)
}

// Deps are shared by all widgets. Notifier is the single notification
// center of the program.
type Deps struct {
	Context   context.Context
	Transport Transport
	Notifier  Notifier
	Logger    zerolog.Logger
}

// ResultMsg carries the outcome of one request back into the update loop.
type ResultMsg struct {
	Widget    string
	RequestID string
	Envelope  transport.Envelope
	Err       error
}

// Widget is implemented by the four settings widgets.
type Widget interface {
	ID() string
	Pending() bool
	Finish(ResultMsg) tea.Cmd
}

// Controller runs the submit, notify, restore protocol for one widget. It
// is only touched from the update loop; the request itself runs inside the
// returned command.
type Controller struct {
	id       string
	deps     Deps
	fallback string
	success  string
	logger   zerolog.Logger

	pending bool
}

func newController(id string, deps Deps, success, fallback string) *Controller {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	return &Controller{
		id:       id,
		deps:     deps,
		success:  success,
		fallback: fallback,
		logger:   deps.Logger.With().Str("widget", id).Logger(),
	}
}

// ID returns the widget id results are routed by.
func (c *Controller) ID() string { return c.id }

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool { return c.pending }

// Begin marks the widget pending and returns the command performing req.
// It returns nil while a request is already in flight. The command always
// yields exactly one ResultMsg.
func (c *Controller) Begin(req transport.Request) tea.Cmd {
	if c.pending {
		c.logger.Debug().Msg("trigger ignored, request in flight")
		return nil
	}
	c.pending = true

	var (
		id    = c.id
		reqID = uuid.NewString()
		tr    = c.deps.Transport
		ctx   = logging.WithRequestID(logging.WithWidget(c.deps.Context, id), reqID)
	)
	c.logger.Debug().Str("request_id", reqID).Str("path", req.Path).Msg("submitting preference change")

	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = ResultMsg{Widget: id, RequestID: reqID, Err: fmt.Errorf("transport panic: %v", r)}
			}
		}()
		env, err := tr.Do(ctx, req)
		return ResultMsg{Widget: id, RequestID: reqID, Envelope: env, Err: err}
	}
}

// Finish interprets the result, runs onSuccess for accepted changes and
// emits one notification. The pending flag is cleared on every exit path.
func (c *Controller) Finish(msg ResultMsg, onSuccess func(transport.Envelope) tea.Cmd) tea.Cmd {
	if !c.pending {
		c.logger.Debug().Msg("result without pending request ignored")
		return nil
	}
	defer func() { c.pending = false }()

	logger := c.logger.With().Str("request_id", msg.RequestID).Logger()

	if msg.Err != nil {
		logger.Error().Err(msg.Err).Msg("preference request failed")
		return c.deps.Notifier.Show(c.fallback, notify.LevelError)
	}

	env := msg.Envelope
	if !env.OK() {
		logger.Warn().
			Int("status", env.HTTPStatus).
			Str("server_status", env.Status).
			Str("message", env.Message).
			Msg("preference change rejected")
		text := env.Message
		if text == "" {
			text = c.fallback
		}
		return c.deps.Notifier.Show(text, notify.LevelError)
	}

	follow, err := runHook(onSuccess, env)
	if err != nil {
		logger.Error().Err(err).Msg("success hook failed")
		return c.deps.Notifier.Show(c.fallback, notify.LevelError)
	}

	text := env.Message
	if text == "" {
		text = c.success
	}
	logger.Info().Msg("preference updated")
	return tea.Batch(c.deps.Notifier.Show(text, notify.LevelSuccess), follow)
}

// runHook calls onSuccess, turning a panic into an error.
func runHook(onSuccess func(transport.Envelope) tea.Cmd, env transport.Envelope) (cmd tea.Cmd, err error) {
	if onSuccess == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			cmd, err = nil, fmt.Errorf("success hook panic: %v", r)
		}
	}()
	return onSuccess(env), nil
}

// Drive runs a trigger command to completion outside a Bubble Tea program
// and feeds its result back into w. It is used by one-shot CLI commands.
// A command that yields anything other than w's result finishes w with a
// transport error so the widget never stays pending.
func Drive(w Widget, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	res, ok := msg.(ResultMsg)
	if !ok || res.Widget != w.ID() {
		return w.Finish(ResultMsg{
			Widget:    w.ID(),
			RequestID: res.RequestID,
			Err:       fmt.Errorf("%w: unexpected result %T for %s", ErrUnexpectedResult, msg, w.ID()),
		})
	}
	return w.Finish(res)
}
