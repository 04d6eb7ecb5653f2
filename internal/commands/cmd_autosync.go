package commands

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/internal/settings"
)

type AutoSyncCmd struct {
	flags *Flags

	enabled  bool
	disabled bool
	interval string
}

// NewAutoSyncCmd creates a new autosync command.
func NewAutoSyncCmd(flags *Flags) *AutoSyncCmd {
	return &AutoSyncCmd{flags: flags}
}

// Register adds the autosync command to the application.
func (cmd *AutoSyncCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "autosync",
		Usage: "Automatic library sync settings",
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Update auto-sync settings",
				UsageText: "profilectl autosync set [--enabled|--disabled] [--interval hourly|daily|weekly]",
				Description: `Saves the auto-sync form. Unspecified fields keep their current value.
The interval can only be changed while auto-sync is enabled.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "enabled",
						Usage:       "turn auto-sync on",
						Destination: &cmd.enabled,
					},
					&cli.BoolFlag{
						Name:        "disabled",
						Usage:       "turn auto-sync off",
						Destination: &cmd.disabled,
					},
					&cli.StringFlag{
						Name:        "interval",
						Aliases:     []string{"i"},
						Usage:       "sync interval (hourly, daily, weekly)",
						Destination: &cmd.interval,
					},
				},
				ShellComplete: staticCompleter(settings.SyncIntervals),
				Action:        cmd.runSet,
			},
		},
	})
	return app
}

func (cmd *AutoSyncCmd) runSet(ctx context.Context, _ *cli.Command) error {
	if cmd.enabled && cmd.disabled {
		return errors.New("--enabled and --disabled are mutually exclusive")
	}
	if cmd.disabled && cmd.interval != "" {
		return errors.New("--interval requires auto-sync to be enabled")
	}

	p := printer.Ctx(ctx)
	s, err := cmd.flags.connect(ctx, p)
	if err != nil {
		return err
	}

	w := s.autoSync()
	if err := applyAutoSync(w, cmd.toggle(), cmd.interval); err != nil {
		return err
	}
	settings.Drive(w, w.Submit())

	if next := w.NextSync(); next.Present && !next.Hidden && next.Text != "" {
		p.Infof("%s", next.Text)
	}
	return outcome(p)
}

func (cmd *AutoSyncCmd) toggle() *bool {
	switch {
	case cmd.enabled:
		on := true
		return &on
	case cmd.disabled:
		off := false
		return &off
	}
	return nil
}

// applyAutoSync sets the form fields that were given. The toggle is applied
// first so an interval can be set in the same step that enables sync.
func applyAutoSync(w *settings.AutoSync, enabled *bool, interval string) error {
	if enabled != nil {
		w.SetEnabled(*enabled)
	}
	if interval != "" {
		return w.SetInterval(interval)
	}
	return nil
}
