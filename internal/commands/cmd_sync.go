package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/internal/settings"
)

type SyncCmd struct {
	flags *Flags
}

// NewSyncCmd creates a new sync command.
func NewSyncCmd(flags *Flags) *SyncCmd {
	return &SyncCmd{flags: flags}
}

// Register adds the sync command to the application.
func (cmd *SyncCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sync",
		Usage:     "Start a library sync now",
		UsageText: "profilectl sync",
		Action:    cmd.run,
	})
	return app
}

func (cmd *SyncCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	s, err := cmd.flags.connect(ctx, p)
	if err != nil {
		return err
	}

	w := s.manualSync()
	settings.Drive(w, w.Trigger())
	return outcome(p)
}
