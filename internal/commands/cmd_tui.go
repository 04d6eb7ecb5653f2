package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/page"
	"github.com/colonyops/profilectl/internal/tui"
	"github.com/colonyops/profilectl/pkg/utils"
)

// deferredLogLimit caps terminal log output held while the TUI owns the screen.
const deferredLogLimit = 1 << 20

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive settings screen (default)",
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	// Without a log file, logs go to stderr and would tear the alt screen.
	if cmd.flags.LogFile == "" {
		held := &utils.DeferredWriter{Limit: deferredLogLimit}
		prev := log.Logger
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: held, TimeFormat: "15:04:05"})
		defer func() {
			log.Logger = prev
			if err := held.Flush(os.Stderr); err != nil {
				log.Error().Err(err).Msg("failed to flush held log output")
			}
		}()
	}

	client, err := cmd.flags.newClient()
	if err != nil {
		return err
	}
	cfg := cmd.flags.config()

	m := tui.New(tui.Deps{
		Context:   ctx,
		Config:    cfg,
		Loader:    page.NewLoader(client, cfg.Server.ProfilePath),
		Transport: client,
		Documents: client,
		Logger:    log.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
