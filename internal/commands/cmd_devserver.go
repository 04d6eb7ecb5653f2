package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/devserver"
	"github.com/colonyops/profilectl/internal/printer"
)

type DevServerCmd struct {
	flags *Flags

	addr     string
	syncLock time.Duration
	debug    bool
}

// NewDevServerCmd creates a new dev-server command.
func NewDevServerCmd(flags *Flags) *DevServerCmd {
	return &DevServerCmd{flags: flags}
}

// Register adds the dev-server command to the application.
func (cmd *DevServerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dev-server",
		Usage:     "Run the reference profile settings server",
		UsageText: "profilectl dev-server [--addr 127.0.0.1:8000] [--sync-lock 30s]",
		Description: `Serves the profile page and the preference endpoints from memory.
Point the client at it with --url http://<addr>.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to dev_server.addr)",
				Sources:     cli.EnvVars("PROFILECTL_DEV_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.DurationFlag{
				Name:        "sync-lock",
				Usage:       "how long a started sync blocks further syncs (defaults to dev_server.sync_lock)",
				Value:       -1,
				Destination: &cmd.syncLock,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "run gin in debug mode",
				Destination: &cmd.debug,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DevServerCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.config().DevServer
	if cmd.addr != "" {
		cfg.Addr = cmd.addr
	}
	if cmd.syncLock >= 0 {
		cfg.SyncLock = cmd.syncLock
	}
	if !cmd.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := devserver.New(devserver.Options{
		Addr:     cfg.Addr,
		SyncLock: cfg.SyncLock,
		Username: cfg.Username,
		Logger:   log.Logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start dev server: %w", err)
	}
	printer.Ctx(ctx).Infof("serving profile settings on http://%s/profile/", srv.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown dev server")
		return err
	}
	return nil
}
