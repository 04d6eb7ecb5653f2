package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/core/validate"
	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/internal/settings"
	"github.com/colonyops/profilectl/pkg/iojson"
)

// Profile is a set of preference changes applied in one run. Nil fields
// are left untouched.
type Profile struct {
	Theme    *string          `json:"theme,omitempty"`
	Timezone *string          `json:"timezone,omitempty"`
	AutoSync *AutoSyncProfile `json:"auto_sync,omitempty"`
	Sync     bool             `json:"sync,omitempty"`
}

type AutoSyncProfile struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	Interval string `json:"interval,omitempty"`
}

type ApplyCmd struct {
	flags  *Flags
	reader *iojson.FileReader[Profile]
}

// NewApplyCmd creates a new apply command.
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{flags: flags, reader: iojson.NewFileReader[Profile]()}
}

// Register adds the apply command to the application.
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "apply",
		Usage:     "Apply several preference changes from a JSON document",
		UsageText: "profilectl apply -f prefs.json\n   echo '{\"theme\":\"dark\"}' | profilectl apply",
		Description: `Reads a JSON object with any of the keys theme, timezone, auto_sync
({"enabled": bool, "interval": string}) and sync (bool), then applies them in
that order. Each change reports its own outcome; a failed change does not stop
the remaining ones. Exits 1 if any change failed.`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})
	return app
}

func (cmd *ApplyCmd) run(ctx context.Context, _ *cli.Command) error {
	prof, err := cmd.reader.Read()
	if err != nil {
		return err
	}
	if prof.empty() {
		return errors.New("nothing to apply")
	}
	if err := prof.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	p := printer.Ctx(ctx)
	s, err := cmd.flags.connect(ctx, p)
	if err != nil {
		return err
	}

	for _, step := range prof.steps(ctx, s) {
		if err := step(); err != nil {
			p.Errorf("%v", err)
		}
	}
	return outcome(p)
}

func (pr Profile) empty() bool {
	return pr.Theme == nil && pr.Timezone == nil && pr.AutoSync == nil && !pr.Sync
}

// Validate checks every value locally so a document with a typo changes
// nothing on the server.
func (pr Profile) Validate() error {
	var checks []error
	if pr.Theme != nil {
		checks = append(checks, validate.ThemeField("theme", *pr.Theme))
	}
	if pr.Timezone != nil {
		checks = append(checks, validate.TimezoneField("timezone", *pr.Timezone))
	}
	if as := pr.AutoSync; as != nil {
		if as.Interval != "" {
			checks = append(checks, validate.IntervalField("auto_sync.interval", as.Interval))
			if as.Enabled != nil && !*as.Enabled {
				checks = append(checks, criterio.NewFieldErrors("auto_sync.interval", errors.New("cannot be set while disabling auto-sync")))
			}
		}
	}
	return criterio.ValidateStruct(checks...)
}

// steps builds the changes in order. Widgets are created lazily so each
// step sees the page as reloaded by the previous one.
func (pr Profile) steps(ctx context.Context, s *session) []func() error {
	var steps []func() error

	if pr.Theme != nil {
		steps = append(steps, func() error {
			w := s.theme()
			trigger, err := w.Set(*pr.Theme)
			if err != nil {
				return err
			}
			settings.Drive(w, trigger)
			return nil
		})
	}

	if pr.Timezone != nil {
		steps = append(steps, func() error {
			w := s.timezone(s.reloader(ctx))
			if err := w.Select(*pr.Timezone); err != nil {
				return err
			}
			trigger, err := w.Submit()
			if err != nil {
				return err
			}
			settings.Drive(w, trigger)
			return nil
		})
	}

	if pr.AutoSync != nil {
		steps = append(steps, func() error {
			w := s.autoSync()
			if err := applyAutoSync(w, pr.AutoSync.Enabled, pr.AutoSync.Interval); err != nil {
				return err
			}
			settings.Drive(w, w.Submit())
			return nil
		})
	}

	if pr.Sync {
		steps = append(steps, func() error {
			w := s.manualSync()
			settings.Drive(w, w.Trigger())
			return nil
		})
	}

	log.Debug().Int("steps", len(steps)).Msg("applying profile")
	return steps
}
