package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/core/styles"
	"github.com/colonyops/profilectl/internal/core/validate"
	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/internal/settings"
)

type ThemeCmd struct {
	flags *Flags
}

// NewThemeCmd creates a new theme command.
func NewThemeCmd(flags *Flags) *ThemeCmd {
	return &ThemeCmd{flags: flags}
}

// Register adds the theme command to the application.
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "theme",
		Usage: "Theme preference",
		Commands: []*cli.Command{
			{
				Name:          "set",
				Usage:         "Set the theme",
				UsageText:     "profilectl theme set <" + strings.Join(styles.ThemeNames(), "|") + ">",
				ShellComplete: staticCompleter(styles.ThemeNames()),
				Action:        cmd.runSet,
			},
		},
	})
	return app
}

func (cmd *ThemeCmd) runSet(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected one theme (%s)", strings.Join(styles.ThemeNames(), ", "))
	}
	value := c.Args().First()
	if err := validate.Theme(value); err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	s, err := cmd.flags.connect(ctx, p)
	if err != nil {
		return err
	}

	w := s.theme()
	trigger, err := w.Set(value)
	if err != nil {
		return err
	}
	settings.Drive(w, trigger)
	return outcome(p)
}
