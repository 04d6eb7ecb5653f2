package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/internal/settings"
)

type TimezoneCmd struct {
	flags *Flags
	match string

	// pick prompts for a zone when none is given on the command line.
	pick func(current string, options []string) (string, error)
}

// NewTimezoneCmd creates a new timezone command.
func NewTimezoneCmd(flags *Flags) *TimezoneCmd {
	return &TimezoneCmd{flags: flags, pick: pickTimezone}
}

// Register adds the timezone command to the application.
func (cmd *TimezoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "timezone",
		Usage: "Timezone preference",
		Commands: []*cli.Command{
			{
				Name:          "set",
				Usage:         "Set the timezone",
				UsageText:     "profilectl timezone set [zone]",
				Description:   "Sets the timezone used for all displayed times. Without a zone an interactive picker is shown.",
				ShellComplete: staticCompleter(settings.FallbackTimezones),
				Action:        cmd.runSet,
			},
			{
				Name:      "list",
				Usage:     "List the timezones offered by the server",
				UsageText: "profilectl timezone list [--match 'Europe/*']",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "match",
						Aliases:     []string{"m"},
						Usage:       "glob pattern to filter zones (e.g. 'America/**')",
						Destination: &cmd.match,
					},
				},
				Action: cmd.runList,
			},
		},
	})
	return app
}

func (cmd *TimezoneCmd) runSet(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	s, err := cmd.flags.connect(ctx, p)
	if err != nil {
		return err
	}

	zone := c.Args().First()
	if zone == "" {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("zone is required when not running in a terminal")
		}
		zone, err = cmd.pick(s.doc.Timezone.Selected, timezoneOptions(s))
		if err != nil {
			return err
		}
	}

	w := s.timezone(s.reloader(ctx))
	if err := w.Select(zone); err != nil {
		return err
	}
	trigger, err := w.Submit()
	if err != nil {
		return err
	}
	settings.Drive(w, trigger)
	return outcome(p)
}

func (cmd *TimezoneCmd) runList(ctx context.Context, c *cli.Command) error {
	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid pattern %q", cmd.match)
	}

	s, err := cmd.flags.connect(ctx, printer.Ctx(ctx))
	if err != nil {
		return err
	}

	zones, err := matchZones(timezoneOptions(s), cmd.match)
	if err != nil {
		return err
	}

	w := c.Root().Writer
	for _, z := range zones {
		marker := " "
		if z == s.doc.Timezone.Selected {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", marker, z)
	}
	return nil
}

func matchZones(zones []string, pattern string) ([]string, error) {
	if pattern == "" {
		return zones, nil
	}
	var out []string
	for _, z := range zones {
		ok, err := doublestar.Match(pattern, z)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, z)
		}
	}
	return out, nil
}

func pickTimezone(current string, options []string) (string, error) {
	zone := current
	err := huh.NewSelect[string]().
		Title("Select timezone").
		Description("All times are displayed in this timezone").
		Options(huh.NewOptions(options...)...).
		Filtering(true).
		Height(12).
		Value(&zone).
		Run()
	if err != nil {
		return "", fmt.Errorf("select timezone: %w", err)
	}
	return zone, nil
}
