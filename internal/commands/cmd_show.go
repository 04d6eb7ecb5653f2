package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/page"
	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/pkg/iojson"
)

// ProfileView is the current state of the profile page.
type ProfileView struct {
	Theme        string   `json:"theme"`
	Timezone     string   `json:"timezone"`
	AutoSync     bool     `json:"auto_sync_enabled"`
	SyncInterval string   `json:"sync_interval"`
	NextSync     string   `json:"next_sync,omitempty"`
	QuickSync    bool     `json:"quick_sync"`
	Themes       []string `json:"themes"`
	Timezones    int      `json:"timezone_count"`
}

type ShowCmd struct {
	flags  *Flags
	format string
}

// NewShowCmd creates a new show command.
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application.
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print the current profile settings",
		UsageText: "profilectl show [--format text|json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != "text" && cmd.format != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", cmd.format)
	}

	s, err := cmd.flags.connect(ctx, printer.Ctx(ctx))
	if err != nil {
		return err
	}

	view := newProfileView(s.doc)
	w := c.Root().Writer
	if cmd.format == "json" {
		return iojson.Write(w, view)
	}
	return writeProfileText(w, view)
}

func newProfileView(doc *page.Document) ProfileView {
	v := ProfileView{
		Theme:        doc.Theme.Selected,
		Timezone:     doc.Timezone.Selected,
		AutoSync:     doc.AutoSyncEnabled,
		SyncInterval: doc.SyncInterval.Selected,
		QuickSync:    doc.Has(page.QuickSyncID),
		Themes:       doc.Theme.Values(),
		Timezones:    len(doc.Timezone.Options),
	}
	if el, ok := doc.Element(page.NextSyncID); ok && !el.Hidden {
		v.NextSync = el.Text
	}
	return v
}

func writeProfileText(w io.Writer, v ProfileView) error {
	autoSync := "off"
	if v.AutoSync {
		autoSync = "on (" + v.SyncInterval + ")"
	}
	lines := [][2]string{
		{"Theme", v.Theme},
		{"Timezone", v.Timezone},
		{"Auto-sync", autoSync},
	}
	if v.NextSync != "" {
		lines = append(lines, [2]string{"Next sync", v.NextSync})
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", l[0]+":", l[1]); err != nil {
			return err
		}
	}
	return nil
}
