package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// staticCompleter returns a ShellCompleteFunc that suggests values as
// positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func staticCompleter(values []string) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		for _, v := range values {
			_, _ = fmt.Fprintln(w, v)
		}
	}
}
