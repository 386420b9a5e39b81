package cli

import (
	"errors"

	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <name>",
		Short: "Delete a task",
		Exec: func(_ *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: locus rm <name>")
			}

			return app.Tasks.Delete(args[0], app.Repo)
		},
	}
}
