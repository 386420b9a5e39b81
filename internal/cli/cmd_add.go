package cli

import (
	"errors"
	"strings"

	"github.com/locusmd/locus/internal/task"

	flag "github.com/spf13/pflag"
)

// AddCmd returns the add command.
func AddCmd(app *App) *Command {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)

	body := flags.StringP("body", "b", "", "task body (defaults to a heading with the title)")
	tags := flags.StringSlice("tag", nil, "tag to set (repeatable)")
	priority := flags.StringP("priority", "p", "", "priority (defaults to config)")
	status := flags.StringP("status", "s", "", "status (defaults to config)")
	global := flags.Bool("global", false, "create in the base directory, ignoring the detected repository")

	return &Command{
		Flags: flags,
		Usage: "add [flags] <title>",
		Short: "Create a new task",
		Long:  "Create a task file named from the date, a slug of the title, and a random hash.",
		Exec: func(o *IO, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errors.New("usage: locus add [flags] <title>")
			}

			repo := app.Repo
			if *global {
				repo = nil
			}

			path, err := app.Tasks.Create(task.CreateInput{
				Title:    title,
				Body:     *body,
				Tags:     *tags,
				Priority: *priority,
				Status:   *status,
				Repo:     repo,
			})
			if err != nil {
				return err
			}

			o.Println(path)

			return nil
		},
	}
}
