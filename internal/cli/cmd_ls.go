package cli

import (
	"strings"

	"github.com/locusmd/locus/internal/task"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(app *App) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)

	status := flags.StringP("status", "s", "", "only tasks with this status")
	priority := flags.StringP("priority", "p", "", "only tasks with this priority")
	tags := flags.StringSlice("tag", nil, "only tasks carrying at least one of these tags (repeatable)")
	all := flags.BoolP("all", "a", false, "list tasks across all repositories")

	return &Command{
		Flags: flags,
		Usage: "ls [flags]",
		Short: "List tasks",
		Long:  "List tasks for the current repository, or every repository with --all.",
		Exec: func(o *IO, _ []string) error {
			infos, err := app.Tasks.List(task.ListOptions{
				Status:   *status,
				Priority: *priority,
				Tags:     *tags,
				All:      *all,
				Repo:     app.Repo,
			})
			if err != nil {
				return err
			}

			printInfos(o, infos)

			return nil
		},
	}
}

func printInfos(o *IO, infos []task.Info) {
	if len(infos) == 0 {
		o.Println("no tasks")

		return
	}

	for _, info := range infos {
		line := info.Status + "\t" + info.Priority + "\t" + info.Path + "\t" + info.Title

		if len(info.Tags) > 0 {
			line += "\t[" + strings.Join(info.Tags, ",") + "]"
		}

		o.Println(line)
	}
}
