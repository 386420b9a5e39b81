package cli

import (
	"errors"
	"strings"

	"github.com/locusmd/locus/internal/task"

	flag "github.com/spf13/pflag"
)

// SearchCmd returns the search command.
func SearchCmd(app *App) *Command {
	flags := flag.NewFlagSet("search", flag.ContinueOnError)

	all := flags.BoolP("all", "a", false, "search across all repositories")
	filesOnly := flags.Bool("files", false, "match file names and titles only, print paths")

	return &Command{
		Flags: flags,
		Usage: "search [flags] <query>",
		Short: "Search tasks",
		Long:  "Case-insensitive substring search over titles, bodies, and tags.",
		Exec: func(o *IO, args []string) error {
			if len(args) == 0 {
				return errors.New("usage: locus search [flags] <query>")
			}

			query := strings.Join(args, " ")

			if *filesOnly {
				root, err := app.Paths.TaskDir(app.Repo)
				if err != nil {
					return err
				}

				if *all {
					root, err = app.Paths.BaseDir()
					if err != nil {
						return err
					}
				}

				matches, err := app.Tasks.SearchFiles(root, query, task.FileSearchOptions{Names: true, Titles: true})
				if err != nil {
					return err
				}

				if len(matches) == 0 {
					o.Println("no matches")

					return nil
				}

				for _, match := range matches {
					o.Println(match.Path)
				}

				return nil
			}

			infos, err := app.Tasks.Search(query, task.ListOptions{All: *all, Repo: app.Repo})
			if err != nil {
				return err
			}

			printInfos(o, infos)

			return nil
		},
	}
}
