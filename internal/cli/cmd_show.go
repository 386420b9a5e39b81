package cli

import (
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(app *App) *Command {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)

	bodyOnly := flags.Bool("body", false, "print only the body")

	return &Command{
		Flags: flags,
		Usage: "show [flags] <name>",
		Short: "Display a task",
		Long:  "Display a task resolved by exact file name or by substring.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: locus show [flags] <name>")
			}

			info, err := app.Tasks.Get(args[0], app.Repo)
			if err != nil {
				return err
			}

			if *bodyOnly {
				o.Printf("%s", info.Body)

				return nil
			}

			o.Println("file:      " + info.Path)
			o.Println("title:     " + info.Title)
			o.Println("repo:      " + info.Repository)
			o.Println("status:    " + info.Status)
			o.Println("priority:  " + info.Priority)

			if len(info.Tags) > 0 {
				o.Println("tags:      " + strings.Join(info.Tags, ", "))
			}

			if info.Created != "" {
				o.Println("created:   " + info.Created)
			}

			o.Println()
			o.Printf("%s", info.Body)

			return nil
		},
	}
}
