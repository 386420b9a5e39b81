package cli

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// TagsCmd returns the tags command for single-property access.
func TagsCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("tags", flag.ContinueOnError),
		Usage: "tags <get|set|rm|clear> <name> [key] [value]",
		Short: "Read or write frontmatter properties",
		Long: "Access individual frontmatter properties of a task.\n\n" +
			"  tags get <name> <key>           print a property\n" +
			"  tags set <name> <key> <value>   set a property, creating the file if needed\n" +
			"  tags rm <name> <key>            remove a property\n" +
			"  tags clear <name>               drop all frontmatter, keeping the body",
		Exec: func(o *IO, args []string) error {
			if len(args) < 2 {
				return errTagsUsage
			}

			verb, name := args[0], args[1]
			rest := args[2:]

			switch verb {
			case "get":
				if len(rest) != 1 {
					return errTagsUsage
				}

				value, err := app.Tasks.GetProperty(name, rest[0], app.Repo)
				if err != nil {
					return err
				}

				o.Println(fmt.Sprint(value))

				return nil
			case "set":
				if len(rest) != 2 {
					return errTagsUsage
				}

				return app.Tasks.SetProperty(name, rest[0], rest[1], app.Repo)
			case "rm":
				if len(rest) != 1 {
					return errTagsUsage
				}

				return app.Tasks.RemoveProperty(name, rest[0], app.Repo)
			case "clear":
				if len(rest) != 0 {
					return errTagsUsage
				}

				return app.Tasks.ClearProperties(name, app.Repo)
			default:
				return errTagsUsage
			}
		},
	}
}

var errTagsUsage = errors.New("usage: locus tags <get|set|rm|clear> <name> [key] [value]")
