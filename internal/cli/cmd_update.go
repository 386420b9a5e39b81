package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/locusmd/locus/internal/markdown"
	"github.com/locusmd/locus/internal/task"

	flag "github.com/spf13/pflag"
)

// UpdateCmd returns the update command.
func UpdateCmd(app *App) *Command {
	flags := flag.NewFlagSet("update", flag.ContinueOnError)

	status := flags.StringP("status", "s", "", "new status")
	priority := flags.StringP("priority", "p", "", "new priority")
	tags := flags.StringSlice("tag", nil, "replacement tag list (repeatable, replaces all tags)")
	body := flags.StringP("body", "b", "", "replacement body")
	sets := flags.StringArray("set", nil, "set a custom key=value property (repeatable)")

	return &Command{
		Flags: flags,
		Usage: "update [flags] <name>",
		Short: "Update a task's metadata or body",
		Long:  "Merge the given fields into the task's frontmatter. Tags replace the existing list wholesale.",
		Exec: func(_ *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: locus update [flags] <name>")
			}

			fm := &markdown.Frontmatter{
				Status:   *status,
				Priority: *priority,
			}

			if flags.Changed("tag") {
				fm.Tags = *tags
			}

			for _, kv := range *sets {
				key, value, ok := strings.Cut(kv, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid --set %q, want key=value", kv)
				}

				fm.Set(key, value)
			}

			in := task.UpdateInput{Frontmatter: fm}
			if flags.Changed("body") {
				in.Body = body
			}

			return app.Tasks.Update(args[0], in, app.Repo)
		},
	}
}
