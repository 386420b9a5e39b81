package cli

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration after defaults, file, and environment are merged.",
		Exec: func(o *IO, _ []string) error {
			cfg := app.Cfg

			if app.ConfigPath != "" {
				o.Println("config_file=" + app.ConfigPath)
			}

			o.Println("task_directory=" + cfg.TaskDirectory)
			o.Println("git.extract_username=" + fmt.Sprint(cfg.Git.ExtractUsername))
			o.Println("git.username_from_remote=" + fmt.Sprint(cfg.Git.UsernameFromRemote))
			o.Println("file_naming.pattern=" + cfg.FileNaming.Pattern)
			o.Println("file_naming.date_format=" + cfg.FileNaming.DateFormat)
			o.Println("file_naming.hash_length=" + fmt.Sprint(cfg.FileNaming.HashLength))
			o.Println("defaults.status=" + cfg.Defaults.Status)
			o.Println("defaults.priority=" + cfg.Defaults.Priority)

			if len(cfg.Defaults.Tags) > 0 {
				o.Println("defaults.tags=" + strings.Join(cfg.Defaults.Tags, ","))
			}

			o.Println("language.default=" + cfg.Language.Default)

			if repo := app.Repo; repo != nil {
				o.Println("detected_repository=" + repo.Slug())
			}

			return nil
		},
	}
}
