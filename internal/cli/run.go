// Package cli wires the services together and dispatches commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/locusmd/locus/internal/config"
	"github.com/locusmd/locus/internal/fs"
	"github.com/locusmd/locus/internal/gitx"
	"github.com/locusmd/locus/internal/naming"
	"github.com/locusmd/locus/internal/paths"
	"github.com/locusmd/locus/internal/task"
)

// App holds the resolved configuration and services shared by all
// commands. Everything is constructed once per invocation in [Run].
type App struct {
	Cfg        config.Config
	ConfigPath string
	Paths      *paths.Resolver
	Tasks      *task.Service

	// Repo is the repository detected from the working directory, nil
	// when outside a git repository or when detection is disabled.
	Repo *gitx.RepoInfo
}

// Run is the main entry point. Returns exit code.
func Run(out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	fsys := fs.NewReal()

	cfgPath := flags.configPath
	if cfgPath == "" {
		// The config path depends only on the environment, so a
		// resolver over the defaults is enough to locate it.
		cfgPath = paths.New(fsys, config.Default(), env).ConfigFilePath()
	}

	cfg, err := config.Load(fsys, cfgPath, env)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	app := &App{
		Cfg:        cfg,
		ConfigPath: cfgPath,
		Paths:      paths.New(fsys, cfg, env),
	}

	app.Tasks = task.New(fsys, cfg, app.Paths, naming.New(cfg.FileNaming))

	if !flags.noGit && cfg.Git.UsernameFromRemote {
		app.Repo = detectRepo()
	}

	commands := []*Command{
		AddCmd(app),
		ShowCmd(app),
		LsCmd(app),
		UpdateCmd(app),
		RmCmd(app),
		TagsCmd(app),
		SearchCmd(app),
		PrintConfigCmd(app),
	}

	if len(flags.remaining) == 0 {
		printUsage(o, commands)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(o, commands)

		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(o, flags.remaining[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o, commands)

	return 1
}

// detectRepo inspects the current working directory for a git remote.
// Detection failures are not errors, tasks just land in the base
// directory.
func detectRepo() *gitx.RepoInfo {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}

	git := gitx.New(cwd)
	if !git.IsGitRepo() {
		return nil
	}

	repo, err := git.RepoInfo()
	if err != nil {
		return nil
	}

	return repo
}

type globalFlags struct {
	configPath string
	noGit      bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		arg := args[idx]

		switch {
		case arg == "--config":
			if idx+1 >= len(args) {
				return globalFlags{}, errMissingValue(arg)
			}

			flags.configPath = args[idx+1]
			idx += 2
		case arg == "--no-git":
			flags.noGit = true
			idx++
		default:
			// Not a global flag, this is the command.
			flags.remaining = args[idx:]

			return flags, nil
		}
	}

	return flags, nil
}

func errMissingValue(name string) error {
	return fmt.Errorf("flag %s requires a value", name)
}

func printUsage(o *IO, commands []*Command) {
	o.Println("Usage: locus [--config <path>] [--no-git] <command> [args]")
	o.Println()
	o.Println("Markdown task tracker. Tasks are plain files grouped by git repository.")
	o.Println()
	o.Println("Commands:")

	for _, cmd := range commands {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("Run 'locus <command> --help' for command details.")
}
