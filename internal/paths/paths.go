// Package paths maps configuration and repository identity to the
// concrete directories and files the task core works with.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/locusmd/locus/internal/config"
	"github.com/locusmd/locus/internal/fs"
	"github.com/locusmd/locus/internal/gitx"
)

// ErrHomeDirUnknown is returned when a path needs tilde expansion but no
// home directory can be determined.
var ErrHomeDirUnknown = errors.New("cannot determine home directory")

const dirPerms = 0o755

// Resolver computes task and config paths. All environment access goes
// through the injected env map.
type Resolver struct {
	fsys fs.FS
	cfg  config.Config
	env  map[string]string
}

// New returns a Resolver for the given configuration and environment.
func New(fsys fs.FS, cfg config.Config, env map[string]string) *Resolver {
	return &Resolver{fsys: fsys, cfg: cfg, env: env}
}

// BaseDir returns the configured task directory with a leading "~"
// expanded to the user's home directory.
func (r *Resolver) BaseDir() (string, error) {
	return r.expandHome(r.cfg.TaskDirectory)
}

func (r *Resolver) expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home := r.home()
	if home == "" {
		return "", fmt.Errorf("%w: expanding %s", ErrHomeDirUnknown, path)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (r *Resolver) home() string {
	if runtime.GOOS == "windows" {
		return r.env["USERPROFILE"]
	}

	return r.env["HOME"]
}

// TaskDir returns the directory that holds task files for repo,
// creating it if absent. With a nil repo, or with repository-aware
// placement disabled, this is the base directory; otherwise it is
// <base>/<owner>/<repo>.
func (r *Resolver) TaskDir(repo *gitx.RepoInfo) (string, error) {
	base, err := r.BaseDir()
	if err != nil {
		return "", err
	}

	dir := base
	if repo != nil && r.cfg.Git.ExtractUsername {
		dir = filepath.Join(base, repo.Owner, repo.Repo)
	}

	mkdirErr := r.fsys.MkdirAll(dir, dirPerms)
	if mkdirErr != nil {
		return "", fmt.Errorf("creating task directory: %w", mkdirErr)
	}

	return dir, nil
}

// ResolveTaskFile locates a task file from a partial name inside the
// task directory for repo.
//
// Matching order: a case-insensitive exact match of partialName or
// partialName+".md" wins first; otherwise the first entry containing
// partialName as a case-insensitive substring. Entries come from
// [fs.FS.ReadDir], which sorts by name, so the first match is the
// lexicographically smallest on every platform. When nothing matches
// the hypothetical path
// <dir>/<partialName>.md is returned without being created.
func (r *Resolver) ResolveTaskFile(partialName string, repo *gitx.RepoInfo) (string, error) {
	dir, err := r.TaskDir(repo)
	if err != nil {
		return "", err
	}

	entries, readErr := r.fsys.ReadDir(dir)
	if readErr != nil {
		return "", fmt.Errorf("reading task directory: %w", readErr)
	}

	lowered := strings.ToLower(partialName)

	var substring string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())

		if name == lowered || name == lowered+".md" {
			return filepath.Join(dir, entry.Name()), nil
		}

		if substring == "" && strings.Contains(name, lowered) {
			substring = entry.Name()
		}
	}

	if substring != "" {
		return filepath.Join(dir, substring), nil
	}

	hypothetical := partialName
	if !strings.HasSuffix(strings.ToLower(hypothetical), ".md") {
		hypothetical += ".md"
	}

	return filepath.Join(dir, hypothetical), nil
}

// ConfigDir returns the locus configuration directory:
// $XDG_CONFIG_HOME/locus on Unix, %USERPROFILE%\AppData\Roaming\locus on
// Windows, falling back to ~/.config/locus. Returns "" when no home
// directory is available to anchor the fallback.
func (r *Resolver) ConfigDir() string {
	if runtime.GOOS == "windows" {
		if profile := r.env["USERPROFILE"]; profile != "" {
			return filepath.Join(profile, "AppData", "Roaming", "locus")
		}

		return ""
	}

	if xdg := r.env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "locus")
	}

	if home := r.home(); home != "" {
		return filepath.Join(home, ".config", "locus")
	}

	return ""
}

// SettingsFileName is the config file name inside ConfigDir.
const SettingsFileName = "settings.yml"

// ConfigFilePath returns the settings file path, or "" when ConfigDir
// cannot be determined.
func (r *Resolver) ConfigFilePath() string {
	dir := r.ConfigDir()
	if dir == "" {
		return ""
	}

	return filepath.Join(dir, SettingsFileName)
}
