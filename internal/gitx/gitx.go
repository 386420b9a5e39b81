// Package gitx detects the current Git repository and derives the
// owner/repo pair used to key per-repository task directories.
//
// RepoInfo is computed fresh on every invocation and never persisted.
// All git interaction is a blocking child-process invocation; the parser
// for remote URLs is pure and testable without git installed.
package gitx

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// Error variables for git operations.
var (
	ErrNotARepository = errors.New("not a git repository")
	ErrNoRemote       = errors.New("no remote configured")
	ErrCommandFailed  = errors.New("git command failed")
)

// RepoInfo identifies a repository by the host/owner/repo triple parsed
// from its remote URL.
type RepoInfo struct {
	Host  string
	Owner string
	Repo  string
}

// Slug returns the "owner/repo" form used for directory placement.
func (r RepoInfo) Slug() string {
	return r.Owner + "/" + r.Repo
}

// Service runs git against a fixed working directory.
type Service struct {
	dir string

	// run executes git with the given arguments and returns trimmed
	// stdout. Swappable in tests.
	run func(dir string, args ...string) (string, error)
}

// New returns a Service that runs git inside dir.
func New(dir string) *Service {
	return &Service{dir: dir, run: runGit}
}

// IsGitRepo reports whether dir is inside a git work tree.
func (s *Service) IsGitRepo() bool {
	out, err := s.run(s.dir, "rev-parse", "--is-inside-work-tree")

	return err == nil && out == "true"
}

// RepoInfo returns the owner/repo parsed from the origin remote, or nil
// when the remote URL has no recognizable owner/repo path.
func (s *Service) RepoInfo() (*RepoInfo, error) {
	if !s.IsGitRepo() {
		return nil, ErrNotARepository
	}

	out, err := s.run(s.dir, "remote", "get-url", "origin")
	if err != nil {
		return nil, fmt.Errorf("%w: origin", ErrNoRemote)
	}

	info, ok := ParseRemoteURL(out)
	if !ok {
		return nil, nil
	}

	return info, nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: git %s: %v", ErrCommandFailed, strings.Join(args, " "), err)
	}

	return strings.TrimSpace(string(output)), nil
}

// ParseRemoteURL extracts host, owner, and repo from a git remote URL.
// SSH forms (scp-like "git@host:owner/repo.git" and "ssh://") are
// normalized to HTTPS before the path is split. Returns (nil, false)
// when the URL has no owner/repo path.
func ParseRemoteURL(raw string) (*RepoInfo, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	if after, ok := strings.CutPrefix(raw, "git@"); ok {
		// scp-like syntax: git@host:owner/repo.git
		host, path, found := strings.Cut(after, ":")
		if !found {
			return nil, false
		}

		raw = "https://" + host + "/" + path
	} else if after, ok := strings.CutPrefix(raw, "ssh://"); ok {
		after = strings.TrimPrefix(after, "git@")
		raw = "https://" + after
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return nil, false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return nil, false
	}

	repo := strings.TrimSuffix(segments[1], ".git")
	if repo == "" {
		return nil, false
	}

	return &RepoInfo{
		Host:  parsed.Hostname(),
		Owner: segments[0],
		Repo:  repo,
	}, true
}
