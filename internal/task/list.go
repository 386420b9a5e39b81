package task

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/locusmd/locus/internal/gitx"
)

// ListOptions filters the task listing.
type ListOptions struct {
	Status   string
	Priority string

	// Tags uses ANY-of semantics: a task passes when it carries at
	// least one of the requested tags.
	Tags []string

	// All spans every repository subdirectory under the base directory
	// instead of the single directory for Repo.
	All bool

	Repo *gitx.RepoInfo
}

// List collects tasks and applies the filters. Files that fail to parse
// or lack frontmatter are silently skipped.
func (s *Service) List(opts ListOptions) ([]Info, error) {
	files, err := s.candidateFiles(opts)
	if err != nil {
		return nil, err
	}

	var out []Info

	for _, path := range files {
		repo := opts.Repo
		if opts.All {
			repo = nil
		}

		info, loadErr := s.load(path, repo)
		if loadErr != nil {
			continue
		}

		if matches(info, opts) {
			out = append(out, *info)
		}
	}

	return out, nil
}

// Search returns the listed tasks whose title, body, or tag names
// contain query, case-insensitively.
func (s *Service) Search(query string, opts ListOptions) ([]Info, error) {
	infos, err := s.List(opts)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)

	var out []Info

	for _, info := range infos {
		if infoMatchesQuery(info, needle) {
			out = append(out, info)
		}
	}

	return out, nil
}

func infoMatchesQuery(info Info, needle string) bool {
	if strings.Contains(strings.ToLower(info.Title), needle) {
		return true
	}

	if strings.Contains(strings.ToLower(info.Body), needle) {
		return true
	}

	for _, tag := range info.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}

	return false
}

func (s *Service) candidateFiles(opts ListOptions) ([]string, error) {
	if opts.All {
		base, err := s.paths.BaseDir()
		if err != nil {
			return nil, err
		}

		return s.markdownFiles(base)
	}

	dir, err := s.paths.TaskDir(opts.Repo)
	if err != nil {
		return nil, err
	}

	entries, readErr := s.fsys.ReadDir(dir)
	if readErr != nil {
		return nil, fmt.Errorf("reading task directory: %w", readErr)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() || !isMarkdown(entry.Name()) {
			continue
		}

		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// markdownFiles walks root with an explicit work queue instead of
// recursion, so deep trees cannot exhaust the call stack. The result is
// sorted for deterministic listing order.
func (s *Service) markdownFiles(root string) ([]string, error) {
	pending := []string{root}

	var files []string

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := s.fsys.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, fmt.Errorf("reading task directory: %w", err)
			}

			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				pending = append(pending, path)

				continue
			}

			if isMarkdown(entry.Name()) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)

	return files, nil
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

func matches(info *Info, opts ListOptions) bool {
	if opts.Status != "" && info.Status != opts.Status {
		return false
	}

	if opts.Priority != "" && info.Priority != opts.Priority {
		return false
	}

	if len(opts.Tags) > 0 && !hasAnyTag(info.Tags, opts.Tags) {
		return false
	}

	return true
}

// hasAnyTag implements the ANY-of tag filter: one shared tag suffices.
func hasAnyTag(have, want []string) bool {
	for _, tag := range want {
		for _, own := range have {
			if own == tag {
				return true
			}
		}
	}

	return false
}
