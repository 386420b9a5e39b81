// Package task implements create/read/update/delete, listing, and search
// of markdown task files, composing the path, naming, and markdown
// services over an injected filesystem.
//
// Every operation re-reads from disk; nothing is cached. A task's
// identity is its file path.
package task

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/locusmd/locus/internal/config"
	"github.com/locusmd/locus/internal/fs"
	"github.com/locusmd/locus/internal/gitx"
	"github.com/locusmd/locus/internal/markdown"
	"github.com/locusmd/locus/internal/naming"
	"github.com/locusmd/locus/internal/paths"
)

const filePerms = 0o644

// Service implements task operations. All dependencies are injected at
// construction; the zero value is not usable.
type Service struct {
	fsys  fs.FS
	cfg   config.Config
	paths *paths.Resolver
	names *naming.Generator
	now   func() time.Time
}

// New returns a Service over the given collaborators.
func New(fsys fs.FS, cfg config.Config, resolver *paths.Resolver, names *naming.Generator) *Service {
	return &Service{
		fsys:  fsys,
		cfg:   cfg,
		paths: resolver,
		names: names,
		now:   time.Now,
	}
}

// Info is the materialized view of a task file.
type Info struct {
	FileName    string
	Title       string
	Status      string
	Priority    string
	Tags        []string
	Created     string
	Path        string // relative to the base directory
	Repository  string // "owner/repo" or DefaultRepository
	Frontmatter *markdown.Frontmatter
	Body        string
}

// CreateInput describes a task to create. Empty Status/Priority and nil
// Tags fall back to the configured defaults.
type CreateInput struct {
	Title    string
	Body     string
	Tags     []string
	Priority string
	Status   string
	Repo     *gitx.RepoInfo
}

// Create writes a new task file and returns its absolute path.
// Fails with [ErrTaskFileExists] when the generated path is taken; the
// hash is not regenerated.
func (s *Service) Create(in CreateInput) (string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", ErrTitleRequired
	}

	dir, err := s.paths.TaskDir(in.Repo)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, s.names.FileName(in.Title))

	exists, existsErr := s.fsys.Exists(path)
	if existsErr != nil {
		return "", fmt.Errorf("checking task file: %w", existsErr)
	}

	if exists {
		return "", fmt.Errorf("%w: %s", ErrTaskFileExists, path)
	}

	fm := &markdown.Frontmatter{
		Status:   s.cfg.Defaults.Status,
		Priority: s.cfg.Defaults.Priority,
		Tags:     s.cfg.Defaults.Tags,
	}

	if in.Status != "" {
		fm.Status = in.Status
	}

	if in.Priority != "" {
		fm.Priority = in.Priority
	}

	if in.Tags != nil {
		fm.Tags = in.Tags
	}

	content, contentErr := markdown.NewTaskContent(in.Title, in.Body, fm, s.now())
	if contentErr != nil {
		return "", contentErr
	}

	writeErr := s.fsys.WriteFileAtomic(path, []byte(content), filePerms)
	if writeErr != nil {
		return "", fmt.Errorf("writing task file: %w", writeErr)
	}

	return path, nil
}

// Get loads a single task, resolving fileName exactly or fuzzily.
// A task file without frontmatter is invalid and fails with
// [ErrMissingFrontmatter].
func (s *Service) Get(fileName string, repo *gitx.RepoInfo) (*Info, error) {
	path, err := s.paths.ResolveTaskFile(fileName, repo)
	if err != nil {
		return nil, err
	}

	exists, existsErr := s.fsys.Exists(path)
	if existsErr != nil {
		return nil, fmt.Errorf("checking task file: %w", existsErr)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, fileName)
	}

	return s.load(path, repo)
}

// UpdateInput describes an update. A nil Body leaves the body untouched;
// a nil Frontmatter leaves the metadata untouched.
type UpdateInput struct {
	Body        *string
	Frontmatter *markdown.Frontmatter
}

// Update merges frontmatter updates over the existing metadata
// (shallow, arrays replaced wholesale), optionally replaces the body,
// and rewrites the file.
func (s *Service) Update(fileName string, in UpdateInput, repo *gitx.RepoInfo) error {
	path, err := s.paths.ResolveTaskFile(fileName, repo)
	if err != nil {
		return err
	}

	exists, existsErr := s.fsys.Exists(path)
	if existsErr != nil {
		return fmt.Errorf("checking task file: %w", existsErr)
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, fileName)
	}

	info, loadErr := s.load(path, repo)
	if loadErr != nil {
		return loadErr
	}

	fm := markdown.Merge(info.Frontmatter, in.Frontmatter)

	body := info.Body
	if in.Body != nil {
		body = *in.Body
	}

	return s.write(path, fm, body)
}

// Delete unlinks a task file. No tombstone is left behind.
func (s *Service) Delete(fileName string, repo *gitx.RepoInfo) error {
	path, err := s.paths.ResolveTaskFile(fileName, repo)
	if err != nil {
		return err
	}

	exists, existsErr := s.fsys.Exists(path)
	if existsErr != nil {
		return fmt.Errorf("checking task file: %w", existsErr)
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, fileName)
	}

	removeErr := s.fsys.Remove(path)
	if removeErr != nil {
		return fmt.Errorf("removing task file: %w", removeErr)
	}

	return nil
}

// load reads and materializes the task at path.
func (s *Service) load(path string, repo *gitx.RepoInfo) (*Info, error) {
	data, err := s.fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	parsed := markdown.Parse(string(data))
	if parsed.Frontmatter == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFrontmatter, filepath.Base(path))
	}

	base, baseErr := s.paths.BaseDir()
	if baseErr != nil {
		return nil, baseErr
	}

	rel, relErr := filepath.Rel(base, path)
	if relErr != nil {
		rel = filepath.Base(path)
	}

	fileName := filepath.Base(path)

	title, found := markdown.ExtractTitle(parsed.Body)
	if !found {
		title = strings.TrimSuffix(fileName, ".md")
	}

	repository := DefaultRepository
	if repo != nil {
		repository = repo.Slug()
	} else if derived, ok := deriveRepository(rel); ok {
		repository = derived
	}

	return &Info{
		FileName:    fileName,
		Title:       title,
		Status:      parsed.Frontmatter.Status,
		Priority:    parsed.Frontmatter.Priority,
		Tags:        parsed.Frontmatter.Tags,
		Created:     parsed.Frontmatter.Created,
		Path:        rel,
		Repository:  repository,
		Frontmatter: parsed.Frontmatter,
		Body:        parsed.Body,
	}, nil
}

// deriveRepository inspects a base-relative path: the first two segments
// that are directories (not .md files) are treated as owner/repo.
func deriveRepository(rel string) (string, bool) {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	if len(segments) < 3 {
		return "", false
	}

	owner := segments[0]
	repo := segments[1]

	if strings.HasSuffix(owner, ".md") || strings.HasSuffix(repo, ".md") {
		return "", false
	}

	return owner + "/" + repo, true
}

// write serializes and atomically rewrites a task file.
func (s *Service) write(path string, fm *markdown.Frontmatter, body string) error {
	content, err := markdown.Generate(fm, body)
	if err != nil {
		return err
	}

	writeErr := s.fsys.WriteFileAtomic(path, []byte(content), filePerms)
	if writeErr != nil {
		return fmt.Errorf("writing task file: %w", writeErr)
	}

	return nil
}
