package task

import (
	"fmt"

	"github.com/locusmd/locus/internal/gitx"
	"github.com/locusmd/locus/internal/markdown"
)

// Single-property operations on a task's frontmatter. These are the
// thin specializations behind the tags commands; "property" covers the
// reserved keys (status, priority, tags, ...) and custom keys alike.

// GetProperty returns the value stored under key.
// Fails with [ErrPropertyNotFound] when the key is absent. Absence is
// never reported as a successful nil.
func (s *Service) GetProperty(fileName, key string, repo *gitx.RepoInfo) (any, error) {
	info, err := s.Get(fileName, repo)
	if err != nil {
		return nil, err
	}

	value, ok := info.Frontmatter.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, key)
	}

	return value, nil
}

// SetProperty stores value under key, creating the task file with an
// empty body when it does not exist yet.
func (s *Service) SetProperty(fileName, key string, value any, repo *gitx.RepoInfo) error {
	path, err := s.paths.ResolveTaskFile(fileName, repo)
	if err != nil {
		return err
	}

	exists, existsErr := s.fsys.Exists(path)
	if existsErr != nil {
		return fmt.Errorf("checking task file: %w", existsErr)
	}

	if !exists {
		fm := &markdown.Frontmatter{}
		fm.Set(key, value)

		return s.write(path, fm, "")
	}

	info, loadErr := s.load(path, repo)
	if loadErr != nil {
		return loadErr
	}

	fm := info.Frontmatter.Clone()
	fm.Set(key, value)

	return s.write(path, fm, info.Body)
}

// RemoveProperty deletes key from the frontmatter and rewrites the file.
// Fails with [ErrPropertyNotFound] when the key is absent.
func (s *Service) RemoveProperty(fileName, key string, repo *gitx.RepoInfo) error {
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

	fm := info.Frontmatter.Clone()
	if !fm.Delete(key) {
		return fmt.Errorf("%w: %s", ErrPropertyNotFound, key)
	}

	return s.write(path, fm, info.Body)
}

// ClearProperties drops the frontmatter entirely, writing back only the
// body.
func (s *Service) ClearProperties(fileName string, repo *gitx.RepoInfo) error {
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

	return s.write(path, nil, info.Body)
}
