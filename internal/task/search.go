package task

import (
	"path/filepath"
	"strings"

	"github.com/locusmd/locus/internal/markdown"
)

// FileSearchOptions selects which fields a file is matched on. The zero
// value matches nothing; callers enable at least one field.
type FileSearchOptions struct {
	Names  bool
	Titles bool
}

// FileMatch is a single hit from [Service.SearchFiles].
type FileMatch struct {
	Path  string // absolute
	Title string // empty when the body has no heading
}

// SearchFiles walks root and returns the markdown files whose name or
// extracted title contains query, case-insensitively. Unreadable files
// are skipped.
func (s *Service) SearchFiles(root, query string, opts FileSearchOptions) ([]FileMatch, error) {
	files, err := s.markdownFiles(root)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)

	var out []FileMatch

	for _, path := range files {
		name := filepath.Base(path)

		title := ""

		if data, readErr := s.fsys.ReadFile(path); readErr == nil {
			if t, ok := markdown.ExtractTitle(markdown.Parse(string(data)).Body); ok {
				title = t
			}
		}

		matched := opts.Names && strings.Contains(strings.ToLower(name), needle)
		if !matched && opts.Titles {
			matched = strings.Contains(strings.ToLower(title), needle)
		}

		if matched {
			out = append(out, FileMatch{Path: path, Title: title})
		}
	}

	return out, nil
}
