package task

import "errors"

// Error variables for task operations. These form the closed set of
// failure kinds; callers match with [errors.Is].
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskFileExists     = errors.New("task file already exists")
	ErrMissingFrontmatter = errors.New("task file has no frontmatter")
	ErrTitleRequired      = errors.New("title is required")
	ErrPropertyNotFound   = errors.New("property not found")
)

// DefaultRepository is the repository label for tasks that live directly
// in the base directory.
const DefaultRepository = "default"
