// Package markdown parses and serializes task documents: an optional
// YAML frontmatter block fenced by "---" lines, followed by a markdown
// body.
//
// Parsing never destroys data. A file with no opening fence, no closing
// fence, or unparsable YAML degrades to a document whose body is the
// original content in full, with a nil frontmatter.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// delimiter is the frontmatter fence line.
const delimiter = "---"

// Parsed is the decomposition of a task file's raw text.
type Parsed struct {
	// Frontmatter is nil when no valid frontmatter block is present.
	Frontmatter *Frontmatter

	// Body is the text after the closing fence, or the entire content
	// when Frontmatter is nil.
	Body string
}

// Parse decomposes content into frontmatter and body.
//
// Line 0 must be exactly "---" for a frontmatter block to exist; the
// block runs to the next "---" line. A missing closing fence or a YAML
// parse failure degrades to {nil, content} so malformed files are never
// altered destructively.
func Parse(content string) Parsed {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || lines[0] != delimiter {
		return Parsed{Body: content}
	}

	closing := -1

	for idx := 1; idx < len(lines); idx++ {
		if lines[idx] == delimiter {
			closing = idx

			break
		}
	}

	if closing < 0 {
		return Parsed{Body: content}
	}

	var raw map[string]any

	yamlErr := yaml.Unmarshal([]byte(strings.Join(lines[1:closing], "\n")), &raw)
	if yamlErr != nil {
		return Parsed{Body: content}
	}

	return Parsed{
		Frontmatter: fromMap(raw),
		Body:        strings.Join(lines[closing+1:], "\n"),
	}
}

// Generate renders a document from frontmatter and body. A nil or empty
// frontmatter yields the body verbatim, with no stray fence lines.
func Generate(fm *Frontmatter, body string) (string, error) {
	if fm.IsEmpty() {
		return body, nil
	}

	node, err := fm.encode()
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	encodeErr := encoder.Encode(node)
	if encodeErr != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", encodeErr)
	}

	closeErr := encoder.Close()
	if closeErr != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", closeErr)
	}

	return delimiter + "\n" + buf.String() + delimiter + "\n" + body, nil
}

// ExtractTitle returns the text of the first top-level heading line
// ("# ..."), scanning from the top of body. The second return is false
// when no such line exists.
func ExtractTitle(body string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after), true
		}
	}

	return "", false
}

// NewTaskContent synthesizes the initial document for a task: date and
// created default to now, caller-supplied frontmatter merges on top,
// and an omitted body defaults to an H1 with the title.
func NewTaskContent(title, body string, fm *Frontmatter, now time.Time) (string, error) {
	base := &Frontmatter{
		Date:    now.Format("2006-01-02"),
		Created: now.Format(time.RFC3339),
	}

	merged := Merge(base, fm)

	if body == "" {
		body = "# " + title + "\n\n"
	}

	return Generate(merged, body)
}
