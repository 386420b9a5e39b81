package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseGenerateRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fm   *Frontmatter
		body string
	}{
		{
			name: "reserved keys",
			fm: &Frontmatter{
				Date:     "2025-03-14",
				Created:  "2025-03-14T09:26:53Z",
				Status:   "todo",
				Priority: "high",
				Tags:     []string{"bug", "urgent"},
			},
			body: "# Fix bug\n\nDetails here.\n",
		},
		{
			name: "custom keys",
			fm: &Frontmatter{
				Status: "doing",
				Extra: map[string]any{
					"assignee": "alice",
					"estimate": 3,
					"flagged":  true,
				},
			},
			body: "# Task\n",
		},
		{
			name: "empty tags list",
			fm:   &Frontmatter{Status: "todo", Tags: []string{}},
			body: "",
		},
		{
			name: "body containing fence line",
			fm:   &Frontmatter{Status: "todo"},
			body: "before\n---\nafter\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			content, err := Generate(testCase.fm, testCase.body)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			parsed := Parse(content)

			if diff := cmp.Diff(testCase.fm, parsed.Frontmatter); diff != "" {
				t.Errorf("frontmatter mismatch (-want +got):\n%s", diff)
			}

			if parsed.Body != testCase.body {
				t.Errorf("body = %q, want %q", parsed.Body, testCase.body)
			}
		})
	}
}

func TestParseNoFrontmatterIdentity(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"# Just a heading\n\ntext\n",
		"",
		"plain text",
		" ---\nnot a fence (indented)\n---\n",
	}

	for _, body := range bodies {
		parsed := Parse(body)

		if parsed.Frontmatter != nil {
			t.Errorf("Parse(%q) found frontmatter, want none", body)
		}

		if parsed.Body != body {
			t.Errorf("Parse(%q) body = %q, want identity", body, parsed.Body)
		}
	}
}

func TestParseUnterminatedFence(t *testing.T) {
	t.Parallel()

	content := "---\nstatus: todo\nno closing fence\n"

	parsed := Parse(content)
	if parsed.Frontmatter != nil {
		t.Error("unterminated fence should not parse as frontmatter")
	}

	if parsed.Body != content {
		t.Errorf("body = %q, want full content", parsed.Body)
	}
}

func TestParseMalformedYAMLDegrades(t *testing.T) {
	t.Parallel()

	content := "---\nstatus: [unterminated\n---\nbody\n"

	parsed := Parse(content)
	if parsed.Frontmatter != nil {
		t.Error("malformed YAML should degrade to nil frontmatter")
	}

	// The whole file, delimiters included, becomes the body.
	if parsed.Body != content {
		t.Errorf("body = %q, want original content", parsed.Body)
	}
}

func TestParseNonMappingYAMLDegrades(t *testing.T) {
	t.Parallel()

	content := "---\njust a scalar\n---\nbody\n"

	parsed := Parse(content)
	if parsed.Frontmatter != nil {
		t.Error("non-mapping YAML should degrade to nil frontmatter")
	}

	if parsed.Body != content {
		t.Errorf("body = %q, want original content", parsed.Body)
	}
}

func TestGenerateEmptyFrontmatterIsBodyVerbatim(t *testing.T) {
	t.Parallel()

	for _, fm := range []*Frontmatter{nil, {}} {
		content, err := Generate(fm, "# Title\n")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		if content != "# Title\n" {
			t.Errorf("Generate = %q, want body verbatim", content)
		}
	}
}

func TestGenerateStableKeyOrder(t *testing.T) {
	t.Parallel()

	fm := &Frontmatter{
		Date:     "2025-03-14",
		Created:  "2025-03-14T09:26:53Z",
		Status:   "todo",
		Priority: "low",
		Tags:     []string{"a"},
		Extra:    map[string]any{"zeta": 1, "alpha": 2},
	}

	content, err := Generate(fm, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantOrder := []string{"date:", "created:", "status:", "priority:", "tags:", "alpha:", "zeta:"}

	last := -1

	for _, key := range wantOrder {
		idx := strings.Index(content, key)
		if idx < 0 {
			t.Fatalf("key %q missing in output:\n%s", key, content)
		}

		if idx < last {
			t.Errorf("key %q out of order in output:\n%s", key, content)
		}

		last = idx
	}

	// Stable across repeated serialization.
	again, err := Generate(fm, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if content != again {
		t.Error("Generate output not stable across calls")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &Frontmatter{
		Status:   "todo",
		Priority: "low",
		Tags:     []string{"a", "b"},
		Extra:    map[string]any{"assignee": "alice", "estimate": 3},
	}

	updates := &Frontmatter{
		Status: "done",
		Tags:   []string{"c"},
		Extra:  map[string]any{"assignee": "bob"},
	}

	merged := Merge(base, updates)

	want := &Frontmatter{
		Status:   "done",
		Priority: "low",
		Tags:     []string{"c"},
		Extra:    map[string]any{"assignee": "bob", "estimate": 3},
	}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}

	// Tags replace wholesale, never union.
	if len(merged.Tags) != 1 || merged.Tags[0] != "c" {
		t.Errorf("tags = %v, want wholesale replacement", merged.Tags)
	}

	// Base is untouched.
	if base.Status != "todo" || len(base.Tags) != 2 {
		t.Error("Merge mutated its base argument")
	}
}

func TestMergeEmptyTagsReplaces(t *testing.T) {
	t.Parallel()

	base := &Frontmatter{Tags: []string{"a"}}
	merged := Merge(base, &Frontmatter{Tags: []string{}})

	if merged.Tags == nil || len(merged.Tags) != 0 {
		t.Errorf("tags = %v, want empty replacement", merged.Tags)
	}
}

func TestMergeNilArguments(t *testing.T) {
	t.Parallel()

	merged := Merge(nil, &Frontmatter{Status: "todo"})
	if merged.Status != "todo" {
		t.Errorf("Status = %q", merged.Status)
	}

	merged = Merge(&Frontmatter{Status: "todo"}, nil)
	if merged.Status != "todo" {
		t.Errorf("Status = %q", merged.Status)
	}
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{"first line", "# Fix bug\n\ntext", "Fix bug", true},
		{"later line", "intro\n\n# Real title\n", "Real title", true},
		{"trimmed", "#   padded   \n", "padded", true},
		{"first of several", "# One\n# Two\n", "One", true},
		{"h2 is not a title", "## Sub\n", "", false},
		{"hash without space", "#tag\n", "", false},
		{"none", "plain\n", "", false},
		{"empty", "", "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, found := ExtractTitle(testCase.body)
			if found != testCase.found || got != testCase.want {
				t.Errorf("ExtractTitle(%q) = %q, %v; want %q, %v",
					testCase.body, got, found, testCase.want, testCase.found)
			}
		})
	}
}

func TestNewTaskContent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	content, err := NewTaskContent("Fix bug", "", &Frontmatter{
		Status: "todo",
		Tags:   []string{"bug"},
	}, now)
	if err != nil {
		t.Fatalf("NewTaskContent failed: %v", err)
	}

	parsed := Parse(content)
	if parsed.Frontmatter == nil {
		t.Fatal("generated task has no frontmatter")
	}

	if parsed.Frontmatter.Date != "2025-03-14" {
		t.Errorf("date = %q", parsed.Frontmatter.Date)
	}

	if parsed.Frontmatter.Created != "2025-03-14T09:26:53Z" {
		t.Errorf("created = %q", parsed.Frontmatter.Created)
	}

	if parsed.Body != "# Fix bug\n\n" {
		t.Errorf("body = %q, want default H1", parsed.Body)
	}

	title, found := ExtractTitle(parsed.Body)
	if !found || title != "Fix bug" {
		t.Errorf("title = %q, %v", title, found)
	}
}

func TestNewTaskContentCallerOverridesDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	content, err := NewTaskContent("Task", "custom body\n", &Frontmatter{
		Date: "1999-01-01",
	}, now)
	if err != nil {
		t.Fatalf("NewTaskContent failed: %v", err)
	}

	parsed := Parse(content)

	if parsed.Frontmatter.Date != "1999-01-01" {
		t.Errorf("caller date not preserved: %q", parsed.Frontmatter.Date)
	}

	if parsed.Body != "custom body\n" {
		t.Errorf("body = %q", parsed.Body)
	}
}

func TestFrontmatterPropertyAccess(t *testing.T) {
	t.Parallel()

	fm := &Frontmatter{Status: "todo", Extra: map[string]any{"assignee": "alice"}}

	value, ok := fm.Get("status")
	if !ok || value != "todo" {
		t.Errorf("Get(status) = %v, %v", value, ok)
	}

	value, ok = fm.Get("assignee")
	if !ok || value != "alice" {
		t.Errorf("Get(assignee) = %v, %v", value, ok)
	}

	if _, ok := fm.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}

	fm.Set("tags", "solo")

	if len(fm.Tags) != 1 || fm.Tags[0] != "solo" {
		t.Errorf("Set(tags) = %v", fm.Tags)
	}

	fm.Set("estimate", 5)

	if fm.Extra["estimate"] != 5 {
		t.Errorf("Set(estimate) = %v", fm.Extra["estimate"])
	}

	if !fm.Delete("status") || fm.Status != "" {
		t.Error("Delete(status) failed")
	}

	if fm.Delete("status") {
		t.Error("second Delete(status) should report absence")
	}

	if !fm.Delete("assignee") {
		t.Error("Delete(assignee) failed")
	}
}
