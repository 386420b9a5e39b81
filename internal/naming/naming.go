// Package naming synthesizes collision-resistant task file names from a
// configurable pattern of {date}, {slug}, and {hash} tokens.
package naming

import (
	"crypto/rand"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"

	"github.com/locusmd/locus/internal/config"
)

// Components holds the pieces substituted into the file name pattern.
type Components struct {
	Date string
	Slug string
	Hash string
}

// Generator produces task file names according to the configured
// pattern, date format, and hash length.
type Generator struct {
	pattern    string
	dateFormat string
	hashLength int
	now        func() time.Time
	entropy    io.Reader
}

// Option customizes a Generator. Used by tests to pin the clock and the
// hash entropy.
type Option func(*Generator)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithEntropy replaces the random source backing Hash.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) { g.entropy = r }
}

// New returns a Generator for the given file naming configuration.
func New(cfg config.FileNaming, opts ...Option) *Generator {
	gen := &Generator{
		pattern:    cfg.Pattern,
		dateFormat: cfg.DateFormat,
		hashLength: cfg.HashLength,
		now:        time.Now,
		entropy:    rand.Reader,
	}

	for _, opt := range opts {
		opt(gen)
	}

	return gen
}

// Slug renders a title as a lowercase hyphenated file name segment.
// Unicode letters and numbers are kept (CJK titles stay intact),
// whitespace and hyphen runs collapse to a single hyphen, and everything
// else is stripped. The result never has leading, trailing, or
// consecutive hyphens.
func Slug(title string) string {
	var out []rune

	pending := false

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if pending && len(out) > 0 {
				out = append(out, '-')
			}

			pending = false

			out = append(out, r)
		case unicode.IsSpace(r) || r == '-':
			pending = true
		}
	}

	return string(out)
}

// Hash returns a fresh random alphanumeric identifier of the configured
// length. The randomness comes from the entropy tail of a ULID, so the
// result is cryptographically strong by default. Collisions are not
// checked here; creation fails on an existing path instead.
func (g *Generator) Hash() string {
	id := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)

	// The last 16 characters of a ULID are pure entropy; the leading 10
	// encode the timestamp and would repeat within the same millisecond.
	encoded := strings.ToLower(id.String())
	if g.hashLength < len(encoded) {
		encoded = encoded[len(encoded)-g.hashLength:]
	}

	return encoded
}

// FormatDate substitutes the YYYY, MM, and DD tokens in pattern.
// No other tokens are supported.
func FormatDate(date time.Time, pattern string) string {
	replacer := strings.NewReplacer(
		"YYYY", date.Format("2006"),
		"MM", date.Format("01"),
		"DD", date.Format("02"),
	)

	return replacer.Replace(pattern)
}

// Components computes the {date}, {slug}, and {hash} values for title.
func (g *Generator) Components(title string) Components {
	return Components{
		Date: FormatDate(g.now(), g.dateFormat),
		Slug: Slug(title),
		Hash: g.Hash(),
	}
}

// FileName renders the configured pattern for title and guarantees a
// single ".md" suffix.
func (g *Generator) FileName(title string) string {
	parts := g.Components(title)

	name := strings.NewReplacer(
		"{date}", parts.Date,
		"{slug}", parts.Slug,
		"{hash}", parts.Hash,
	).Replace(g.pattern)

	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	return name
}

const (
	datePrefixLen = len("2006-01-02")
	minHashLen    = 4
)

// ParseFileName recovers the date, slug, and hash components from a file
// name. This is a best-effort heuristic for diagnostics only: names
// produced with custom patterns may not decompose cleanly, and nothing
// else relies on the result.
func ParseFileName(fileName string) Components {
	name := strings.TrimSuffix(fileName, ".md")

	var parts Components

	if len(name) >= datePrefixLen && isDate(name[:datePrefixLen]) {
		parts.Date = name[:datePrefixLen]
		name = strings.TrimPrefix(name[datePrefixLen:], "-")
	}

	if idx := strings.LastIndex(name, "-"); idx >= 0 {
		tail := name[idx+1:]
		if len(tail) >= minHashLen && isAlphanumeric(tail) {
			parts.Hash = tail
			name = name[:idx]
		}
	}

	parts.Slug = strings.Trim(name, "-")

	return parts
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)

	return err == nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isLower := r >= 'a' && r <= 'z'

		if !isDigit && !isLower {
			return false
		}
	}

	return s != ""
}
