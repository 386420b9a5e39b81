package markdown

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Reserved frontmatter keys with semantic meaning. Any other key is
// opaque custom metadata kept in [Frontmatter.Extra].
const (
	KeyDate     = "date"
	KeyCreated  = "created"
	KeyStatus   = "status"
	KeyPriority = "priority"
	KeyTags     = "tags"
)

// Frontmatter is the typed view of a task file's YAML metadata block:
// the known optional fields plus a string-keyed extension map for
// everything else, so unknown keys round-trip verbatim.
type Frontmatter struct {
	Date     string
	Created  string
	Status   string
	Priority string
	Tags     []string
	Extra    map[string]any
}

// IsEmpty reports whether no field carries a value.
func (fm *Frontmatter) IsEmpty() bool {
	if fm == nil {
		return true
	}

	return fm.Date == "" && fm.Created == "" && fm.Status == "" &&
		fm.Priority == "" && fm.Tags == nil && len(fm.Extra) == 0
}

// Clone returns a deep copy.
func (fm *Frontmatter) Clone() *Frontmatter {
	if fm == nil {
		return nil
	}

	out := *fm

	if fm.Tags != nil {
		out.Tags = append([]string(nil), fm.Tags...)
	}

	if fm.Extra != nil {
		out.Extra = make(map[string]any, len(fm.Extra))
		for key, value := range fm.Extra {
			out.Extra[key] = value
		}
	}

	return &out
}

// Get returns the value stored under key, reserved or custom.
func (fm *Frontmatter) Get(key string) (any, bool) {
	if fm == nil {
		return nil, false
	}

	switch key {
	case KeyDate:
		return stringProp(fm.Date)
	case KeyCreated:
		return stringProp(fm.Created)
	case KeyStatus:
		return stringProp(fm.Status)
	case KeyPriority:
		return stringProp(fm.Priority)
	case KeyTags:
		if fm.Tags == nil {
			return nil, false
		}

		return fm.Tags, true
	default:
		value, ok := fm.Extra[key]

		return value, ok
	}
}

func stringProp(value string) (any, bool) {
	if value == "" {
		return nil, false
	}

	return value, true
}

// Set stores value under key, routing reserved keys to their typed
// fields. A tags value may be a []string or a single string.
func (fm *Frontmatter) Set(key string, value any) {
	switch key {
	case KeyDate:
		fm.Date = fmt.Sprint(value)
	case KeyCreated:
		fm.Created = fmt.Sprint(value)
	case KeyStatus:
		fm.Status = fmt.Sprint(value)
	case KeyPriority:
		fm.Priority = fmt.Sprint(value)
	case KeyTags:
		fm.Tags = toStringSlice(value)
	default:
		if fm.Extra == nil {
			fm.Extra = make(map[string]any)
		}

		fm.Extra[key] = value
	}
}

// Delete removes key and reports whether it was present.
func (fm *Frontmatter) Delete(key string) bool {
	if fm == nil {
		return false
	}

	switch key {
	case KeyDate:
		had := fm.Date != ""
		fm.Date = ""

		return had
	case KeyCreated:
		had := fm.Created != ""
		fm.Created = ""

		return had
	case KeyStatus:
		had := fm.Status != ""
		fm.Status = ""

		return had
	case KeyPriority:
		had := fm.Priority != ""
		fm.Priority = ""

		return had
	case KeyTags:
		had := fm.Tags != nil
		fm.Tags = nil

		return had
	default:
		_, had := fm.Extra[key]
		delete(fm.Extra, key)

		return had
	}
}

// Merge shallow-merges updates over base and returns the result.
// Scalar fields participate when non-empty, Tags participates when
// non-nil and replaces the existing array wholesale (never a union),
// and every Extra key overwrites.
func Merge(base, updates *Frontmatter) *Frontmatter {
	out := base.Clone()
	if out == nil {
		out = &Frontmatter{}
	}

	if updates == nil {
		return out
	}

	if updates.Date != "" {
		out.Date = updates.Date
	}

	if updates.Created != "" {
		out.Created = updates.Created
	}

	if updates.Status != "" {
		out.Status = updates.Status
	}

	if updates.Priority != "" {
		out.Priority = updates.Priority
	}

	if updates.Tags != nil {
		out.Tags = append([]string(nil), updates.Tags...)
	}

	for key, value := range updates.Extra {
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}

		out.Extra[key] = value
	}

	return out
}

// fromMap builds a Frontmatter from a decoded YAML mapping, pulling out
// the reserved keys and keeping the rest in Extra.
func fromMap(raw map[string]any) *Frontmatter {
	fm := &Frontmatter{}

	for key, value := range raw {
		switch key {
		case KeyDate:
			fm.Date = scalarString(value)
		case KeyCreated:
			fm.Created = scalarString(value)
		case KeyStatus:
			fm.Status = scalarString(value)
		case KeyPriority:
			fm.Priority = scalarString(value)
		case KeyTags:
			fm.Tags = toStringSlice(value)
		default:
			if fm.Extra == nil {
				fm.Extra = make(map[string]any)
			}

			fm.Extra[key] = value
		}
	}

	return fm
}

func scalarString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case time.Time:
		// yaml.v3 resolves timestamp-like scalars to time.Time on
		// untyped decode; map them back to the original text form.
		if typed.Hour() == 0 && typed.Minute() == 0 && typed.Second() == 0 && typed.Nanosecond() == 0 {
			return typed.Format("2006-01-02")
		}

		return typed.Format(time.RFC3339)
	default:
		return fmt.Sprint(value)
	}
}

func toStringSlice(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), typed...)
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, scalarString(item))
		}

		return out
	default:
		return []string{scalarString(value)}
	}
}

// encode renders the frontmatter as a YAML mapping node with stable key
// order: the reserved keys first in canonical order, then custom keys
// sorted lexicographically.
func (fm *Frontmatter) encode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	appendScalar := func(key, value string) {
		if value == "" {
			return
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	appendScalar(KeyDate, fm.Date)
	appendScalar(KeyCreated, fm.Created)
	appendScalar(KeyStatus, fm.Status)
	appendScalar(KeyPriority, fm.Priority)

	if fm.Tags != nil {
		var tagsNode yaml.Node

		encodeErr := tagsNode.Encode(fm.Tags)
		if encodeErr != nil {
			return nil, fmt.Errorf("encode tags: %w", encodeErr)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: KeyTags},
			&tagsNode,
		)
	}

	extraKeys := make([]string, 0, len(fm.Extra))
	for key := range fm.Extra {
		extraKeys = append(extraKeys, key)
	}

	sort.Strings(extraKeys)

	for _, key := range extraKeys {
		var valueNode yaml.Node

		encodeErr := valueNode.Encode(fm.Extra[key])
		if encodeErr != nil {
			return nil, fmt.Errorf("encode %s: %w", key, encodeErr)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&valueNode,
		)
	}

	return node, nil
}
