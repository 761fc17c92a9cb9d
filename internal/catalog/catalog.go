package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultAction is reported for entries that declare no actions.
const DefaultAction = "select"

var (
	// ErrNotFound is returned when a path does not name an entry.
	ErrNotFound = errors.New("catalog: entry not found")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("catalog: invalid document")
)

// Section groups entries under an optional header.
type Section struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title,omitempty"`
}

// Action is one operation offered for an entry.
type Action struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title,omitempty"`
	Section string `yaml:"section,omitempty"`
}

// Entry is one pickable row. Entries with children open a nested screen.
type Entry struct {
	Key      string   `yaml:"key"`
	Title    string   `yaml:"title,omitempty"`
	Subtitle string   `yaml:"subtitle,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
	Section  string   `yaml:"section,omitempty"`
	Actions  []Action `yaml:"actions,omitempty"`
	Entries  []Entry  `yaml:"entries,omitempty"`
}

// HasChildren reports whether the entry opens a nested screen.
func (e Entry) HasChildren() bool {
	return len(e.Entries) > 0
}

// ActionKeys returns the entry's action keys, or DefaultAction when none are
// declared.
func (e Entry) ActionKeys() []string {
	if len(e.Actions) == 0 {
		return []string{DefaultAction}
	}
	keys := make([]string, len(e.Actions))
	for i, a := range e.Actions {
		keys[i] = a.Key
	}
	return keys
}

// Catalog is the document a picker browses.
type Catalog struct {
	Title    string    `yaml:"title,omitempty"`
	Sections []Section `yaml:"sections,omitempty"`
	Entries  []Entry   `yaml:"entries"`
}

// Page is a window into one level of the catalog.
type Page struct {
	Entries []Entry
	Offset  int
	Total   int
	HasMore bool
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks keys are present and unique per level and fills in
// missing titles from keys.
func (c *Catalog) Validate() error {
	for i := range c.Sections {
		if strings.TrimSpace(c.Sections[i].ID) == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalid, i)
		}
		if c.Sections[i].Title == "" {
			c.Sections[i].Title = c.Sections[i].ID
		}
	}
	return validateLevel(c.Entries, nil)
}

func validateLevel(entries []Entry, path []string) error {
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("%w: entry %d under %q has no key", ErrInvalid, i, strings.Join(path, "/"))
		}
		if strings.Contains(e.Key, "/") {
			return fmt.Errorf("%w: key %q contains '/'", ErrInvalid, e.Key)
		}
		if _, dup := seen[e.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q under %q", ErrInvalid, e.Key, strings.Join(path, "/"))
		}
		seen[e.Key] = struct{}{}
		if e.Title == "" {
			e.Title = e.Key
		}
		actions := make(map[string]struct{}, len(e.Actions))
		for j := range e.Actions {
			a := &e.Actions[j]
			if strings.TrimSpace(a.Key) == "" {
				return fmt.Errorf("%w: action %d of %q has no key", ErrInvalid, j, e.Key)
			}
			if _, dup := actions[a.Key]; dup {
				return fmt.Errorf("%w: duplicate action %q on %q", ErrInvalid, a.Key, e.Key)
			}
			actions[a.Key] = struct{}{}
			if a.Title == "" {
				a.Title = a.Key
			}
		}
		if err := validateLevel(e.Entries, append(path, e.Key)); err != nil {
			return err
		}
	}
	return nil
}

// SectionTitle returns the declared title of section id, or id itself.
func (c *Catalog) SectionTitle(id string) string {
	for _, s := range c.Sections {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}

// Lookup returns the entry named by path.
func (c *Catalog) Lookup(path []string) (Entry, error) {
	if len(path) == 0 {
		return Entry{}, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	level := c.Entries
	var found Entry
	for depth, key := range path {
		ok := false
		for _, e := range level {
			if e.Key == key {
				found, ok = e, true
				break
			}
		}
		if !ok {
			return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(path[:depth+1], "/"))
		}
		level = found.Entries
	}
	return found, nil
}

// Resolve returns the entries listed at path. An empty path is the root.
func (c *Catalog) Resolve(path []string) ([]Entry, error) {
	if len(path) == 0 {
		return c.Entries, nil
	}
	parent, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}
	return parent.Entries, nil
}

// Page returns up to limit entries of the level at path starting at offset.
// A non-positive limit returns the remainder of the level.
func (c *Catalog) Page(path []string, offset, limit int) (Page, error) {
	entries, err := c.Resolve(path)
	if err != nil {
		return Page{}, err
	}
	total := len(entries)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	page := Page{
		Entries: append([]Entry(nil), entries[offset:end]...),
		Offset:  offset,
		Total:   total,
		HasMore: end < total,
	}
	return page, nil
}

// SplitPath turns "a/b/c" into its segments, ignoring empty ones.
func SplitPath(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, "/") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
