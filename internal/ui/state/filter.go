package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher decides whether a normalised needle matches a normalised haystack.
type Matcher interface {
	Match(haystack, needle string) bool
}

// SubstringMatcher requires the needle to appear as one contiguous run.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// FuzzyMatcher accepts needles whose runes appear in order, with gaps.
// Results are not ranked.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(haystack, needle string) bool {
	return fuzzy.MatchNormalizedFold(needle, haystack)
}

const (
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

// MatcherFor maps a configuration name onto a Matcher.
func MatcherFor(name string) Matcher {
	if strings.EqualFold(strings.TrimSpace(name), MatchFuzzy) {
		return FuzzyMatcher{}
	}
	return SubstringMatcher{}
}

// NormalizeQuery trims the edges of the search text and lower-cases it.
// Internal whitespace is preserved.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Haystack joins the searchable fields of item into the lower-cased string
// queries are matched against.
func Haystack(item Item) string {
	return strings.ToLower(strings.Join(item.SearchableText(), " "))
}

// ComputeVisibility reports whether item is visible under searchText.
func ComputeVisibility(item Item, searchText string, filteringEnabled bool, matcher Matcher) bool {
	needle := NormalizeQuery(searchText)
	if needle == "" || !filteringEnabled {
		return true
	}
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return matcher.Match(Haystack(item), needle)
}

// SearchCursorPos returns the rune offset of the search caret.
func (c *Collection) SearchCursorPos() int {
	runes := []rune(c.state.SearchText)
	if c.searchCursor < 0 {
		return 0
	}
	if c.searchCursor > len(runes) {
		return len(runes)
	}
	return c.searchCursor
}

// InsertSearchText inserts text at the caret.
func (c *Collection) InsertSearchText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(c.state.SearchText)
	pos := c.SearchCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	c.SetSearchInput(string(updated), pos+len(insert))
	return true
}

// DeleteSearchRuneBackward deletes the rune before the caret.
func (c *Collection) DeleteSearchRuneBackward() bool {
	runes := []rune(c.state.SearchText)
	pos := c.SearchCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	c.SetSearchInput(string(updated), pos-1)
	return true
}

// DeleteSearchWordBackward deletes the word preceding the caret.
func (c *Collection) DeleteSearchWordBackward() bool {
	runes := []rune(c.state.SearchText)
	pos := c.SearchCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStartBefore(runes, pos)
	updated := append(runes[:i:i], runes[pos:]...)
	c.SetSearchInput(string(updated), i)
	return true
}

// MoveSearchCursorStart moves the caret to the start.
func (c *Collection) MoveSearchCursorStart() bool {
	if c.SearchCursorPos() == 0 {
		return false
	}
	c.searchCursor = 0
	return true
}

// MoveSearchCursorEnd moves the caret to the end.
func (c *Collection) MoveSearchCursorEnd() bool {
	end := len([]rune(c.state.SearchText))
	if c.SearchCursorPos() == end {
		return false
	}
	c.searchCursor = end
	return true
}

// MoveSearchCursorWordBackward moves the caret one word backward.
func (c *Collection) MoveSearchCursorWordBackward() bool {
	runes := []rune(c.state.SearchText)
	pos := c.SearchCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStartBefore(runes, pos)
	if i == pos {
		return false
	}
	c.searchCursor = i
	return true
}

// MoveSearchCursorWordForward moves the caret one word forward.
func (c *Collection) MoveSearchCursorWordForward() bool {
	runes := []rune(c.state.SearchText)
	pos := c.SearchCursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	c.searchCursor = i
	return true
}

// MoveSearchCursorRuneBackward moves the caret one rune backward.
func (c *Collection) MoveSearchCursorRuneBackward() bool {
	pos := c.SearchCursorPos()
	if pos == 0 {
		return false
	}
	c.searchCursor = pos - 1
	return true
}

// MoveSearchCursorRuneForward moves the caret one rune forward.
func (c *Collection) MoveSearchCursorRuneForward() bool {
	pos := c.SearchCursorPos()
	if pos >= len([]rune(c.state.SearchText)) {
		return false
	}
	c.searchCursor = pos + 1
	return true
}

func wordStartBefore(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
