package state

import "testing"

func TestComputeVisibility(t *testing.T) {
	item := Item{
		Title:        "Banana Bread",
		Subtitle:     "Bakery",
		Keywords:     []string{"loaf", "sweet"},
		SectionTitle: "Desserts",
	}
	cases := []struct {
		name    string
		search  string
		enabled bool
		matcher Matcher
		want    bool
	}{
		{name: "empty", search: "", enabled: true, want: true},
		{name: "whitespace only", search: "   ", enabled: true, want: true},
		{name: "disabled", search: "zzz", enabled: false, want: true},
		{name: "title case insensitive", search: "BANANA", enabled: true, want: true},
		{name: "edges trimmed", search: "  bread ", enabled: true, want: true},
		{name: "subtitle", search: "baker", enabled: true, want: true},
		{name: "keyword", search: "loaf", enabled: true, want: true},
		{name: "section title", search: "dessert", enabled: true, want: true},
		{name: "spans fields", search: "bread bakery", enabled: true, want: true},
		{name: "internal whitespace kept", search: "banana  bread", enabled: true, want: false},
		{name: "not contiguous", search: "bnn", enabled: true, want: false},
		{name: "fuzzy in order", search: "bnn", enabled: true, matcher: FuzzyMatcher{}, want: true},
		{name: "fuzzy out of order", search: "zb", enabled: true, matcher: FuzzyMatcher{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeVisibility(item, tc.search, tc.enabled, tc.matcher)
			if got != tc.want {
				t.Fatalf("ComputeVisibility(%q) = %v, want %v", tc.search, got, tc.want)
			}
		})
	}
}

func TestHaystackJoinsSearchableFields(t *testing.T) {
	item := Item{Title: "Apple", Keywords: []string{"Red", ""}, SectionTitle: "Fruit"}
	if got := Haystack(item); got != "apple red fruit" {
		t.Fatalf("unexpected haystack %q", got)
	}
}

func TestMatcherFor(t *testing.T) {
	if _, ok := MatcherFor("fuzzy").(FuzzyMatcher); !ok {
		t.Fatalf("expected fuzzy matcher")
	}
	if _, ok := MatcherFor(" FUZZY ").(FuzzyMatcher); !ok {
		t.Fatalf("expected fuzzy matcher for padded name")
	}
	if _, ok := MatcherFor("").(SubstringMatcher); !ok {
		t.Fatalf("expected substring matcher by default")
	}
}

func TestInsertAndDeleteSearchText(t *testing.T) {
	c, _ := newTestCollection(t, "alpha")

	if !c.InsertSearchText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if c.SearchText() != "ab" || c.SearchCursorPos() != 2 {
		t.Fatalf("unexpected search state %q/%d", c.SearchText(), c.SearchCursorPos())
	}

	c.searchCursor = 1
	if !c.InsertSearchText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if c.SearchText() != "azb" {
		t.Fatalf("expected insert into middle, got %q", c.SearchText())
	}
	if c.SearchCursorPos() != 2 {
		t.Fatalf("expected cursor 2 after insert, got %d", c.SearchCursorPos())
	}

	if !c.DeleteSearchRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if c.SearchText() != "ab" || c.SearchCursorPos() != 1 {
		t.Fatalf("unexpected search state after delete %q/%d", c.SearchText(), c.SearchCursorPos())
	}

	c.SetSearchText("abc def")
	if !c.DeleteSearchWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if c.SearchText() != "abc " {
		t.Fatalf("expected trailing word removed, got %q", c.SearchText())
	}

	c.SetSearchInput("abc", 0)
	if c.DeleteSearchRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if c.InsertSearchText("") {
		t.Fatal("expected empty insert to fail")
	}
}

func TestSearchCursorNavigation(t *testing.T) {
	c, _ := newTestCollection(t, "one", "two")
	c.SetSearchText("one two")

	if c.MoveSearchCursorEnd() {
		t.Fatal("expected no move when already at end")
	}
	if !c.MoveSearchCursorWordBackward() || c.SearchCursorPos() != 4 {
		t.Fatalf("expected cursor at 4, got %d", c.SearchCursorPos())
	}
	if !c.MoveSearchCursorWordBackward() || c.SearchCursorPos() != 0 {
		t.Fatalf("expected cursor at 0, got %d", c.SearchCursorPos())
	}
	if c.MoveSearchCursorStart() {
		t.Fatal("expected no move when already at start")
	}
	if !c.MoveSearchCursorWordForward() || c.SearchCursorPos() != 4 {
		t.Fatalf("expected cursor at 4 after word forward, got %d", c.SearchCursorPos())
	}
	if !c.MoveSearchCursorRuneForward() || c.SearchCursorPos() != 5 {
		t.Fatalf("expected cursor at 5, got %d", c.SearchCursorPos())
	}
	if !c.MoveSearchCursorRuneBackward() || c.SearchCursorPos() != 4 {
		t.Fatalf("expected cursor at 4, got %d", c.SearchCursorPos())
	}
	if !c.MoveSearchCursorEnd() || c.SearchCursorPos() != 7 {
		t.Fatalf("expected cursor at end, got %d", c.SearchCursorPos())
	}
	if c.MoveSearchCursorRuneForward() {
		t.Fatal("expected no rune move past end")
	}
}
