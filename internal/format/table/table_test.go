package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"api", "go service"},
		{"storefront", "web"},
	}
	got := Format(rows, nil)
	want := []string{
		"api         go service",
		"storefront  web",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatRightAlign(t *testing.T) {
	rows := [][]string{{"a", "1"}, {"b", "100"}}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{"a    1", "b  100"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	rows := [][]string{{"日本", "x"}, {"abc", "y"}}
	got := Format(rows, nil)
	want := []string{"日本  x", "abc   y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatRaggedRows(t *testing.T) {
	rows := [][]string{{"only"}, {"a", "b"}}
	got := Format(rows, nil)
	want := []string{"only", "a     b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Format = %q, want %q", got, want)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestFormatCappedTruncatesWideColumns(t *testing.T) {
	rows := [][]string{{"a very long title", "sub"}, {"short", "x"}}
	got := FormatCapped(rows, nil, []int{8})
	want := []string{"a very …  sub", "short     x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FormatCapped = %q, want %q", got, want)
	}
	if got := FormatCapped(rows, nil, []int{0}); !reflect.DeepEqual(got, Format(rows, nil)) {
		t.Fatalf("zero cap should leave the column unbounded, got %q", got)
	}
}
