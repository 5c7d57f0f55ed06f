package report

import (
	"strings"
	"testing"
)

func TestLayoutWraps(t *testing.T) {
	c := &fakeCanvas{}
	ts := NewTypesetter(c, true)
	// 10pt gives 5 units per rune, so 50 units hold 10 runes.
	b := ts.Layout("aaaa bbbb cccc", LatinRegular, 10, 50)
	if got := strings.Join(b.Lines, "|"); got != "aaaa bbbb|cccc" {
		t.Errorf("lines = %q", got)
	}
	if b.Height() != 24 {
		t.Errorf("height = %v, want 24", b.Height())
	}
}

func TestLayoutSplitsLongWords(t *testing.T) {
	c := &fakeCanvas{}
	ts := NewTypesetter(c, true)
	b := ts.Layout(strings.Repeat("x", 25), LatinRegular, 10, 50)
	if len(b.Lines) != 3 {
		t.Fatalf("lines = %q", b.Lines)
	}
	for _, l := range b.Lines {
		if len(l) > 10 {
			t.Errorf("line %q too wide", l)
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	c := &fakeCanvas{}
	b := NewTypesetter(c, true).Layout("  ", ArabicRegular, 12, 100)
	if len(b.Lines) != 0 || b.Height() != 0 {
		t.Errorf("block = %+v", b)
	}
}

func TestLayoutArabicDisplayOrder(t *testing.T) {
	c := &fakeCanvas{}
	b := NewTypesetter(c, true).Layout("\u0628\u0628", ArabicRegular, 12, 100)
	if len(b.Lines) != 1 || b.Lines[0] != "\uFE90\uFE91" {
		t.Errorf("lines = %U", []rune(b.Lines[0]))
	}
	if b.LineHeight != lineHeight(ArabicRegular, 12) {
		t.Errorf("line height = %v", b.LineHeight)
	}

	plain := NewTypesetter(c, false).Layout("\u0628\u0628", ArabicRegular, 12, 100)
	if plain.Lines[0] != "\u0628\u0628" {
		t.Errorf("unshaped line = %q", plain.Lines[0])
	}
}
