package highlight

import (
	"regexp"
	"testing"

	"mat/internal/doc"
)

func TestFindMatchesPositions(t *testing.T) {
	d := doc.FromText("banana\nno hit here except ana\n", "t", "UTF-8")
	s := NewSearchState(regexp.MustCompile("ana"))
	s.FindMatches(d)
	// Non-overlapping scan: "banana" yields one match, line 2 one more.
	if s.MatchCount() != 2 {
		t.Fatalf("matches = %d, want 2", s.MatchCount())
	}
	first := s.Matches[0]
	if first.LineIdx != 0 || first.StartCol != 1 || first.EndCol != 4 {
		t.Fatalf("first match = %+v", first)
	}
}

func TestNavigationCyclic(t *testing.T) {
	d := doc.FromText("a\nx\na\nx\na\n", "t", "UTF-8")
	s := NewSearchState(regexp.MustCompile("a"))
	s.FindMatches(d)
	if s.CurrentDisplay() != 0 {
		t.Fatalf("display before navigation = %d", s.CurrentDisplay())
	}
	wantLines := []int{0, 2, 4, 0}
	for i, want := range wantLines {
		got, ok := s.Next()
		if !ok || got != want {
			t.Fatalf("next %d = %d %v, want %d", i, got, ok, want)
		}
	}
	if got, _ := s.Prev(); got != 4 {
		t.Fatalf("prev = %d, want 4", got)
	}
	if s.CurrentDisplay() != 3 {
		t.Fatalf("display = %d, want 3", s.CurrentDisplay())
	}
}

func TestNavigationEmpty(t *testing.T) {
	s := NewSearchState(regexp.MustCompile("zzz"))
	s.FindMatches(doc.FromText("abc\n", "t", "UTF-8"))
	if _, ok := s.Next(); ok {
		t.Fatalf("next reported a match")
	}
	if _, ok := s.Prev(); ok {
		t.Fatalf("prev reported a match")
	}
}

func TestPrevStartsAtLast(t *testing.T) {
	d := doc.FromText("a\na\n", "t", "UTF-8")
	s := NewSearchState(regexp.MustCompile("a"))
	s.FindMatches(d)
	if got, _ := s.Prev(); got != 1 {
		t.Fatalf("first prev = %d, want last line", got)
	}
}

func TestApplySearchSplitsSpans(t *testing.T) {
	d := doc.FromText("Hello world!\n", "t", "UTF-8")
	ApplySearch(d, regexp.MustCompile("world"))
	spans := d.Lines[0].Spans
	if len(spans) != 3 {
		t.Fatalf("spans = %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "Hello " || spans[1].Text != "world" || spans[2].Text != "!" {
		t.Fatalf("split wrong: %+v", spans)
	}
	st := spans[1].Style
	if st.Fg != doc.Black || st.Bg != doc.Yellow || !st.Bold {
		t.Fatalf("match style = %+v", st)
	}
}

func TestApplySearchPreservesUnderlyingStyles(t *testing.T) {
	d := &doc.Document{
		Lines: []doc.Line{{Number: 1, Spans: []doc.Span{
			{Text: "red ", Style: doc.SpanStyle{Fg: doc.Red}},
			{Text: "green text", Style: doc.SpanStyle{Fg: doc.Green}},
		}}},
	}
	// The match spans the boundary between the two spans.
	ApplySearch(d, regexp.MustCompile("d gr"))
	spans := d.Lines[0].Spans
	if spans[0].Style.Fg != doc.Red {
		t.Fatalf("leading style lost: %+v", spans[0])
	}
	var matched, trailing bool
	for _, sp := range spans {
		if sp.Style.Bg == doc.Yellow {
			matched = true
		}
		if sp.Text == "een text" && sp.Style.Fg == doc.Green {
			trailing = true
		}
	}
	if !matched || !trailing {
		t.Fatalf("overlay wrong: %+v", spans)
	}
	if d.Lines[0].Text() != "red green text" {
		t.Fatalf("text changed: %q", d.Lines[0].Text())
	}
}

func TestApplySearchMultipleMatchesPerLine(t *testing.T) {
	d := doc.FromText("banana\n", "t", "UTF-8")
	ApplySearch(d, regexp.MustCompile("a"))
	spans := d.Lines[0].Spans
	if len(spans) != 6 {
		t.Fatalf("spans = %d: %+v", len(spans), spans)
	}
	if d.Lines[0].Text() != "banana" {
		t.Fatalf("text changed: %q", d.Lines[0].Text())
	}
}

func TestApplySearchNoMatchLeavesLine(t *testing.T) {
	d := doc.FromText("plain\n", "t", "UTF-8")
	ApplySearch(d, regexp.MustCompile("zzz"))
	if len(d.Lines[0].Spans) != 1 {
		t.Fatalf("spans = %+v", d.Lines[0].Spans)
	}
}
