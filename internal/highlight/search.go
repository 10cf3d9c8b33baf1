package highlight

import (
	"regexp"

	"mat/internal/doc"
)

// MatchPosition locates one match. Columns are byte offsets into the
// line's concatenated text, end exclusive.
type MatchPosition struct {
	LineIdx  int
	StartCol int
	EndCol   int
}

// SearchState tracks the compiled pattern, all match positions and the
// cursor for n/N navigation.
type SearchState struct {
	Pattern *regexp.Regexp
	Matches []MatchPosition
	// Current is the index into Matches, -1 before any navigation.
	Current int
}

// NewSearchState wraps a compiled pattern with empty navigation state.
func NewSearchState(re *regexp.Regexp) *SearchState {
	return &SearchState{Pattern: re, Current: -1}
}

// FindMatches scans the document and records every match position.
func (s *SearchState) FindMatches(d *doc.Document) {
	s.Matches = s.Matches[:0]
	for i, l := range d.Lines {
		for _, m := range s.Pattern.FindAllStringIndex(l.Text(), -1) {
			s.Matches = append(s.Matches, MatchPosition{LineIdx: i, StartCol: m[0], EndCol: m[1]})
		}
	}
}

func (s *SearchState) MatchCount() int { return len(s.Matches) }

// CurrentDisplay is the 1-based match number for the status bar, 0
// before any navigation.
func (s *SearchState) CurrentDisplay() int {
	if s.Current < 0 {
		return 0
	}
	return s.Current + 1
}

// Next advances to the following match, wrapping around, and returns
// its line index. The second return is false when there are no matches.
func (s *SearchState) Next() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	if s.Current < 0 {
		s.Current = 0
	} else {
		s.Current = (s.Current + 1) % len(s.Matches)
	}
	return s.Matches[s.Current].LineIdx, true
}

// Prev steps back to the preceding match, wrapping around.
func (s *SearchState) Prev() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	if s.Current < 0 {
		s.Current = len(s.Matches) - 1
	} else if s.Current == 0 {
		s.Current = len(s.Matches) - 1
	} else {
		s.Current--
	}
	return s.Matches[s.Current].LineIdx, true
}

// SearchStyle is the overlay applied to matched text.
func SearchStyle() doc.SpanStyle {
	return doc.SpanStyle{Fg: doc.Black, Bg: doc.Yellow, Bold: true}
}

// ApplySearch overlays the search style on every match, splitting spans
// at match boundaries while keeping the surrounding styles intact.
func ApplySearch(d *doc.Document, re *regexp.Regexp) {
	style := SearchStyle()
	for li := range d.Lines {
		line := &d.Lines[li]
		matches := re.FindAllStringIndex(line.Text(), -1)
		if len(matches) == 0 {
			continue
		}
		var out []doc.Span
		offset := 0
		for _, span := range line.Spans {
			spanStart := offset
			spanEnd := offset + len(span.Text)
			last := 0
			for _, m := range matches {
				if m[1] <= spanStart || m[0] >= spanEnd {
					continue
				}
				start := m[0] - spanStart
				if start < 0 {
					start = 0
				}
				end := m[1] - spanStart
				if end > len(span.Text) {
					end = len(span.Text)
				}
				if start > last {
					out = append(out, doc.Span{Text: span.Text[last:start], Style: span.Style})
				}
				if end > start {
					out = append(out, doc.Span{Text: span.Text[start:end], Style: style})
				}
				last = end
			}
			if last < len(span.Text) {
				out = append(out, doc.Span{Text: span.Text[last:], Style: span.Style})
			}
			offset = spanEnd
		}
		if len(out) > 0 {
			line.Spans = out
		}
	}
}
