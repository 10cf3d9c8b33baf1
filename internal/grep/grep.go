// Package grep reduces a document to its matching lines plus context,
// the way grep -A/-B/-C does.
package grep

import (
	"regexp"
	"sort"

	"mat/internal/doc"
)

// Options carry the context-line counts. A -C style value should be
// expanded into equal Before and After by the caller.
type Options struct {
	Before int
	After  int
}

type interval struct {
	start, end int // half-open line index range
}

// Filter keeps the lines matching re plus the configured context around
// them. Disjoint groups are separated by a "--" row. Match lines keep
// their styling; context lines are restyled as a single dim span.
func Filter(d *doc.Document, re *regexp.Regexp, opt Options) *doc.Document {
	out := &doc.Document{SourceName: d.SourceName, Encoding: d.Encoding}

	matched := make(map[int]bool)
	var intervals []interval
	for i, l := range d.Lines {
		if re.MatchString(l.Text()) {
			matched[i] = true
			start := i - opt.Before
			if start < 0 {
				start = 0
			}
			end := i + opt.After + 1
			if end > len(d.Lines) {
				end = len(d.Lines)
			}
			intervals = append(intervals, interval{start, end})
		}
	}
	if len(intervals) == 0 {
		return out
	}

	merged := mergeIntervals(intervals)
	for gi, iv := range merged {
		if gi > 0 {
			out.Lines = append(out.Lines, doc.Separator())
		}
		for i := iv.start; i < iv.end; i++ {
			l := d.Lines[i].Clone()
			if matched[i] {
				l.IsMatch = true
			} else {
				l.IsContext = true
				if text := l.Text(); text != "" {
					l.Spans = []doc.Span{{Text: text, Style: doc.SpanStyle{Fg: doc.DarkGray}}}
				} else {
					l.Spans = nil
				}
			}
			out.Lines = append(out.Lines, l)
		}
	}
	out.RecalcMaxWidth()
	return out
}

// mergeIntervals collapses overlapping or adjacent ranges into one.
func mergeIntervals(ivs []interval) []interval {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].start < ivs[j].start })
	merged := []interval{ivs[0]}
	for _, iv := range ivs[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
