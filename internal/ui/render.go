package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"mat/internal/doc"
)

// truncateSpansWithScroll slices a styled line to the visible window:
// columns before scrollCol are dropped, and at most width columns are
// kept. A wide rune straddling either edge is replaced by spaces for
// the columns that remain visible.
func truncateSpansWithScroll(spans []doc.Span, scrollCol, width int) []doc.Span {
	if width <= 0 {
		return nil
	}
	var out []doc.Span
	var cur strings.Builder
	var curStyle doc.SpanStyle
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, doc.Span{Text: cur.String(), Style: curStyle})
			cur.Reset()
		}
	}
	col := 0
	used := 0
	for _, sp := range spans {
		if used >= width {
			break
		}
		for _, r := range sp.Text {
			rw := runewidth.RuneWidth(r)
			switch {
			case col+rw <= scrollCol:
				// fully left of the window
			case col < scrollCol:
				// straddles the left edge
				visible := col + rw - scrollCol
				if visible > width-used {
					visible = width - used
				}
				if curStyle != sp.Style {
					flush()
					curStyle = sp.Style
				}
				cur.WriteString(strings.Repeat(" ", visible))
				used += visible
			case used+rw <= width:
				if curStyle != sp.Style {
					flush()
					curStyle = sp.Style
				}
				cur.WriteRune(r)
				used += rw
			case used < width:
				// straddles the right edge
				if curStyle != sp.Style {
					flush()
					curStyle = sp.Style
				}
				cur.WriteString(strings.Repeat(" ", width-used))
				used = width
			}
			col += rw
			if used >= width {
				break
			}
		}
	}
	flush()
	return out
}

// truncateSpansWithIndicator cuts lines wider than maxWidth and marks
// the cut with a dim ellipsis. The decision is made on the line's total
// width, so a scrolled long line keeps its indicator.
func truncateSpansWithIndicator(spans []doc.Span, scrollCol, maxWidth, displayWidth int) []doc.Span {
	lineWidth := 0
	for _, sp := range spans {
		lineWidth += runewidth.StringWidth(sp.Text)
	}
	if lineWidth <= maxWidth {
		return truncateSpansWithScroll(spans, scrollCol, displayWidth)
	}
	out := truncateSpansWithScroll(spans, scrollCol, maxWidth-1)
	return append(out, doc.Span{Text: "…", Style: doc.SpanStyle{Fg: doc.DarkGray}})
}

// extractWrappedSpans takes the row of a soft-wrapped line starting at
// the given rune offset, at most width columns wide.
func extractWrappedSpans(spans []doc.Span, charOffset, width int) []doc.Span {
	var out []doc.Span
	var cur strings.Builder
	var curStyle doc.SpanStyle
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, doc.Span{Text: cur.String(), Style: curStyle})
			cur.Reset()
		}
	}
	idx := 0
	used := 0
	for _, sp := range spans {
		for _, r := range sp.Text {
			if idx < charOffset {
				idx++
				continue
			}
			rw := runewidth.RuneWidth(r)
			if used+rw > width {
				flush()
				return out
			}
			if curStyle != sp.Style {
				flush()
				curStyle = sp.Style
			}
			cur.WriteRune(r)
			used += rw
			idx++
		}
	}
	flush()
	return out
}

func spanWidth(spans []doc.Span) int {
	w := 0
	for _, sp := range spans {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

// renderSpans draws one content row, padding to width. Grep match
// lines get the match background behind every span that has no
// background of its own.
func (m *Model) renderSpans(spans []doc.Span, isMatch bool, width int) string {
	var b strings.Builder
	for _, sp := range spans {
		st := sp.Style
		if isMatch && st.Bg == "" {
			st.Bg = m.colors.MatchLineBg
		}
		b.WriteString(spanStyle(st).Render(sp.Text))
	}
	if pad := width - spanWidth(spans); pad > 0 {
		padding := strings.Repeat(" ", pad)
		if isMatch {
			padding = spanStyle(doc.SpanStyle{Bg: m.colors.MatchLineBg}).Render(padding)
		}
		b.WriteString(padding)
	}
	return b.String()
}

func (m *Model) renderGutter(number int, first bool) string {
	g := m.gutterWidth()
	if g == 0 {
		return ""
	}
	if number == 0 || !first {
		return strings.Repeat(" ", g)
	}
	return m.styles.Gutter.Render(fmt.Sprintf("%*d ", g-1, number))
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	height := m.contentHeight()
	width := m.contentWidth()

	rendered := 0
	if m.wrapMode == WrapSoft {
		rows := m.wrapRows()
		end := m.scrollLine + height
		if end > len(rows) {
			end = len(rows)
		}
		for _, row := range rows[m.scrollLine:end] {
			line := m.document.Lines[row.lineIdx]
			spans := extractWrappedSpans(line.Spans, row.charOffset, width)
			b.WriteString(m.renderGutter(row.lineNumber, row.isFirstRow))
			b.WriteString(m.renderSpans(spans, line.IsMatch, width))
			b.WriteByte('\n')
			rendered++
		}
	} else {
		end := m.scrollLine + height
		if end > len(m.document.Lines) {
			end = len(m.document.Lines)
		}
		for _, line := range m.document.Lines[m.scrollLine:end] {
			var spans []doc.Span
			if m.wrapMode == WrapTruncate {
				limit := m.maxWidth
				if width < limit {
					limit = width
				}
				spans = truncateSpansWithIndicator(line.Spans, m.scrollCol, limit, width)
			} else {
				spans = truncateSpansWithScroll(line.Spans, m.scrollCol, width)
			}
			b.WriteString(m.renderGutter(line.Number, true))
			b.WriteString(m.renderSpans(spans, line.IsMatch, width))
			b.WriteByte('\n')
			rendered++
		}
	}
	for ; rendered < height; rendered++ {
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderStatusBar lays out name and position on the left, mode
// indicators in the middle, and column plus encoding on the right.
func (m *Model) renderStatusBar() string {
	total := len(m.document.Lines)
	current := 0
	if total > 0 {
		if m.wrapMode == WrapSoft {
			rows := m.wrapRows()
			if m.scrollLine < len(rows) {
				current = rows[m.scrollLine].lineIdx + 1
			} else {
				current = total
			}
		} else {
			current = m.scrollLine + 1
			if current > total {
				current = total
			}
		}
	}
	left := fmt.Sprintf(" %s (%d/%d) ", m.document.SourceName, current, total)

	var center string
	if m.mode == modeSearch {
		center = fmt.Sprintf(" [SEARCH: %s] ", m.input.Value())
	} else {
		var parts []string
		switch m.wrapMode {
		case WrapSoft:
			parts = append(parts, "[WRAP]")
		case WrapTruncate:
			parts = append(parts, "[TRUNC]")
		}
		if m.follow {
			parts = append(parts, "[FOLLOW]")
		}
		if cur, count, ok := m.searchInfo(); ok {
			parts = append(parts, fmt.Sprintf("Match %d/%d", cur, count))
		}
		center = strings.Join(parts, " | ")
	}

	var right string
	foreignEnc := m.document.Encoding != "" && m.document.Encoding != "UTF-8"
	switch {
	case m.wrapMode == WrapSoft && foreignEnc:
		right = m.document.Encoding + " "
	case m.wrapMode != WrapSoft && foreignEnc:
		right = fmt.Sprintf("Col %d/%d | %s ", m.scrollCol+1, m.document.MaxLineWidth, m.document.Encoding)
	case m.wrapMode != WrapSoft:
		right = fmt.Sprintf("Col %d/%d ", m.scrollCol+1, m.document.MaxLineWidth)
	}

	available := m.termWidth - runewidth.StringWidth(left) -
		runewidth.StringWidth(center) - runewidth.StringWidth(right)
	leftPad, rightPad := 0, 0
	if available > 0 {
		leftPad = available / 2
		rightPad = available - leftPad
	}
	bar := left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
	bar = runewidth.Truncate(bar, m.termWidth, "")
	if pad := m.termWidth - runewidth.StringWidth(bar); pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return m.styles.Status.Render(bar)
}
