package ui

import (
	"regexp"

	"github.com/mattn/go-runewidth"

	"mat/internal/doc"
	"mat/internal/highlight"
	"mat/internal/pattern"
	"mat/internal/tail"
	"mat/internal/util/logx"
)

// contentHeight is the rows available for document content, everything
// except the status bar.
func (m *Model) contentHeight() int {
	h := m.termHeight - 1
	if h < 0 {
		h = 0
	}
	return h
}

// contentWidth is the columns available after the gutter.
func (m *Model) contentWidth() int {
	w := m.termWidth - m.gutterWidth()
	if w < 0 {
		w = 0
	}
	return w
}

// gutterWidth is digits of the largest line number plus a space on each
// side, at least 3. Zero when the gutter is hidden.
func (m *Model) gutterWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	max := len(m.document.Lines)
	digits := 1
	for max >= 10 {
		digits++
		max /= 10
	}
	if digits+2 < 3 {
		return 3
	}
	return digits + 2
}

func (m *Model) maxScroll() int {
	total := len(m.document.Lines)
	if m.wrapMode == WrapSoft {
		total = m.totalWrappedRows()
	}
	s := total - m.contentHeight()
	if s < 0 {
		return 0
	}
	return s
}

// visibleRange is the half-open range of content rows on screen.
func (m *Model) visibleRange() (int, int) {
	total := len(m.document.Lines)
	if m.wrapMode == WrapSoft {
		total = len(m.wrapRows())
	}
	start := m.scrollLine
	end := start + m.contentHeight()
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}

func (m *Model) scrollDown(n int) {
	m.scrollLine += n
	if max := m.maxScroll(); m.scrollLine > max {
		m.scrollLine = max
	}
}

func (m *Model) scrollUp(n int) {
	m.scrollLine -= n
	if m.scrollLine < 0 {
		m.scrollLine = 0
	}
}

func (m *Model) scrollLeft(n int) {
	if m.wrapMode == WrapSoft {
		return
	}
	m.scrollCol -= n
	if m.scrollCol < 0 {
		m.scrollCol = 0
	}
}

func (m *Model) scrollRight(n int) {
	if m.wrapMode == WrapSoft {
		return
	}
	m.scrollCol += n
	if max := m.maxScrollCol(); m.scrollCol > max {
		m.scrollCol = max
	}
}

func (m *Model) maxScrollCol() int {
	s := m.document.MaxLineWidth - m.contentWidth()
	if s < 0 {
		return 0
	}
	return s
}

func (m *Model) scrollToLineStart() {
	if m.wrapMode != WrapSoft {
		m.scrollCol = 0
	}
}

func (m *Model) scrollToLineEnd() {
	if m.wrapMode != WrapSoft {
		m.scrollCol = m.maxScrollCol()
	}
}

func (m *Model) goToTop()    { m.scrollLine = 0 }
func (m *Model) goToBottom() { m.scrollLine = m.maxScroll() }

func (m *Model) halfPageDown() { m.scrollDown(m.contentHeight() / 2) }
func (m *Model) halfPageUp()   { m.scrollUp(m.contentHeight() / 2) }

// scrollToLine centers the given document line in the viewport.
func (m *Model) scrollToLine(lineIdx int) {
	target := lineIdx - m.contentHeight()/2
	if target < 0 {
		target = 0
	}
	if max := m.maxScroll(); target > max {
		target = max
	}
	m.scrollLine = target
}

func (m *Model) setTerminalSize(width, height int) {
	if m.termWidth != width || m.termHeight != height {
		m.wrapped = nil
	}
	m.termWidth, m.termHeight = width, height
	if max := m.maxScroll(); m.scrollLine > max {
		m.scrollLine = max
	}
}

// totalWrappedRows is the display row count under soft wrap: each line
// contributes ceil(width/content) rows, at least one.
func (m *Model) totalWrappedRows() int {
	if m.wrapMode != WrapSoft {
		return len(m.document.Lines)
	}
	width := m.contentWidth()
	if width == 0 {
		return len(m.document.Lines)
	}
	total := 0
	for _, l := range m.document.Lines {
		w := l.Width()
		if w == 0 {
			total++
		} else {
			total += (w + width - 1) / width
		}
	}
	return total
}

// wrapRows returns the wrap cache, rebuilding it when invalid.
func (m *Model) wrapRows() []wrappedRow {
	if m.wrapped == nil {
		m.buildWrapRows()
	}
	return m.wrapped
}

// buildWrapRows walks each line by rune, breaking rows at the content
// width. A wide rune that would straddle a row boundary moves wholly to
// the next row.
func (m *Model) buildWrapRows() {
	width := m.contentWidth()
	if m.wrapMode != WrapSoft || width == 0 {
		m.wrapped = nil
		return
	}
	var rows []wrappedRow
	for idx, line := range m.document.Lines {
		text := line.Text()
		if line.Width() == 0 {
			rows = append(rows, wrappedRow{lineIdx: idx, lineNumber: line.Number, isFirstRow: true})
			continue
		}
		cur := 0
		first := true
		rowStart := 0
		charIdx := 0
		for _, r := range text {
			rw := runewidth.RuneWidth(r)
			if cur+rw > width && cur > 0 {
				rows = append(rows, wrappedRow{
					lineIdx: idx, lineNumber: line.Number,
					isFirstRow: first, charOffset: rowStart, displayWidth: cur,
				})
				first = false
				rowStart = charIdx
				cur = rw
			} else {
				cur += rw
			}
			charIdx++
		}
		if cur > 0 || first {
			rows = append(rows, wrappedRow{
				lineIdx: idx, lineNumber: line.Number,
				isFirstRow: first, charOffset: rowStart, displayWidth: cur,
			})
		}
	}
	m.wrapped = rows
}

func (m *Model) invalidateWrapCache() { m.wrapped = nil }

// toggleFollow switches tailing on or off. Follow only applies to real
// files; turning it on jumps to the bottom.
func (m *Model) toggleFollow() {
	if m.filePath == "" {
		return
	}
	if m.follow {
		m.follow = false
		m.tailReader = nil
		return
	}
	r, err := tail.New(m.filePath, true)
	if err != nil {
		logx.Warnf("follow: %v", err)
		return
	}
	m.follow = true
	m.tailReader = r
	m.goToBottom()
}

// checkFollowUpdates appends any newly written lines and sticks the
// viewport to the bottom. Poll errors keep the session alive.
func (m *Model) checkFollowUpdates() {
	if !m.follow || m.tailReader == nil {
		return
	}
	lines, err := m.tailReader.Poll()
	if err != nil {
		logx.Warnf("follow: %v", err)
		return
	}
	if len(lines) == 0 {
		return
	}
	start := len(m.document.Lines) + 1
	for i, text := range lines {
		l := doc.PlainLine(start+i, text)
		m.document.Lines = append(m.document.Lines, l)
		if w := l.Width(); w > m.document.MaxLineWidth {
			m.document.MaxLineWidth = w
		}
	}
	m.invalidateWrapCache()
	m.goToBottom()
}

// enterSearchMode snapshots the document and opens the query prompt.
func (m *Model) enterSearchMode(caseInsensitive bool) {
	m.original = m.document.Clone()
	m.ignoreCase = caseInsensitive
	m.input.SetValue("")
	m.input.Focus()
	m.mode = modeSearch
}

func (m *Model) compileQuery() *regexp.Regexp {
	q := m.input.Value()
	if q == "" {
		return nil
	}
	re, err := pattern.Build(q, pattern.Options{IgnoreCase: m.ignoreCase})
	if err != nil {
		return nil
	}
	return re
}

// applyIncrementalSearch restores the snapshot and overlays the current
// query's matches. An uncompilable prefix shows the plain document.
func (m *Model) applyIncrementalSearch() {
	if m.original != nil {
		m.document = m.original.Clone()
	}
	if re := m.compileQuery(); re != nil {
		highlight.ApplySearch(m.document, re)
	}
}

// confirmSearch keeps the overlay and builds navigation state.
func (m *Model) confirmSearch() {
	if re := m.compileQuery(); re != nil {
		m.search = highlight.NewSearchState(re)
		m.search.FindMatches(m.document)
	}
	m.mode = modeNormal
	m.input.Blur()
	m.original = nil
}

// cancelSearch restores the pre-search document.
func (m *Model) cancelSearch() {
	if m.original != nil {
		m.document = m.original
		m.original = nil
	}
	m.mode = modeNormal
	m.input.Blur()
}

func (m *Model) nextMatch() {
	if m.search == nil {
		return
	}
	if idx, ok := m.search.Next(); ok {
		m.scrollToLine(idx)
	}
}

func (m *Model) prevMatch() {
	if m.search == nil {
		return
	}
	if idx, ok := m.search.Prev(); ok {
		m.scrollToLine(idx)
	}
}

// searchInfo is the (current, total) match pair for the status bar,
// false when there is no active match set.
func (m *Model) searchInfo() (int, int, bool) {
	if m.search == nil || m.search.MatchCount() == 0 {
		return 0, 0, false
	}
	return m.search.CurrentDisplay(), m.search.MatchCount(), true
}
