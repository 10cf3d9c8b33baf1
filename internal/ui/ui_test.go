package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mat/internal/doc"
)

func makeDoc(lines ...string) *doc.Document {
	return doc.FromText(strings.Join(lines, "\n")+"\n", "test.txt", "UTF-8")
}

func spansText(spans []doc.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

func plain(text string) []doc.Span {
	return []doc.Span{{Text: text}}
}

func TestScrollClampsAtBottom(t *testing.T) {
	m := New(makeDoc("a", "b", "c", "d", "e"), Options{})
	m.setTerminalSize(20, 3)

	m.scrollDown(100)
	if m.scrollLine != 3 {
		t.Fatalf("scrollLine = %d, want 3", m.scrollLine)
	}
	m.scrollUp(100)
	if m.scrollLine != 0 {
		t.Fatalf("scrollLine = %d, want 0", m.scrollLine)
	}
}

func TestGoToTopAndBottom(t *testing.T) {
	m := New(makeDoc("a", "b", "c", "d", "e"), Options{})
	m.setTerminalSize(20, 3)

	m.goToBottom()
	if m.scrollLine != 3 {
		t.Fatalf("bottom scrollLine = %d, want 3", m.scrollLine)
	}
	m.goToTop()
	if m.scrollLine != 0 {
		t.Fatalf("top scrollLine = %d, want 0", m.scrollLine)
	}
}

func TestHorizontalScrollDisabledWhenWrapped(t *testing.T) {
	m := New(makeDoc(strings.Repeat("x", 100)), Options{WrapMode: WrapSoft})
	m.setTerminalSize(20, 10)

	m.scrollRight(4)
	if m.scrollCol != 0 {
		t.Fatalf("scrollCol = %d, want 0 in wrap mode", m.scrollCol)
	}
}

func TestHorizontalScrollClamp(t *testing.T) {
	m := New(makeDoc(strings.Repeat("x", 30)), Options{})
	m.setTerminalSize(20, 10)

	m.scrollRight(100)
	if m.scrollCol != 10 {
		t.Fatalf("scrollCol = %d, want 10", m.scrollCol)
	}
	m.scrollToLineStart()
	if m.scrollCol != 0 {
		t.Fatalf("scrollCol = %d, want 0 after line start", m.scrollCol)
	}
	m.scrollToLineEnd()
	if m.scrollCol != 10 {
		t.Fatalf("scrollCol = %d, want 10 after line end", m.scrollCol)
	}
}

func TestGutterWidth(t *testing.T) {
	m := New(makeDoc("a"), Options{ShowLineNumbers: true})
	if g := m.gutterWidth(); g != 3 {
		t.Errorf("1 line gutter = %d, want 3", g)
	}
	m = New(makeDoc(make([]string, 150)...), Options{ShowLineNumbers: true})
	if g := m.gutterWidth(); g != 5 {
		t.Errorf("150 line gutter = %d, want 5", g)
	}
	m = New(makeDoc("a"), Options{})
	if g := m.gutterWidth(); g != 0 {
		t.Errorf("hidden gutter = %d, want 0", g)
	}
}

func TestWrappedRowCount(t *testing.T) {
	m := New(makeDoc("hello world", "hi", ""), Options{WrapMode: WrapSoft})
	m.setTerminalSize(5, 10)

	if got := m.totalWrappedRows(); got != 5 {
		t.Fatalf("totalWrappedRows = %d, want 5", got)
	}
	rows := m.wrapRows()
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	if !rows[0].isFirstRow || rows[1].isFirstRow {
		t.Errorf("continuation flags wrong: %+v", rows[:3])
	}
	if rows[1].charOffset != 5 {
		t.Errorf("second row charOffset = %d, want 5", rows[1].charOffset)
	}
}

func TestWrappedRowsWideRunes(t *testing.T) {
	// Each CJK rune is two columns, so a width of 5 holds two runes
	// and the third starts a new row.
	m := New(makeDoc("世界世界"), Options{WrapMode: WrapSoft})
	m.setTerminalSize(5, 10)

	rows := m.wrapRows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[1].charOffset != 2 {
		t.Errorf("second row charOffset = %d, want 2", rows[1].charOffset)
	}
	if rows[0].displayWidth != 4 {
		t.Errorf("first row displayWidth = %d, want 4", rows[0].displayWidth)
	}
}

func TestTruncateSpansWithScroll(t *testing.T) {
	if got := spansText(truncateSpansWithScroll(plain("Hello World"), 0, 5)); got != "Hello" {
		t.Errorf("window at 0 = %q, want %q", got, "Hello")
	}
	if got := spansText(truncateSpansWithScroll(plain("Hello World"), 6, 5)); got != "World" {
		t.Errorf("window at 6 = %q, want %q", got, "World")
	}
	if got := spansText(truncateSpansWithScroll(plain("Hello世界"), 0, 7)); got != "Hello世" {
		t.Errorf("wide rune at edge = %q, want %q", got, "Hello世")
	}
	// 世 covers columns 0-1; scrolling to column 1 shows its right half
	// as a space.
	if got := spansText(truncateSpansWithScroll(plain("世界"), 1, 3)); got != " 界" {
		t.Errorf("straddling left edge = %q, want %q", got, " 界")
	}
}

func TestTruncateSpansWithIndicator(t *testing.T) {
	got := truncateSpansWithIndicator(plain("Hello World"), 0, 5, 10)
	if text := spansText(got); text != "Hell…" {
		t.Fatalf("truncated = %q, want %q", text, "Hell…")
	}
	last := got[len(got)-1]
	if last.Style.Fg != doc.DarkGray {
		t.Errorf("ellipsis style = %+v, want dark gray", last.Style)
	}
	if text := spansText(truncateSpansWithIndicator(plain("short"), 0, 10, 10)); text != "short" {
		t.Errorf("fitting line = %q, want untouched", text)
	}
}

func TestTruncateIndicatorSurvivesScrolling(t *testing.T) {
	// The indicator decision is made on total line width, so scrolling
	// near the end of a long line still shows the ellipsis.
	got := truncateSpansWithIndicator(plain("0123456789"), 6, 5, 5)
	if text := spansText(got); text != "6789…" {
		t.Fatalf("scrolled long line = %q, want %q", text, "6789…")
	}
}

func TestTruncateIndicatorFitUsesDisplayWidth(t *testing.T) {
	// A line within the max width is windowed by the terminal width,
	// not cut at the max width.
	got := truncateSpansWithIndicator(plain("Hello World"), 0, 20, 8)
	if text := spansText(got); text != "Hello Wo" {
		t.Fatalf("fitting line = %q, want %q", text, "Hello Wo")
	}
}

func TestExtractWrappedSpans(t *testing.T) {
	spans := []doc.Span{
		{Text: "Hello ", Style: doc.SpanStyle{Fg: doc.Red}},
		{Text: "World", Style: doc.SpanStyle{Fg: doc.Green}},
	}
	row := extractWrappedSpans(spans, 0, 5)
	if got := spansText(row); got != "Hello" {
		t.Fatalf("first row = %q, want %q", got, "Hello")
	}
	row = extractWrappedSpans(spans, 5, 5)
	if got := spansText(row); got != " Worl" {
		t.Fatalf("second row = %q, want %q", got, " Worl")
	}
	if len(row) != 2 || row[1].Style.Fg != doc.Green {
		t.Errorf("styles not preserved: %+v", row)
	}
}

func TestSearchConfirmKeepsHighlight(t *testing.T) {
	m := New(makeDoc("alpha", "beta", "alpha"), Options{})
	m.setTerminalSize(40, 10)

	m.enterSearchMode(true)
	m.input.SetValue("alpha")
	m.applyIncrementalSearch()
	m.confirmSearch()

	if m.mode != modeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if m.search == nil || m.search.MatchCount() != 2 {
		t.Fatalf("search state = %+v, want 2 matches", m.search)
	}
	if len(m.document.Lines[0].Spans) != 1 {
		t.Errorf("matched line not overlaid: %+v", m.document.Lines[0].Spans)
	}
	if m.document.Lines[0].Spans[0].Style.Bg == "" {
		t.Errorf("match span has no background: %+v", m.document.Lines[0].Spans[0])
	}
}

func TestSearchCancelRestoresDocument(t *testing.T) {
	m := New(makeDoc("alpha", "beta"), Options{})
	m.setTerminalSize(40, 10)

	m.enterSearchMode(true)
	m.input.SetValue("alpha")
	m.applyIncrementalSearch()
	m.cancelSearch()

	if m.mode != modeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	sp := m.document.Lines[0].Spans
	if len(sp) != 1 || !sp[0].Style.IsZero() {
		t.Errorf("document not restored: %+v", sp)
	}
}

func TestMatchNavigationCentersLine(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[30] = "needle"
	m := New(makeDoc(lines...), Options{})
	m.setTerminalSize(40, 11)

	m.enterSearchMode(true)
	m.input.SetValue("needle")
	m.confirmSearch()
	m.nextMatch()

	// line 30 centered in 10 content rows puts the top at 25
	if m.scrollLine != 25 {
		t.Fatalf("scrollLine = %d, want 25", m.scrollLine)
	}
}

func TestStatusBarContents(t *testing.T) {
	m := New(makeDoc("a", "b", "c"), Options{})
	m.setTerminalSize(60, 10)

	bar := m.renderStatusBar()
	if !strings.Contains(bar, "test.txt (1/3)") {
		t.Errorf("bar missing name and position: %q", bar)
	}
	if !strings.Contains(bar, "Col 1/1") {
		t.Errorf("bar missing column indicator: %q", bar)
	}

	m.wrapMode = WrapSoft
	m.invalidateWrapCache()
	bar = m.renderStatusBar()
	if !strings.Contains(bar, "[WRAP]") {
		t.Errorf("bar missing wrap indicator: %q", bar)
	}
	if strings.Contains(bar, "Col ") {
		t.Errorf("wrap mode should hide the column indicator: %q", bar)
	}
}

func TestStatusBarShowsEncoding(t *testing.T) {
	d := makeDoc("a")
	d.Encoding = "Latin-1"
	m := New(d, Options{})
	m.setTerminalSize(60, 10)

	// column info first, then the encoding
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Col 1/1 | Latin-1 ") {
		t.Errorf("bar missing column and encoding: %q", bar)
	}

	m.wrapMode = WrapSoft
	m.invalidateWrapCache()
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Latin-1 ") || strings.Contains(bar, "Col ") {
		t.Errorf("wrap mode right section = %q, want encoding only", bar)
	}
}

func TestFollowAppendsNewLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := New(makeDoc("one"), Options{FilePath: path})
	m.setTerminalSize(40, 10)

	m.toggleFollow()
	if !m.follow {
		t.Fatal("follow not enabled")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("two\nthree\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m.checkFollowUpdates()
	if len(m.document.Lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(m.document.Lines))
	}
	if m.document.Lines[2].Text() != "three" || m.document.Lines[2].Number != 3 {
		t.Errorf("appended line = %+v", m.document.Lines[2])
	}

	m.toggleFollow()
	if m.follow || m.tailReader != nil {
		t.Error("follow not disabled")
	}
}

func TestFollowIgnoredWithoutFile(t *testing.T) {
	m := New(makeDoc("stdin data"), Options{})
	m.toggleFollow()
	if m.follow {
		t.Error("follow enabled without a file path")
	}
}

func TestUpdateKeyDispatch(t *testing.T) {
	m := New(makeDoc("a", "b", "c", "d", "e"), Options{})
	m.setTerminalSize(40, 3)

	press := func(s string) {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
		m.Update(msg)
	}

	press("j")
	if m.scrollLine != 1 {
		t.Fatalf("after j scrollLine = %d, want 1", m.scrollLine)
	}
	press("G")
	if m.scrollLine != 3 {
		t.Fatalf("after G scrollLine = %d, want 3", m.scrollLine)
	}
	press("g")
	if m.scrollLine != 0 {
		t.Fatalf("after g scrollLine = %d, want 0", m.scrollLine)
	}
	press("#")
	if !m.showLineNumbers {
		t.Fatal("# did not toggle the gutter")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not quit")
	}
}

func TestParseWrapMode(t *testing.T) {
	cases := []struct {
		in   string
		want WrapMode
		ok   bool
	}{
		{"", WrapNone, true},
		{"none", WrapNone, true},
		{"wrap", WrapSoft, true},
		{"Truncate", WrapTruncate, true},
		{"bogus", WrapNone, false},
	}
	for _, c := range cases {
		got, ok := ParseWrapMode(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseWrapMode(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
