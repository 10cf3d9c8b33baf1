package doc

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Color is a lipgloss-compatible color value: an ANSI index ("0".."255")
// or a hex triplet ("#rrggbb"). The empty string means unset.
type Color string

const (
	Black    Color = "0"
	Red      Color = "1"
	Green    Color = "2"
	Yellow   Color = "3"
	Blue     Color = "4"
	Magenta  Color = "5"
	Cyan     Color = "6"
	White    Color = "7"
	DarkGray Color = "8"
)

// RGB builds a hex color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// SpanStyle describes how a run of text is drawn. Unset colors inherit
// from the enclosing context at render time.
type SpanStyle struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Merge layers child over s: child colors win when set, boolean
// attributes accumulate.
func (s SpanStyle) Merge(child SpanStyle) SpanStyle {
	out := s
	if child.Fg != "" {
		out.Fg = child.Fg
	}
	if child.Bg != "" {
		out.Bg = child.Bg
	}
	out.Bold = out.Bold || child.Bold
	out.Italic = out.Italic || child.Italic
	out.Underline = out.Underline || child.Underline
	return out
}

func (s SpanStyle) IsZero() bool {
	return s == SpanStyle{}
}

// Span is a run of text drawn with a single style.
type Span struct {
	Text  string
	Style SpanStyle
}

// Line is one display line. Number is 1-based; 0 marks a synthetic line
// such as the "--" separator between disjoint match groups.
type Line struct {
	Number    int
	Spans     []Span
	IsMatch   bool
	IsContext bool
}

// PlainLine builds an unstyled line. Empty text yields no spans at all.
func PlainLine(number int, text string) Line {
	if text == "" {
		return Line{Number: number}
	}
	return Line{Number: number, Spans: []Span{{Text: text}}}
}

// Separator is the dim "--" row emitted between disjoint match groups.
func Separator() Line {
	return Line{Number: 0, Spans: []Span{{Text: "--", Style: SpanStyle{Fg: DarkGray}}}}
}

// Text concatenates the line's span texts.
func (l Line) Text() string {
	var b strings.Builder
	for _, sp := range l.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Width is the line's display width in terminal cells.
func (l Line) Width() int {
	w := 0
	for _, sp := range l.Spans {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

// Clone deep-copies the line so span rewrites do not alias.
func (l Line) Clone() Line {
	out := l
	out.Spans = make([]Span, len(l.Spans))
	copy(out.Spans, l.Spans)
	return out
}

// Document is a fully styled, line-addressed text ready for display.
type Document struct {
	Lines        []Line
	MaxLineWidth int
	SourceName   string
	Encoding     string
}

// FromText splits decoded text into unstyled numbered lines. A trailing
// newline does not produce an extra empty line.
func FromText(text, sourceName, encoding string) *Document {
	d := &Document{SourceName: sourceName, Encoding: encoding}
	if text == "" {
		return d
	}
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	d.Lines = make([]Line, 0, len(parts))
	for i, p := range parts {
		d.Lines = append(d.Lines, PlainLine(i+1, p))
	}
	d.RecalcMaxWidth()
	return d
}

// RecalcMaxWidth refreshes the cached maximum display width.
func (d *Document) RecalcMaxWidth() {
	max := 0
	for _, l := range d.Lines {
		if w := l.Width(); w > max {
			max = w
		}
	}
	d.MaxLineWidth = max
}

// Clone deep-copies the document, including every span slice.
func (d *Document) Clone() *Document {
	out := &Document{
		MaxLineWidth: d.MaxLineWidth,
		SourceName:   d.SourceName,
		Encoding:     d.Encoding,
	}
	out.Lines = make([]Line, len(d.Lines))
	for i, l := range d.Lines {
		out.Lines[i] = l.Clone()
	}
	return out
}
