// Package markdown renders CommonMark + GFM source into a styled
// document for terminal display.
package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"mat/internal/doc"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render parses markdown source and produces a styled document.
func Render(source []byte, sourceName string) *doc.Document {
	root := md.Parser().Parse(text.NewReader(source))
	r := &renderer{
		source:     source,
		lineNumber: 1,
		styles:     []doc.SpanStyle{{}},
	}
	r.walk(root)
	if len(r.current) > 0 {
		r.flushLine()
	}
	d := &doc.Document{Lines: r.lines, SourceName: sourceName, Encoding: "UTF-8"}
	d.RecalcMaxWidth()
	return d
}

type renderer struct {
	source     []byte
	lines      []doc.Line
	current    []doc.Span
	lineNumber int
	styles     []doc.SpanStyle

	inBlockquote   bool
	listDepth      int
	listCounters   []int
	listOrdered    []bool
	needsListItem  bool
	currentHeading int
}

func (r *renderer) walk(root ast.Node) {
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return r.visit(n, entering), nil
	})
}

func (r *renderer) visit(n ast.Node, entering bool) ast.WalkStatus {
	switch n := n.(type) {
	case *ast.Heading:
		if entering {
			r.startHeading(n.Level)
		} else {
			r.endHeading()
		}
	case *ast.Paragraph:
		if entering {
			if len(r.lines) > 0 && r.listDepth == 0 && !r.inBlockquote {
				r.flushLine()
			}
		} else {
			r.flushLine()
		}
	case *ast.Blockquote:
		if entering {
			r.flushLine()
			r.inBlockquote = true
			r.addBlockquotePrefix()
		} else {
			r.inBlockquote = false
			r.flushLine()
		}
	case *ast.FencedCodeBlock:
		if entering {
			info := ""
			if n.Info != nil {
				info = string(n.Info.Segment.Value(r.source))
			}
			r.renderCodeBlock(n, info)
		}
		return ast.WalkSkipChildren
	case *ast.CodeBlock:
		if entering {
			r.renderCodeBlock(n, "")
		}
		return ast.WalkSkipChildren
	case *ast.List:
		if entering {
			if r.listDepth == 0 && (len(r.current) > 0 || len(r.lines) > 0) {
				r.flushLine()
			}
			r.listDepth++
			r.listOrdered = append(r.listOrdered, n.IsOrdered())
			start := n.Start
			if start == 0 {
				start = 1
			}
			r.listCounters = append(r.listCounters, start)
		} else {
			r.listDepth--
			r.listCounters = r.listCounters[:len(r.listCounters)-1]
			r.listOrdered = r.listOrdered[:len(r.listOrdered)-1]
			if r.listDepth == 0 {
				r.flushLine()
			}
		}
	case *ast.ListItem:
		if entering {
			if len(r.current) > 0 || len(r.lines) > 0 {
				r.flushLine()
			}
			r.needsListItem = true
		}
	case *ast.ThematicBreak:
		if entering {
			r.flushLine()
			r.addStyled(strings.Repeat("─", 40), doc.SpanStyle{Fg: doc.DarkGray})
			r.flushLine()
		}
	case *ast.Emphasis:
		if entering {
			if n.Level >= 2 {
				r.pushStyle(doc.SpanStyle{Bold: true})
			} else {
				r.pushStyle(doc.SpanStyle{Fg: doc.Yellow})
			}
		} else {
			r.popStyle()
		}
	case *extast.Strikethrough:
		if entering {
			r.pushStyle(doc.SpanStyle{Fg: doc.DarkGray})
		} else {
			r.popStyle()
		}
	case *ast.Link:
		if entering {
			r.pushStyle(doc.SpanStyle{Fg: doc.Blue, Underline: true})
		} else {
			r.popStyle()
		}
	case *ast.AutoLink:
		if entering {
			r.addStyled(string(n.URL(r.source)), doc.SpanStyle{Fg: doc.Blue, Underline: true})
		}
		return ast.WalkSkipChildren
	case *ast.Image:
		if entering {
			r.addStyled("[Image: ", doc.SpanStyle{Fg: doc.Magenta})
			r.pushStyle(doc.SpanStyle{Fg: doc.Magenta})
		} else {
			r.popStyle()
			r.current = append(r.current, doc.Span{Text: "]", Style: doc.SpanStyle{Fg: doc.Magenta}})
		}
	case *ast.CodeSpan:
		if entering {
			r.maybeListPrefix()
			r.current = append(r.current, doc.Span{Text: nodeText(n, r.source), Style: doc.SpanStyle{Fg: doc.Cyan}})
		}
		return ast.WalkSkipChildren
	case *ast.Text:
		if entering {
			r.addText(string(n.Segment.Value(r.source)))
			if n.HardLineBreak() {
				r.newLine()
			} else if n.SoftLineBreak() {
				r.softBreak()
			}
		}
	case *ast.String:
		if entering {
			r.addText(string(n.Value))
		}
	case *extast.TaskCheckBox:
		if entering {
			marker := "[ ] "
			if n.IsChecked {
				marker = "[x] "
			}
			r.addStyled(marker, doc.SpanStyle{Fg: doc.Magenta})
		}
	case *extast.Table:
		if entering {
			r.flushLine()
		}
	case *extast.TableRow, *extast.TableHeader:
		if !entering {
			r.flushLine()
		}
	case *extast.TableCell:
		if !entering {
			r.addText(" | ")
		}
	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren
	}
	return ast.WalkContinue
}

func (r *renderer) startHeading(level int) {
	if len(r.current) > 0 || len(r.lines) > 0 {
		r.flushLine()
	}
	r.currentHeading = level
	decor := doc.SpanStyle{Fg: doc.Yellow}
	switch level {
	case 1:
		r.addStyled("╔"+strings.Repeat("═", 50)+"╗", decor)
		r.flushLine()
		r.addStyled("║  ", decor)
	case 2:
		r.addStyled("──◈ ", decor)
	default:
		prefix, style := headingPrefix(level)
		r.addStyled(prefix, style)
	}
	r.pushStyle(headingStyle(level))
}

func (r *renderer) endHeading() {
	r.popStyle()
	decor := doc.SpanStyle{Fg: doc.Yellow}
	switch r.currentHeading {
	case 1:
		r.flushLine()
		r.addStyled("╚"+strings.Repeat("═", 50)+"╝", decor)
		r.flushLine()
	case 2:
		r.addStyled(" ◈", decor)
		r.addStyled(strings.Repeat("─", 30), decor)
		r.flushLine()
	default:
		r.flushLine()
	}
	r.currentHeading = 0
	// blank line after every heading
	r.lines = append(r.lines, doc.PlainLine(r.lineNumber, ""))
	r.lineNumber++
}

func (r *renderer) renderCodeBlock(n interface {
	Lines() *text.Segments
}, info string) {
	r.flushLine()
	rule := doc.SpanStyle{Fg: doc.DarkGray}
	if info != "" {
		r.addStyled("─── "+info+" ", rule)
		r.addStyled(strings.Repeat("─", 30), rule)
	} else {
		r.addStyled(strings.Repeat("─", 40), rule)
	}
	r.flushLine()
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimSuffix(string(seg.Value(r.source)), "\n")
		r.addStyled(line, doc.SpanStyle{Fg: doc.Green})
		r.flushLine()
	}
	r.addStyled(strings.Repeat("─", 40), rule)
	r.flushLine()
}

func (r *renderer) addText(s string) {
	r.maybeListPrefix()
	if r.inBlockquote {
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				r.flushLine()
				r.addBlockquotePrefix()
			}
			r.addStyled(part, r.currentStyle())
		}
		return
	}
	r.addStyled(s, r.currentStyle())
}

func (r *renderer) softBreak() {
	if r.inBlockquote {
		r.flushLine()
		r.addBlockquotePrefix()
		return
	}
	r.addText(" ")
}

func (r *renderer) newLine() {
	r.flushLine()
	if r.inBlockquote {
		r.addBlockquotePrefix()
	}
}

func (r *renderer) maybeListPrefix() {
	if !r.needsListItem {
		return
	}
	r.needsListItem = false
	indent := strings.Repeat("  ", r.listDepth-1)
	if len(r.listOrdered) == 0 {
		return
	}
	style := doc.SpanStyle{Fg: doc.Yellow}
	if r.listOrdered[len(r.listOrdered)-1] {
		c := r.listCounters[len(r.listCounters)-1]
		r.addStyled(indent+strconv.Itoa(c)+". ", style)
		r.listCounters[len(r.listCounters)-1]++
		return
	}
	bullet := "▪ "
	switch r.listDepth {
	case 1:
		bullet = "• "
	case 2:
		bullet = "◦ "
	}
	r.addStyled(indent+bullet, style)
}

func (r *renderer) addBlockquotePrefix() {
	r.current = append(r.current, doc.Span{Text: "│ ", Style: doc.SpanStyle{Fg: doc.DarkGray}})
}

func (r *renderer) addStyled(text string, style doc.SpanStyle) {
	if text == "" {
		return
	}
	r.current = append(r.current, doc.Span{Text: text, Style: style})
}

func (r *renderer) currentStyle() doc.SpanStyle {
	return r.styles[len(r.styles)-1]
}

func (r *renderer) pushStyle(s doc.SpanStyle) {
	r.styles = append(r.styles, r.currentStyle().Merge(s))
}

func (r *renderer) popStyle() {
	if len(r.styles) > 1 {
		r.styles = r.styles[:len(r.styles)-1]
	}
}

func (r *renderer) flushLine() {
	if len(r.current) == 0 {
		r.lines = append(r.lines, doc.PlainLine(r.lineNumber, ""))
	} else {
		r.lines = append(r.lines, doc.Line{Number: r.lineNumber, Spans: r.current})
		r.current = nil
	}
	r.lineNumber++
}

func headingStyle(level int) doc.SpanStyle {
	colors := map[int]doc.Color{
		1: doc.White, 2: doc.Cyan, 3: doc.Green,
		4: doc.Magenta, 5: doc.Yellow, 6: doc.DarkGray,
	}
	return doc.SpanStyle{Fg: colors[level], Bold: true}
}

func headingPrefix(level int) (string, doc.SpanStyle) {
	switch level {
	case 3:
		return "▸ ", doc.SpanStyle{Fg: doc.Green, Bold: true}
	case 4:
		return "◆ ", doc.SpanStyle{Fg: doc.Magenta, Bold: true}
	case 5:
		return "◇ ", doc.SpanStyle{Fg: doc.Yellow, Bold: true}
	default:
		return "· ", doc.SpanStyle{Fg: doc.DarkGray, Bold: true}
	}
}

// nodeText concatenates the text of a node's children.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return b.String()
}
