// Package highlight colors document spans: syntax highlighting via
// chroma and search-match overlays.
package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"mat/internal/doc"
	"mat/internal/theme"
)

// langByExt maps common file extensions to lexer names, covering cases
// where the lexer registry's own filename matching is too loose.
var langByExt = map[string]string{
	"rs": "rust", "py": "python",
	"js": "javascript", "jsx": "javascript",
	"ts": "typescript", "tsx": "typescript",
	"c": "c", "h": "c",
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp",
	"hpp": "cpp", "hh": "cpp", "hxx": "cpp",
	"go": "go", "java": "java", "rb": "ruby",
	"sh": "bash", "bash": "bash", "zsh": "bash",
	"json": "json", "yaml": "yaml", "yml": "yaml",
	"toml": "toml", "xml": "xml",
	"html": "html", "htm": "html",
	"css": "css", "sql": "sql",
	"md": "markdown", "markdown": "markdown",
	"php": "php", "swift": "swift",
	"kt": "kotlin", "kts": "kotlin",
	"scala": "scala", "r": "r", "lua": "lua",
	"pl": "perl", "pm": "perl",
	"hs": "haskell", "elm": "elm", "erl": "erlang",
	"ex": "elixir", "exs": "elixir",
	"clj": "clojure", "cljs": "clojure",
	"fs": "fsharp", "fsx": "fsharp",
	"cs": "csharp", "vb": "vb.net",
	"ps1": "powershell", "psm1": "powershell",
	"dockerfile": "docker",
	"makefile":   "make", "mk": "make",
	"cmake": "cmake", "tf": "terraform", "vim": "vim",
	"diff": "diff", "patch": "diff",
	"ini": "ini", "cfg": "ini",
}

func styleName(th theme.Theme) string {
	if th == theme.Light {
		return "github"
	}
	return "github-dark"
}

// DetectLanguage maps a filename to a lexer name by extension, or ""
// when the extension is unknown.
func DetectLanguage(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = strings.ToLower(filepath.Base(filename))
	}
	return langByExt[ext]
}

// ApplySyntax replaces the document's span styling with syntax
// highlighting. An explicit language wins over filename detection. When
// no lexer or theme style matches, the document is left untouched.
func ApplySyntax(d *doc.Document, language string, th theme.Theme) {
	if len(d.Lines) == 0 {
		return
	}
	texts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		texts[i] = l.Text()
	}
	text := strings.Join(texts, "\n")

	lexer := pickLexer(language, d.SourceName, text)
	if lexer == nil {
		return
	}
	style := styles.Get(styleName(th))
	if style == nil {
		return
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return
	}

	rows := tokenRows(it, style)
	for i := range d.Lines {
		if i < len(rows) && len(rows[i]) > 0 {
			d.Lines[i].Spans = rows[i]
		}
	}
}

func pickLexer(language, sourceName, text string) chroma.Lexer {
	if language != "" {
		return lexers.Get(language)
	}
	if name := DetectLanguage(sourceName); name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Match(filepath.Base(sourceName)); l != nil {
		return l
	}
	if lang := enry.GetLanguage(filepath.Base(sourceName), []byte(text)); lang != "" && lang != enry.OtherLanguage {
		return lexers.Get(lang)
	}
	return nil
}

// tokenRows splits the token stream at newlines into per-line spans.
func tokenRows(it chroma.Iterator, style *chroma.Style) [][]doc.Span {
	rows := [][]doc.Span{nil}
	for tok := it(); tok != chroma.EOF; tok = it() {
		ts := tokenStyle(style, tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				rows = append(rows, nil)
			}
			if part == "" {
				continue
			}
			cur := len(rows) - 1
			rows[cur] = append(rows[cur], doc.Span{Text: part, Style: ts})
		}
	}
	return rows
}

// tokenStyle maps a token type to a span style. The theme background is
// dropped so the terminal's own background shows through.
func tokenStyle(style *chroma.Style, tt chroma.TokenType) doc.SpanStyle {
	entry := style.Get(tt)
	s := doc.SpanStyle{
		Bold:      entry.Bold == chroma.Yes,
		Italic:    entry.Italic == chroma.Yes,
		Underline: entry.Underline == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		s.Fg = doc.Color(strings.ToLower(entry.Colour.String()))
	}
	return s
}
