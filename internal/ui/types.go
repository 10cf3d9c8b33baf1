package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"mat/internal/doc"
	"mat/internal/highlight"
	"mat/internal/tail"
	"mat/internal/theme"
)

// WrapMode selects how long lines are displayed.
type WrapMode int

const (
	// WrapNone scrolls horizontally.
	WrapNone WrapMode = iota
	// WrapSoft wraps at the content width.
	WrapSoft
	// WrapTruncate cuts lines at the max width with an indicator.
	WrapTruncate
)

// ParseWrapMode reads a --wrap argument.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return WrapNone, true
	case "wrap":
		return WrapSoft, true
	case "truncate":
		return WrapTruncate, true
	}
	return WrapNone, false
}

func (w WrapMode) String() string {
	switch w {
	case WrapSoft:
		return "wrap"
	case WrapTruncate:
		return "truncate"
	default:
		return "none"
	}
}

type mode int

const (
	modeNormal mode = iota
	modeSearch
)

// wrappedRow addresses one display row of a soft-wrapped line.
type wrappedRow struct {
	lineIdx      int
	lineNumber   int
	isFirstRow   bool
	charOffset   int
	displayWidth int
}

// Options carry the viewer configuration derived from the CLI.
type Options struct {
	ShowLineNumbers bool
	IgnoreCase      bool
	WrapMode        WrapMode
	MaxWidth        int
	FilePath        string
	Theme           theme.Theme
	Search          *highlight.SearchState
	Follow          bool
}

// Model is the viewer state driven by the bubbletea loop.
type Model struct {
	document *doc.Document
	// snapshot for restoring the styling when a search is cancelled
	original *doc.Document

	scrollLine int
	scrollCol  int
	mode       mode

	termWidth  int
	termHeight int

	showLineNumbers bool
	ignoreCase      bool
	wrapMode        WrapMode
	maxWidth        int

	search *highlight.SearchState
	input  textinput.Model

	follow     bool
	tailReader *tail.Reader
	filePath   string

	th     theme.Theme
	colors theme.Colors
	styles Styles
	keymap KeyMap

	// wrap cache, nil when invalid
	wrapped []wrappedRow

	quitting bool
}
