package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mat/internal/doc"
	"mat/internal/tail"
	"mat/internal/theme"
	"mat/internal/util/logx"
)

// New builds a viewer model for the given styled document.
func New(document *doc.Document, opts Options) *Model {
	colors := theme.Palette(opts.Theme)
	input := textinput.New()
	input.Prompt = "/"

	m := &Model{
		document:        document,
		showLineNumbers: opts.ShowLineNumbers,
		ignoreCase:      opts.IgnoreCase,
		wrapMode:        opts.WrapMode,
		maxWidth:        opts.MaxWidth,
		search:          opts.Search,
		input:           input,
		filePath:        opts.FilePath,
		th:              opts.Theme,
		colors:          colors,
		styles:          NewStyles(colors),
		keymap:          DefaultKeyMap(),
		termWidth:       80,
		termHeight:      24,
	}
	if opts.Follow && opts.FilePath != "" {
		if r, err := tail.New(opts.FilePath, true); err != nil {
			logx.Warnf("follow: %v", err)
		} else {
			m.follow = true
			m.tailReader = r
			m.goToBottom()
		}
	}
	return m
}

// Run takes over the terminal until the user quits.
func Run(document *doc.Document, opts Options) error {
	m := New(document, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}
