package ui

import (
	"github.com/charmbracelet/lipgloss"

	"mat/internal/doc"
	"mat/internal/theme"
)

type Styles struct {
	Gutter lipgloss.Style
	Status lipgloss.Style
}

func NewStyles(colors theme.Colors) Styles {
	s := Styles{}
	s.Gutter = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.LineNumber))
	s.Status = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.StatusBg)).
		Foreground(lipgloss.Color(colors.StatusFg)).
		Bold(true)
	return s
}

// spanStyle converts a document span style to a renderable lipgloss style.
func spanStyle(st doc.SpanStyle) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if st.Fg != "" {
		ls = ls.Foreground(lipgloss.Color(st.Fg))
	}
	if st.Bg != "" {
		ls = ls.Background(lipgloss.Color(st.Bg))
	}
	if st.Bold {
		ls = ls.Bold(true)
	}
	if st.Italic {
		ls = ls.Italic(true)
	}
	if st.Underline {
		ls = ls.Underline(true)
	}
	return ls
}
