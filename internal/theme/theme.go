// Package theme selects the light or dark palette, probing the
// terminal background when the user does not choose one.
package theme

import (
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"mat/internal/doc"
	"mat/internal/util/logx"
)

type Theme int

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// Parse reads "light" or "dark" case-insensitively.
func Parse(s string) (Theme, bool) {
	switch strings.ToLower(s) {
	case "light":
		return Light, true
	case "dark":
		return Dark, true
	}
	return Dark, false
}

var detectOnce = sync.OnceValue(detectTerminal)

// Detected returns the terminal's theme, probed once per process.
func Detected() Theme {
	return detectOnce()
}

// Get resolves a --theme argument, falling back to detection when the
// argument is empty or unrecognized.
func Get(arg string) Theme {
	if arg != "" {
		if t, ok := Parse(arg); ok {
			return t
		}
	}
	return Detected()
}

// detectTerminal classifies the terminal background by its relative
// luminance. Anything that fails to resolve counts as dark.
func detectTerminal() Theme {
	bg := termenv.DefaultOutput().BackgroundColor()
	rgb := termenv.ConvertToRGB(bg)
	lum := luminance(rgb)
	logx.Debugf("theme: background luminance %.3f", lum)
	if lum > 0.5 {
		return Light
	}
	return Dark
}

func luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Colors is the palette for the viewer chrome.
type Colors struct {
	LineNumber  doc.Color
	StatusBg    doc.Color
	StatusFg    doc.Color
	SearchBg    doc.Color
	SearchFg    doc.Color
	MatchLineBg doc.Color
	ContextFg   doc.Color
	Separator   doc.Color
	Error       doc.Color
}

// Palette returns the colors for t.
func Palette(t Theme) Colors {
	if t == Light {
		return Colors{
			LineNumber:  doc.DarkGray,
			StatusBg:    doc.RGB(200, 200, 200),
			StatusFg:    doc.Black,
			SearchBg:    doc.Yellow,
			SearchFg:    doc.Black,
			MatchLineBg: doc.RGB(255, 255, 200),
			ContextFg:   doc.DarkGray,
			Separator:   doc.DarkGray,
			Error:       doc.Red,
		}
	}
	return Colors{
		LineNumber:  doc.DarkGray,
		StatusBg:    doc.DarkGray,
		StatusFg:    doc.White,
		SearchBg:    doc.Yellow,
		SearchFg:    doc.Black,
		MatchLineBg: doc.RGB(50, 50, 30),
		ContextFg:   doc.DarkGray,
		Separator:   doc.DarkGray,
		Error:       doc.Red,
	}
}
