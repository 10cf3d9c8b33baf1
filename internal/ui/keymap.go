package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Quit            tea.Key
	Down            tea.Key
	Up              tea.Key
	Left            tea.Key
	Right           tea.Key
	HalfPageDown    tea.Key
	HalfPageUp      tea.Key
	LineStart       tea.Key
	LineEnd         tea.Key
	Top             tea.Key
	Bottom          tea.Key
	Search          tea.Key
	SearchSensitive tea.Key
	SearchNext      tea.Key
	SearchPrev      tea.Key
	Follow          tea.Key
	ToggleGutter    tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:            tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
		Down:            tea.Key{Type: tea.KeyRunes, Runes: []rune{'j'}},
		Up:              tea.Key{Type: tea.KeyRunes, Runes: []rune{'k'}},
		Left:            tea.Key{Type: tea.KeyRunes, Runes: []rune{'h'}},
		Right:           tea.Key{Type: tea.KeyRunes, Runes: []rune{'l'}},
		HalfPageDown:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}},
		HalfPageUp:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'u'}},
		LineStart:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'0'}},
		LineEnd:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'$'}},
		Top:             tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		Bottom:          tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		Search:          tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		SearchSensitive: tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		SearchNext:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'n'}},
		SearchPrev:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'N'}},
		Follow:          tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		ToggleGutter:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'#'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}
