package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg drives the follow-mode poll loop.
type tickMsg time.Time

const pollInterval = 100 * time.Millisecond

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setTerminalSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.checkFollowUpdates()
		return m, tick()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeSearch {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keymap.Quit) || msg.Type == tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case keyMatches(msg, m.keymap.Down) || msg.Type == tea.KeyDown:
		m.scrollDown(1)
	case keyMatches(msg, m.keymap.Up) || msg.Type == tea.KeyUp:
		m.scrollUp(1)
	case keyMatches(msg, m.keymap.Left) || msg.Type == tea.KeyLeft:
		m.scrollLeft(4)
	case keyMatches(msg, m.keymap.Right) || msg.Type == tea.KeyRight:
		m.scrollRight(4)
	case keyMatches(msg, m.keymap.HalfPageDown) || msg.Type == tea.KeyPgDown:
		m.halfPageDown()
	case keyMatches(msg, m.keymap.HalfPageUp) || msg.Type == tea.KeyPgUp:
		m.halfPageUp()
	case keyMatches(msg, m.keymap.LineStart):
		m.scrollToLineStart()
	case keyMatches(msg, m.keymap.LineEnd):
		m.scrollToLineEnd()
	case keyMatches(msg, m.keymap.Top) || msg.Type == tea.KeyHome:
		m.goToTop()
	case keyMatches(msg, m.keymap.Bottom) || msg.Type == tea.KeyEnd:
		m.goToBottom()
	case keyMatches(msg, m.keymap.Search):
		m.enterSearchMode(true)
	case keyMatches(msg, m.keymap.SearchSensitive):
		m.enterSearchMode(false)
	case keyMatches(msg, m.keymap.SearchNext):
		m.nextMatch()
	case keyMatches(msg, m.keymap.SearchPrev):
		m.prevMatch()
	case keyMatches(msg, m.keymap.Follow):
		m.toggleFollow()
	case keyMatches(msg, m.keymap.ToggleGutter):
		m.showLineNumbers = !m.showLineNumbers
		m.invalidateWrapCache()
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancelSearch()
		m.invalidateWrapCache()
		return m, nil
	case tea.KeyEnter:
		m.confirmSearch()
		m.invalidateWrapCache()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyIncrementalSearch()
	m.invalidateWrapCache()
	return m, cmd
}
