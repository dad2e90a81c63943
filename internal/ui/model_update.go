package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
	tabStripHeight  = 1
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = maxInt(typed.Width, 0)
		m.height = maxInt(typed.Height, 0)
		m.ready = true
		m.applyLayout()
	case statusMsg:
		m.statusMessage = typed
	case tea.KeyMsg:
		if cmd := m.handleKey(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	}
	if m.showDetails {
		return m.handleDetailsKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.listHeight())
	case "pgdown":
		m.moveCursor(m.listHeight())
	case "home", "g":
		m.moveCursor(-len(m.rows))
	case "end", "G":
		m.moveCursor(len(m.rows))
	case "enter":
		m.openDetails()
	}
	return nil
}

func (m *Model) handleDetailsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		m.closeDetails()
		return nil
	case "right", "l", "tab":
		m.activateNextTab()
		return nil
	case "left", "h", "shift+tab":
		m.activatePrevTab()
		return nil
	case "y":
		return m.copyActiveTab()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rows)-1)
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if h > 0 && m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m *Model) applyLayout() {
	m.viewport.Width = m.width
	m.viewport.Height = maxInt(m.height-headerHeight-tabStripHeight-statusBarHeight, 1)
	m.renderer.SetWidth(m.width)
	m.moveCursor(0)
	if m.showDetails {
		m.syncDetails()
	}
}

func (m *Model) listHeight() int {
	return maxInt(m.height-headerHeight-statusBarHeight, 1)
}

// currentPanelHeight is the height handed to lazy tab renderers. It is
// read when a tab is first shown, so later resizes do not re-render.
func (m *Model) currentPanelHeight() int {
	if m.panelHeight > 0 {
		return m.panelHeight
	}
	return m.viewport.Height * rowPixels
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
