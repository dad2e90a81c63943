package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/harview/internal/tabs"
)

const noTabsMessage = "No tabs apply to this entry"

func (m *Model) openDetails() {
	if len(m.rows) == 0 {
		return
	}
	m.tabs = m.rows[m.cursor].Tabs()
	if len(m.tabs) == 0 {
		m.tabs = []*tabs.Tab{tabs.Static("Details", "", tabs.Content{
			tabs.Heading{Text: noTabsMessage, Plain: true},
		})}
	}
	m.showDetails = true
	m.activeTab = 0
	m.syncDetails()
}

func (m *Model) closeDetails() {
	m.showDetails = false
	m.tabs = nil
	m.activeTab = 0
}

func (m *Model) activateNextTab() {
	if len(m.tabs) == 0 {
		return
	}
	m.activeTab = (m.activeTab + 1) % len(m.tabs)
	m.syncDetails()
}

func (m *Model) activatePrevTab() {
	if len(m.tabs) == 0 {
		return
	}
	m.activeTab = (m.activeTab - 1 + len(m.tabs)) % len(m.tabs)
	m.syncDetails()
}

func (m *Model) syncDetails() {
	if m.activeTab >= len(m.tabs) {
		return
	}
	out, err := m.renderer.RenderTab(m.tabs[m.activeTab], m.currentPanelHeight())
	if err != nil {
		m.statusMessage = statusMsg{text: err.Error(), level: statusError}
		m.viewport.SetContent(m.theme.Error.Render(err.Error()))
		return
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m *Model) copyActiveTab() tea.Cmd {
	if m.activeTab >= len(m.tabs) {
		return nil
	}
	tab := m.tabs[m.activeTab]
	content, err := tab.Render(m.currentPanelHeight())
	if err != nil {
		return func() tea.Msg { return statusMsg{text: err.Error(), level: statusError} }
	}
	text, ok := content.CopyText()
	if !ok {
		return func() tea.Msg {
			return statusMsg{text: "Nothing to copy on " + tab.Title, level: statusInfo}
		}
	}
	write := m.writeClipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return statusMsg{text: "Clipboard unavailable: " + err.Error(), level: statusWarn}
		}
		return statusMsg{text: "Copied " + tab.Title, level: statusSuccess}
	}
}
