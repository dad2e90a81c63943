package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/unkn0wn-root/harview/internal/fieldfmt"
	"github.com/unkn0wn-root/harview/internal/waterfall"
)

const (
	methodWidth = 7
	statusWidth = 4
	typeWidth   = 11
	timeWidth   = 10
)

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}
	var body string
	if m.showDetails {
		body = m.detailsView()
	} else {
		body = m.listView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.statusBarView())
}

func (m Model) headerView() string {
	title := m.title
	if title == "" {
		title = "harview"
	}
	line := m.theme.HeaderTitle.Render(title) + " " +
		m.theme.HeaderValue.Render(fmt.Sprintf("%d requests", len(m.rows)))
	if m.showDetails && m.cursor < len(m.rows) {
		row := m.rows[m.cursor]
		line = m.theme.HeaderTitle.Render("#"+strconv.Itoa(row.Input.RequestID)) + " " +
			m.theme.HeaderValue.Render(row.Entry.Request.URL)
	}
	return ansi.Truncate(line, maxInt(m.width, 1), "…")
}

func (m Model) listView() string {
	h := m.listHeight()
	if len(m.rows) == 0 {
		return m.theme.RowDim.Render("No entries") + strings.Repeat("\n", maxInt(h-1, 0))
	}
	end := minInt(m.offset+h, len(m.rows))
	lines := make([]string, 0, h)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.rowView(i))
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) rowView(i int) string {
	row := m.rows[i]
	in := row.Input
	numWidth := len(strconv.Itoa(len(m.rows)))

	marker := " "
	b := row.Buckets()
	switch {
	case len(b.Errors) > 0:
		marker = m.theme.IndicatorError.Render("●")
	case len(b.Warnings) > 0:
		marker = m.theme.IndicatorWarning.Render("●")
	case len(b.Info) > 0:
		marker = m.theme.IndicatorInfo.Render("●")
	}

	status := "-"
	if s := row.Entry.Response.Status; s > 0 {
		status = strconv.Itoa(s)
	}
	prefix := fmt.Sprintf("%*d %s %s %s %s ",
		numWidth, in.RequestID,
		marker,
		runewidth.FillRight(row.Entry.Request.Method, methodWidth),
		runewidth.FillRight(status, statusWidth),
		runewidth.FillRight(m.caser.String(string(in.RequestType)), typeWidth),
	)
	duration := runewidth.FillLeft(rowDuration(row), timeWidth)

	urlWidth := maxInt(m.width-ansi.StringWidth(prefix)-timeWidth-1, 8)
	url := runewidth.FillRight(runewidth.Truncate(row.Entry.Request.URL, urlWidth, "…"), urlWidth)

	if i == m.cursor {
		plain := ansi.Strip(prefix) + url + " " + duration
		return m.theme.RowSelected.Render(plain)
	}
	return m.theme.RowNumber.Render(prefix) + m.theme.RowURL.Render(url) + " " + m.theme.RowDim.Render(duration)
}

func rowDuration(row *waterfall.Row) string {
	start, end := row.Input.StartRelative, row.Input.EndRelative
	if math.IsNaN(start) || math.IsNaN(end) {
		return ""
	}
	return fieldfmt.FormatMilliseconds(end - start)
}

func (m Model) detailsView() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.tabStripView(), m.viewport.View())
}

func (m Model) tabStripView() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts[i] = m.theme.TabActive.Render(tab.Title)
		} else {
			parts[i] = m.theme.TabInactive.Render(tab.Title)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return ansi.Truncate(strip, maxInt(m.width, 1), "…")
}

func (m Model) statusBarView() string {
	hint := "↑/↓ move  enter details  q quit"
	if m.showDetails {
		hint = "←/→ tabs  ↑/↓ scroll  y copy  esc back  q quit"
	}
	left := m.theme.StatusBarKey.Render(hint)
	if text := strings.TrimSpace(m.statusMessage.text); text != "" {
		left = m.statusStyle().Render(text) + "  " + left
	}
	return ansi.Truncate(left, maxInt(m.width, 1), "…")
}

func (m Model) statusStyle() lipgloss.Style {
	switch m.statusMessage.level {
	case statusError:
		return m.theme.Error
	case statusSuccess:
		return m.theme.Success
	case statusWarn:
		return m.theme.IndicatorWarning
	default:
		return m.theme.StatusBarValue
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
