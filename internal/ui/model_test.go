package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/tabs"
	"github.com/unkn0wn-root/harview/internal/waterfall"
)

const sampleHAR = `{"log": {"version": "1.2", "creator": {"name": "t", "version": "1"},
 "entries": [
  {"startedDateTime": "2024-01-01T00:00:00.000Z", "time": 120,
   "request": {"method": "GET", "url": "https://example.com/", "httpVersion": "HTTP/2", "headers": [{"name": "Accept", "value": "*/*"}]},
   "response": {"status": 200, "statusText": "OK", "httpVersion": "HTTP/2",
     "headers": [{"name": "Content-Type", "value": "text/html"}, {"name": "Cache-Control", "value": "no-cache"}, {"name": "Content-Encoding", "value": "br"}],
     "content": {"size": 12, "mimeType": "text/html", "text": "<p>hi</p>"}},
   "timings": {"send": 1, "wait": 100, "receive": 19}},
  {"startedDateTime": "2024-01-01T00:00:00.050Z", "time": 30,
   "request": {"method": "POST", "url": "http://example.com/api", "httpVersion": "HTTP/1.1", "headers": []},
   "response": {"status": 500, "statusText": "Server Error", "httpVersion": "HTTP/1.1", "headers": [],
     "content": {"size": 0, "mimeType": "application/json"}},
   "timings": {"send": 1, "wait": 20, "receive": 9}}
 ]}}`

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelWith(t, tabs.Options{}, 0)
}

func newTestModelWith(t *testing.T, opts tabs.Options, panelHeight int) Model {
	t.Helper()
	doc, err := har.Decode(strings.NewReader(sampleHAR))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, err := waterfall.Build(doc, waterfall.Options{Page: waterfall.AllPages, Tabs: opts})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	m := New(Config{Waterfall: w, Title: "sample.har", PanelHeight: panelHeight})
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestListViewShowsRows(t *testing.T) {
	m := newTestModel(t)
	out := ansi.Strip(m.View())
	for _, want := range []string{"sample.har", "2 requests", "https://example.com/", "POST", "500", "Javascript", "120 ms"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list view missing %q:\n%s", want, out)
		}
	}
}

func TestCursorClamps(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("up"))
	if m.cursor != 0 {
		t.Fatalf("cursor should stay at 0, got %d", m.cursor)
	}
	m = send(t, m, key("down"))
	m = send(t, m, key("down"))
	if m.cursor != 1 {
		t.Fatalf("cursor should stop at last row, got %d", m.cursor)
	}
}

func TestDetailsRenderTabsLazily(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("enter"))
	if !m.showDetails {
		t.Fatalf("enter should open details")
	}
	if len(m.tabs) < 2 {
		t.Fatalf("expected several tabs, got %d", len(m.tabs))
	}
	if !m.tabs[0].Rendered() {
		t.Fatalf("active tab should be rendered")
	}
	for _, tab := range m.tabs[1:] {
		if tab.Rendered() {
			t.Fatalf("tab %q rendered before being shown", tab.Title)
		}
	}
	if !strings.Contains(ansi.Strip(m.View()), "Request Number") {
		t.Fatalf("general tab content missing:\n%s", ansi.Strip(m.View()))
	}

	m = send(t, m, key("right"))
	if m.activeTab != 1 || !m.tabs[1].Rendered() {
		t.Fatalf("right should activate and render the next tab")
	}
	m = send(t, m, key("left"))
	m = send(t, m, key("left"))
	if m.activeTab != len(m.tabs)-1 {
		t.Fatalf("left should wrap to the last tab, got %d", m.activeTab)
	}
}

func TestTabsSurviveReopen(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("enter"))
	first := m.tabs[0]
	m = send(t, m, key("esc"))
	if m.showDetails {
		t.Fatalf("esc should close details")
	}
	m = send(t, m, key("enter"))
	if m.tabs[0] != first {
		t.Fatalf("reopening should reuse the row's tabs")
	}
}

func TestErrorRowMarked(t *testing.T) {
	m := newTestModel(t)
	b := m.rows[1].Buckets()
	if len(b.Errors) == 0 {
		t.Fatalf("500 response should carry an error indicator")
	}
	m = send(t, m, key("down"))
	m = send(t, m, key("enter"))
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Response Error") {
		t.Fatalf("error section missing:\n%s", out)
	}
}

func TestCopyRawTab(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	m = send(t, m, key("enter"))
	for i, tab := range m.tabs {
		if tab.Title == "Raw Data" {
			m.activeTab = i
		}
	}
	next, cmd := m.Update(key("y"))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	msg := cmd()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected status message, got %T", msg)
	}
	if status.level != statusSuccess {
		t.Fatalf("expected success, got %+v", status)
	}
	if !strings.Contains(copied, `"url": "https://example.com/"`) {
		t.Fatalf("unexpected clipboard text %q", copied)
	}
	m = send(t, m, status)
	if !strings.Contains(ansi.Strip(m.View()), "Copied Raw Data") {
		t.Fatalf("status not shown")
	}
}

func TestCopyFailureWarns(t *testing.T) {
	m := newTestModel(t)
	m.writeClipboard = func(string) error { return errors.New("no display") }
	m = send(t, m, key("enter"))
	for i, tab := range m.tabs {
		if tab.Title == "Raw Data" {
			m.activeTab = i
		}
	}
	_, cmd := m.Update(key("y"))
	status := cmd().(statusMsg)
	if status.level != statusWarn {
		t.Fatalf("expected warning, got %+v", status)
	}
}

func TestCopyWithoutAction(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("enter"))
	_, cmd := m.Update(key("y"))
	status := cmd().(statusMsg)
	if status.level != statusInfo {
		t.Fatalf("general tab has nothing to copy, got %+v", status)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestDetailsWithoutApplicableTabs(t *testing.T) {
	none := tabs.Options{TabPlugins: func(*har.Entry, []tabs.Selector) []tabs.Selector { return nil }}
	m := newTestModelWith(t, none, 0)
	m = send(t, m, key("enter"))
	if !m.showDetails || len(m.tabs) != 1 {
		t.Fatalf("expected a single placeholder tab, got %d tabs", len(m.tabs))
	}
	if !strings.Contains(ansi.Strip(m.View()), noTabsMessage) {
		t.Fatalf("placeholder message missing:\n%s", ansi.Strip(m.View()))
	}
}

func TestConfiguredPanelHeight(t *testing.T) {
	m := newTestModelWith(t, tabs.Options{}, 420)
	if h := m.currentPanelHeight(); h != 420 {
		t.Fatalf("configured height should win over the viewport, got %d", h)
	}
	derived := newTestModel(t)
	if h := derived.currentPanelHeight(); h != derived.viewport.Height*rowPixels {
		t.Fatalf("unset height should follow the viewport, got %d", h)
	}
}
