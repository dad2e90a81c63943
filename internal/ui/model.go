// Package ui is the interactive HAR viewer: an entry list and a details
// overlay whose tabs render on first view.
package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/unkn0wn-root/harview/internal/tabs"
	"github.com/unkn0wn-root/harview/internal/theme"
	"github.com/unkn0wn-root/harview/internal/view"
	"github.com/unkn0wn-root/harview/internal/waterfall"
)

// rowPixels approximates the pixel height of one terminal row; tab
// renderers size previews in pixels.
const rowPixels = 18

type Config struct {
	Waterfall *waterfall.Waterfall
	Theme     *theme.Theme
	Title     string
	// PanelHeight overrides the panel height passed to tab renderers.
	// Zero derives it from the viewport.
	PanelHeight int
}

type Model struct {
	theme    theme.Theme
	title    string
	rows     []*waterfall.Row
	renderer *view.Terminal
	caser    cases.Caser

	width  int
	height int
	ready  bool

	cursor int
	offset int

	showDetails bool
	tabs        []*tabs.Tab
	activeTab   int
	viewport    viewport.Model
	panelHeight int

	statusMessage  statusMsg
	writeClipboard func(string) error
}

func New(cfg Config) Model {
	th := theme.DefaultTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	var rows []*waterfall.Row
	if cfg.Waterfall != nil {
		rows = cfg.Waterfall.Rows
	}
	return Model{
		theme:          th,
		title:          cfg.Title,
		rows:           rows,
		renderer:       view.NewTerminal(th, 0),
		caser:          cases.Title(language.English),
		viewport:       viewport.New(0, 0),
		panelHeight:    cfg.PanelHeight,
		writeClipboard: clipboard.WriteAll,
	}
}
