// Package view renders tab content for the terminal and as HTML.
package view

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/tabs"
	"github.com/unkn0wn-root/harview/internal/theme"
)

const (
	maxLabelWidth  = 32
	labelGap       = "  "
	highlightStyle = "monokai"
	highlightFmt   = "terminal16m"
)

// Terminal renders tab content as styled text.
type Terminal struct {
	theme     theme.Theme
	width     int
	highlight bool
	renderer  *lipgloss.Renderer
}

// NewTerminal returns a colour renderer with syntax highlighting. A width
// of zero or less disables wrapping.
func NewTerminal(th theme.Theme, width int) *Terminal {
	return &Terminal{theme: th, width: width, highlight: true}
}

// NewPlain returns a renderer that emits no escape sequences.
func NewPlain(th theme.Theme, width int) *Terminal {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return &Terminal{theme: th, width: width, renderer: r}
}

// SetWidth updates the wrap width, e.g. after a terminal resize.
func (t *Terminal) SetWidth(width int) {
	t.width = width
}

func (t *Terminal) style(s lipgloss.Style) lipgloss.Style {
	if t.renderer == nil {
		return s
	}
	return s.Renderer(t.renderer)
}

// RenderTab renders tab, invoking its lazy renderer if needed.
func (t *Terminal) RenderTab(tab *tabs.Tab, panelHeight int) (string, error) {
	c, err := tab.Render(panelHeight)
	if err != nil {
		return "", err
	}
	return t.Render(c), nil
}

func (t *Terminal) Render(c tabs.Content) string {
	parts := make([]string, 0, len(c))
	for i, b := range c {
		var out string
		switch v := b.(type) {
		case tabs.Heading:
			out = t.heading(v)
			if i > 0 {
				out = "\n" + out
			}
		case tabs.DefinitionList:
			out = t.definitionList(v)
		case tabs.Preformatted:
			out = t.preformatted(v)
		case tabs.CopyAction:
			out = t.style(t.theme.CopyHint).Render("[y] " + v.Label)
		case tabs.Image:
			out = t.style(t.theme.ImageHint).Render(fmt.Sprintf("Preview: %s (max height %dpx)", v.Src, v.MaxHeight))
		default:
			continue
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n")
}

func (t *Terminal) heading(h tabs.Heading) string {
	if h.Plain {
		return t.style(t.theme.HeadingPlain).Render(h.Text)
	}
	return t.style(t.theme.Heading).Render(h.Text)
}

func (t *Terminal) definitionList(dl tabs.DefinitionList) string {
	if len(dl.Items) == 0 {
		return ""
	}
	labelWidth := labelColumn(dl.Items)
	valueWidth := 0
	if t.width > 0 {
		valueWidth = t.width - labelWidth - len(labelGap)
		if valueWidth < 16 {
			valueWidth = 16
		}
	}
	indent := strings.Repeat(" ", labelWidth+len(labelGap))

	var b strings.Builder
	for i, kv := range dl.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		labelStyle := t.theme.Label
		if dl.Classed {
			labelStyle = t.theme.Phase(kv.Label)
		}
		label := runewidth.Truncate(kv.Label, labelWidth, "…")
		label = runewidth.FillRight(label, labelWidth)
		b.WriteString(t.style(labelStyle).Render(label))
		b.WriteString(labelGap)

		valueStyle := t.style(t.theme.Value)
		if valueWidth > 0 {
			valueStyle = valueStyle.Width(valueWidth)
		}
		lines := strings.Split(valueStyle.Render(kv.Value), "\n")
		for j, line := range lines {
			if j > 0 {
				b.WriteByte('\n')
				b.WriteString(indent)
			}
			b.WriteString(strings.TrimRight(line, " "))
		}
	}
	return b.String()
}

func labelColumn(items []details.SafeKV) int {
	w := 0
	for _, kv := range items {
		if lw := runewidth.StringWidth(kv.Label); lw > w {
			w = lw
		}
	}
	if w > maxLabelWidth {
		return maxLabelWidth
	}
	return w
}

func (t *Terminal) preformatted(p tabs.Preformatted) string {
	text := strings.TrimRight(p.Text, "\n")
	if t.highlight && p.Syntax != "" {
		var buf bytes.Buffer
		if err := quick.Highlight(&buf, text, p.Syntax, highlightFmt, highlightStyle); err == nil {
			return buf.String()
		}
	}
	return text
}
