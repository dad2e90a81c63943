package view

import (
	"html/template"
	"io"

	"github.com/unkn0wn-root/harview/internal/errdef"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/tabs"
	"github.com/unkn0wn-root/harview/internal/theme"
)

// Details is the data behind one details overlay.
type Details struct {
	RequestID   int
	URL         string
	RequestType har.RequestType
	PanelHeight int
	Tabs        []*tabs.Tab
}

type htmlDetails struct {
	RequestID int
	URL       string
	Type      string
	Tabs      []htmlTab
}

type htmlTab struct {
	Title  string
	Class  string
	Blocks []htmlBlock
}

type htmlBlock struct {
	Kind      string
	Text      string
	Plain     bool
	Items     []htmlItem
	Syntax    string
	Src       string
	MaxHeight int
}

type htmlItem struct {
	Class string
	Label string
	Value string
}

const detailsTemplate = `{{define "block"}}
{{- if eq .Kind "heading"}}<h2{{if .Plain}} class="no-border"{{end}}>{{.Text}}</h2>
{{- else if eq .Kind "dl"}}<dl>{{range .Items}}<dt{{if .Class}} class="{{.Class}}"{{end}}>{{.Label}}</dt><dd>{{.Value}}</dd>{{end}}</dl>
{{- else if eq .Kind "pre"}}<pre><code{{if .Syntax}} class="language-{{.Syntax}}"{{end}}>{{.Text}}</code></pre>
{{- else if eq .Kind "copy"}}<button class="copy-tab-data">{{.Text}}</button>
{{- else if eq .Kind "img"}}<img class="preview" style="max-height: {{.MaxHeight}}px" src="{{.Src}}">
{{- end}}
{{- end}}
{{- define "details"}}<div class="wrapper">
<header class="type-{{.Type}}">
<h3><strong>#{{.RequestID}}</strong> <a href="{{.URL}}">{{.URL}}</a></h3>
<nav class="tab-nav"><ul>{{range .Tabs}}<li><button class="tab-button">{{.Title}}</button></li>{{end}}</ul></nav>
</header>
{{range .Tabs}}<div class="tab{{if .Class}} {{.Class}}{{end}}">{{range .Blocks}}{{template "block" .}}{{end}}</div>
{{end}}</div>
{{- end}}
{{- define "page"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>#{{.RequestID}} {{.URL}}</title>
<style>
body { font-family: sans-serif; margin: 1em; }
.tab-nav ul { list-style: none; padding: 0; display: flex; gap: .5em; }
h2 { border-bottom: 1px solid #ccc; font-size: 1.1em; }
h2.no-border { border-bottom: none; }
dl { display: grid; grid-template-columns: max-content auto; gap: .2em 1em; }
dt { font-weight: bold; }
dd { margin: 0; word-break: break-all; }
pre { background: #f5f5f5; padding: .5em; overflow: auto; }
dt.blocked { color: #999; } dt.dns { color: #1a9e9e; } dt.connect { color: #d98b00; }
dt.ssl-tls { color: #a040a0; } dt.send { color: #2a7ae2; } dt.wait { color: #2a9d3a; }
dt.receive { color: #c0392b; }
</style>
</head>
<body>
{{template "details" .}}
</body>
</html>
{{end}}`

var detailsTmpl = template.Must(template.New("view").Parse(detailsTemplate))

// WriteHTML writes the details overlay markup for d.
func WriteHTML(w io.Writer, d Details) error {
	return writeTemplate(w, "details", d)
}

// WriteHTMLPage writes d as a standalone HTML document.
func WriteHTMLPage(w io.Writer, d Details) error {
	return writeTemplate(w, "page", d)
}

func writeTemplate(w io.Writer, name string, d Details) error {
	data, err := htmlData(d)
	if err != nil {
		return err
	}
	if err := detailsTmpl.ExecuteTemplate(w, name, data); err != nil {
		return errdef.Wrap(errdef.CodeRender, err, "render html")
	}
	return nil
}

func htmlData(d Details) (htmlDetails, error) {
	out := htmlDetails{
		RequestID: d.RequestID,
		URL:       d.URL,
		Type:      string(d.RequestType.Normalize()),
		Tabs:      make([]htmlTab, 0, len(d.Tabs)),
	}
	for _, tab := range d.Tabs {
		c, err := tab.Render(d.PanelHeight)
		if err != nil {
			return htmlDetails{}, err
		}
		out.Tabs = append(out.Tabs, htmlTab{
			Title:  tab.Title,
			Class:  tab.Class,
			Blocks: htmlBlocks(c),
		})
	}
	return out, nil
}

func htmlBlocks(c tabs.Content) []htmlBlock {
	out := make([]htmlBlock, 0, len(c))
	for _, b := range c {
		switch v := b.(type) {
		case tabs.Heading:
			out = append(out, htmlBlock{Kind: "heading", Text: v.Text, Plain: v.Plain})
		case tabs.DefinitionList:
			items := make([]htmlItem, len(v.Items))
			for i, kv := range v.Items {
				items[i] = htmlItem{Label: kv.Label, Value: kv.Value}
				if v.Classed {
					items[i].Class = theme.CSSClass(kv.Label)
				}
			}
			out = append(out, htmlBlock{Kind: "dl", Items: items})
		case tabs.Preformatted:
			out = append(out, htmlBlock{Kind: "pre", Text: v.Text, Syntax: v.Syntax})
		case tabs.CopyAction:
			out = append(out, htmlBlock{Kind: "copy", Text: v.Label})
		case tabs.Image:
			out = append(out, htmlBlock{Kind: "img", Src: v.Src, MaxHeight: v.MaxHeight})
		}
	}
	return out
}
