package tabs

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/indicator"
)

const (
	classRaw       = "raw-data rendered-data"
	classContent   = "content rendered-data"
	previewChrome  = 100
	copyRawLabel   = "Copy Raw Data to Clipboard"
	copyBodyLabel  = "Copy Content to Clipboard"
	escapedNewLine = `\n`
	escapedTab     = `\t`
)

func buildGeneral(entry *har.Entry, in Input, sel Selector) *Tab {
	return New("General", "", func(int) Content {
		rows := details.General(entry, in.StartRelative, in.RequestID, sel.ReduceTuples)
		buckets := indicator.Classify(in.Indicators)
		if buckets.Empty() {
			return Content{DefinitionList{Items: rows}}
		}

		var c Content
		c = appendIndicators(c, pluralize("Error", len(buckets.Errors)), buckets.Errors)
		c = appendIndicators(c, pluralize("Warning", len(buckets.Warnings)), buckets.Warnings)
		c = appendIndicators(c, "Info", buckets.Info)
		return append(c, Heading{Text: "General"}, DefinitionList{Items: rows})
	})
}

func appendIndicators(c Content, title string, list []indicator.Indicator) Content {
	if len(list) == 0 {
		return c
	}
	rows := make([]details.SafeKV, 0, len(list))
	for _, ind := range list {
		rows = append(rows, details.SafeKV{Label: ind.Title, Value: ind.Description})
	}
	return append(c, Heading{Text: title, Plain: true}, DefinitionList{Items: rows})
}

func buildRequest(entry *har.Entry, _ Input, sel Selector) *Tab {
	return New("Request", "", func(int) Content {
		var c Content
		if sel.network() {
			c = append(c, DefinitionList{Items: details.Request(entry)})
		}
		return append(c,
			Heading{Text: "All Request Headers"},
			DefinitionList{Items: details.RequestHeaders(entry)},
		)
	})
}

func buildResponse(entry *har.Entry, _ Input, sel Selector) *Tab {
	return New("Response", "", func(int) Content {
		var c Content
		if sel.network() {
			c = append(c, DefinitionList{Items: details.Response(entry)})
		}
		return append(c,
			Heading{Text: "All Response Headers"},
			DefinitionList{Items: details.ResponseHeaders(entry)},
		)
	})
}

func buildTimings(entry *har.Entry, in Input, _ Selector) *Tab {
	return New("Timings", "", func(int) Content {
		return Content{DefinitionList{
			Items:   details.Timings(entry, in.StartRelative, in.EndRelative),
			Classed: true,
		}}
	})
}

func buildRaw(entry *har.Entry, _ Input, _ Selector) *Tab {
	return New("Raw Data", classRaw, func(int) Content {
		dump := rawDump(entry)
		return Content{
			CopyAction{Label: copyRawLabel, Text: dump},
			Preformatted{Text: dump, Syntax: "json"},
		}
	})
}

func rawDump(entry *har.Entry) string {
	raw, err := entry.Raw()
	if err != nil {
		return err.Error()
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func buildImage(entry *har.Entry, in Input, _ Selector) *Tab {
	if in.RequestType != har.TypeImage {
		return nil
	}
	src, ok := previewURL(entry.Request.URL)
	if !ok {
		return nil
	}
	return New("Preview", "", func(panelHeight int) Content {
		return Content{Image{Src: src, MaxHeight: panelHeight - previewChrome}}
	})
}

// previewURL only accepts http(s) URLs; data: and blob: resources cannot
// be previewed by reference.
func previewURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String(), true
	default:
		return "", false
	}
}

func buildContent(entry *har.Entry, _ Input, _ Selector) *Tab {
	content := entry.Response.Content
	if !strings.HasPrefix(strings.ToLower(content.MimeType), "text/") || content.Text == "" {
		return nil
	}
	text := unescapeBody(decodeBody(content))
	lines := lineCount(text)
	title := fmt.Sprintf("Content (%d %s)", lines, pluralize("Line", lines))
	syntax := syntaxFor(content.MimeType)
	return New(title, classContent, func(int) Content {
		return Content{
			CopyAction{Label: copyBodyLabel, Text: text},
			Preformatted{Text: text, Syntax: syntax},
		}
	})
}

func decodeBody(c har.Content) string {
	if !strings.EqualFold(c.Encoding, "base64") {
		return c.Text
	}
	decoded, err := base64.StdEncoding.DecodeString(c.Text)
	if err != nil {
		return c.Text
	}
	return string(decoded)
}

// unescapeBody undoes the double encoding some collectors apply to line
// breaks and tabs.
func unescapeBody(s string) string {
	s = strings.ReplaceAll(s, escapedNewLine, "\n")
	return strings.ReplaceAll(s, escapedTab, "\t")
}

func lineCount(s string) int {
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

func syntaxFor(mimeType string) string {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mt, "html"):
		return "html"
	case strings.Contains(mt, "css"):
		return "css"
	case strings.Contains(mt, "javascript"), strings.Contains(mt, "ecmascript"):
		return "javascript"
	case strings.Contains(mt, "json"):
		return "json"
	case strings.Contains(mt, "xml"):
		return "xml"
	case strings.Contains(mt, "yaml"):
		return "yaml"
	default:
		return ""
	}
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
