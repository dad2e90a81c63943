// Package indicator holds diagnostic findings shown next to a waterfall row
// and in the general details tab.
package indicator

import (
	"strconv"
	"strings"

	"github.com/unkn0wn-root/harview/internal/har"
)

const (
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

type Indicator struct {
	ID          string
	Type        string
	Title       string
	Description string
}

// Buckets is the partition produced by Classify. Any type other than error
// and warning lands in Info.
type Buckets struct {
	Errors   []Indicator
	Warnings []Indicator
	Info     []Indicator
}

func (b Buckets) Empty() bool {
	return len(b.Errors) == 0 && len(b.Warnings) == 0 && len(b.Info) == 0
}

// Classify splits indicators by type, keeping input order inside each
// bucket. Duplicates are kept.
func Classify(list []Indicator) Buckets {
	var b Buckets
	for _, ind := range list {
		switch ind.Type {
		case TypeError:
			b.Errors = append(b.Errors, ind)
		case TypeWarning:
			b.Warnings = append(b.Warnings, ind)
		default:
			b.Info = append(b.Info, ind)
		}
	}
	return b
}

// Default derives the baseline findings for an entry.
func Default(entry *har.Entry, requestType har.RequestType) []Indicator {
	var out []Indicator
	resp := entry.Response

	switch {
	case resp.Status >= 400 || (resp.Status == 0 && entry.Request.URL != ""):
		out = append(out, Indicator{
			ID:          "errorResponse",
			Type:        TypeError,
			Title:       "Response Error",
			Description: errorDescription(resp),
		})
	case resp.Status >= 300 && resp.Status < 400 && resp.Status != 304:
		out = append(out, Indicator{
			ID:          "redirect",
			Type:        TypeInfo,
			Title:       "Redirect",
			Description: redirectDescription(resp),
		})
	}

	if strings.HasPrefix(strings.ToLower(entry.Request.URL), "http://") {
		out = append(out, Indicator{
			ID:          "noTls",
			Type:        TypeWarning,
			Title:       "Insecure Connection",
			Description: "The request was sent without TLS.",
		})
	}

	if resp.Status == 200 && isCompressible(resp.Content.MimeType, requestType) {
		if enc, _ := resp.Headers.Get("Content-Encoding"); strings.TrimSpace(enc) == "" {
			out = append(out, Indicator{
				ID:          "noGzip",
				Type:        TypeWarning,
				Title:       "No Compression",
				Description: "The text response was not compressed.",
			})
		}
	}

	if resp.Status == 200 && !hasCacheHeaders(resp.Headers) {
		out = append(out, Indicator{
			ID:          "noCache",
			Type:        TypeInfo,
			Title:       "Not Cacheable",
			Description: "The response has no Cache-Control or Expires header.",
		})
	}
	return out
}

func errorDescription(resp har.Response) string {
	if resp.Status == 0 {
		return "The request did not receive a response."
	}
	return "Response status: " + strings.TrimSpace(strconv.Itoa(resp.Status)+" "+resp.StatusText)
}

func redirectDescription(resp har.Response) string {
	location, ok := resp.Headers.Get("Location")
	if !ok || location == "" {
		location = resp.RedirectURL
	}
	if location == "" {
		return "The response redirects to another resource."
	}
	return "Redirects to " + location
}

func isCompressible(mimeType string, requestType har.RequestType) bool {
	switch requestType {
	case har.TypeHTML, har.TypeCSS, har.TypeJavaScript, har.TypeSVG:
		return true
	}
	return strings.HasPrefix(strings.ToLower(mimeType), "text/")
}

func hasCacheHeaders(headers har.Headers) bool {
	if _, ok := headers.Get("Cache-Control"); ok {
		return true
	}
	_, ok := headers.Get("Expires")
	return ok
}
