// Package waterfall turns a HAR document into the rows a host displays,
// computing each entry's position on the page timeline and building its
// detail tabs on demand.
package waterfall

import (
	"math"
	"time"

	"github.com/unkn0wn-root/harview/internal/errdef"
	"github.com/unkn0wn-root/harview/internal/fieldfmt"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/indicator"
	"github.com/unkn0wn-root/harview/internal/tabs"
)

// AllPages disables page filtering.
const AllPages = -1

// IndicatorFunc returns the indicators for entry. defaults computes the
// built-in diagnostics so a hook can extend rather than replace them.
type IndicatorFunc func(entry *har.Entry, requestType har.RequestType, defaults func() []indicator.Indicator) []indicator.Indicator

type Options struct {
	// Page selects entries whose pageref matches the page at this index.
	// AllPages, or a log without pages, keeps every entry.
	Page       int
	Indicators IndicatorFunc
	Tabs       tabs.Options
}

// Row is one displayed entry.
type Row struct {
	Entry *har.Entry
	Input tabs.Input

	opts tabs.Options
	tabs []*tabs.Tab
}

// Waterfall is the set of rows for one page.
type Waterfall struct {
	Page      *har.Page
	PageStart time.Time
	Rows      []*Row
}

// Build selects the entries for opts.Page and computes per-row inputs.
func Build(doc *har.Document, opts Options) (*Waterfall, error) {
	if doc == nil {
		return nil, errdef.New(errdef.CodeParse, "nil har document")
	}
	page, err := selectPage(doc.Log.Pages, opts.Page)
	if err != nil {
		return nil, err
	}

	entries := make([]*har.Entry, 0, len(doc.Log.Entries))
	for i := range doc.Log.Entries {
		e := &doc.Log.Entries[i]
		if page != nil && e.PageRef != page.ID {
			continue
		}
		entries = append(entries, e)
	}

	w := &Waterfall{Page: page, PageStart: pageStart(page, entries)}
	w.Rows = make([]*Row, 0, len(entries))
	for i, e := range entries {
		rt := har.RequestTypeOf(e.Response.Content.MimeType)
		start, end := w.offsets(e)
		w.Rows = append(w.Rows, &Row{
			Entry: e,
			Input: tabs.Input{
				RequestID:     i + 1,
				RequestType:   rt,
				StartRelative: start,
				EndRelative:   end,
				Indicators:    indicators(e, rt, opts.Indicators),
			},
			opts: opts.Tabs,
		})
	}
	return w, nil
}

func selectPage(pages []har.Page, idx int) (*har.Page, error) {
	if idx == AllPages || len(pages) == 0 {
		return nil, nil
	}
	if idx < 0 || idx >= len(pages) {
		return nil, errdef.New(errdef.CodeConfig, "page %d out of range (log has %d)", idx, len(pages))
	}
	return &pages[idx], nil
}

// pageStart prefers the page timestamp and falls back to the earliest
// entry. A zero time means no timestamp could be parsed.
func pageStart(page *har.Page, entries []*har.Entry) time.Time {
	if page != nil {
		if ts, ok := fieldfmt.ParseDate(page.StartedDateTime); ok {
			return ts
		}
	}
	var first time.Time
	for _, e := range entries {
		ts, ok := fieldfmt.ParseDate(e.StartedDateTime)
		if !ok {
			continue
		}
		if first.IsZero() || ts.Before(first) {
			first = ts
		}
	}
	return first
}

// offsets returns start and end in milliseconds relative to the page
// start; NaN marks an unknown value.
func (w *Waterfall) offsets(e *har.Entry) (float64, float64) {
	start := math.NaN()
	if ts, ok := fieldfmt.ParseDate(e.StartedDateTime); ok && !w.PageStart.IsZero() {
		start = float64(ts.Sub(w.PageStart)) / float64(time.Millisecond)
	}
	end := math.NaN()
	if d, ok := fieldfmt.ParseNonNegative(e.Time); ok && !math.IsNaN(start) {
		end = start + d
	}
	return start, end
}

func indicators(e *har.Entry, rt har.RequestType, hook IndicatorFunc) []indicator.Indicator {
	defaults := func() []indicator.Indicator { return indicator.Default(e, rt) }
	if hook == nil {
		return defaults()
	}
	return hook(e, rt, defaults)
}

// Tabs builds the row's tabs on first use and returns the same tabs
// afterwards, so their render caches survive the overlay closing.
func (r *Row) Tabs() []*tabs.Tab {
	if r.tabs == nil {
		r.tabs = tabs.MakeTabs(r.Entry, r.Input, r.opts)
	}
	return r.tabs
}

// Buckets classifies the row's indicators for display.
func (r *Row) Buckets() indicator.Buckets {
	return indicator.Classify(r.Input.Indicators)
}
