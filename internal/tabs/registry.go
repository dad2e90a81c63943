// Package tabs builds the detail tabs for one HAR entry from a fixed
// catalogue of builders. Hosts choose which builders run, in which order
// and with which labels through selector lists; the catalogue itself
// cannot be extended at runtime.
package tabs

import (
	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/indicator"
)

const (
	KeyGeneral  = "general"
	KeyRequest  = "request"
	KeyResponse = "response"
	KeyTimings  = "timings"
	KeyRaw      = "raw"
	KeyImage    = "image"
	KeyContent  = "content"
)

var defaultOrder = []string{
	KeyGeneral,
	KeyRequest,
	KeyResponse,
	KeyTimings,
	KeyRaw,
	KeyImage,
	KeyContent,
}

// Input is the per-entry context computed by the host.
type Input struct {
	RequestID     int
	RequestType   har.RequestType
	StartRelative float64
	EndRelative   float64
	Indicators    []indicator.Indicator
}

// Options lets the host customise tab selection.
type Options struct {
	// TabPlugins may replace the default selector list for an entry.
	TabPlugins func(entry *har.Entry, defaults []Selector) []Selector
	// ReduceTuples is the general tab reducer used when the general
	// selector does not carry its own.
	ReduceTuples details.Reducer
}

// builder returns nil when the tab does not apply to the entry.
type builder func(entry *har.Entry, in Input, sel Selector) *Tab

var registry map[string]builder

func init() {
	registry = map[string]builder{
		KeyGeneral:  buildGeneral,
		KeyRequest:  buildRequest,
		KeyResponse: buildResponse,
		KeyTimings:  buildTimings,
		KeyRaw:      buildRaw,
		KeyImage:    buildImage,
		KeyContent:  buildContent,
	}
}

// DefaultSelectors returns a fresh copy of the default tab order.
func DefaultSelectors() []Selector {
	out := make([]Selector, len(defaultOrder))
	for i, key := range defaultOrder {
		out[i] = Use(key)
	}
	return out
}

// Known reports whether key names a builder.
func Known(key string) bool {
	_, ok := registry[key]
	return ok
}

// MakeTabs resolves the selector list for entry and runs each builder in
// order. Unknown keys and builders that do not apply are skipped.
func MakeTabs(entry *har.Entry, in Input, opts Options) []*Tab {
	selectors := DefaultSelectors()
	if opts.TabPlugins != nil {
		selectors = opts.TabPlugins(entry, selectors)
	}

	out := make([]*Tab, 0, len(selectors))
	for _, sel := range selectors {
		build, ok := registry[sel.Use]
		if !ok {
			continue
		}
		if sel.ReduceTuples == nil {
			sel.ReduceTuples = opts.ReduceTuples
		}
		tab := build(entry, in, sel)
		if tab == nil {
			continue
		}
		if sel.Label != "" {
			tab.Title = sel.Label
		}
		out = append(out, tab)
	}
	return out
}
