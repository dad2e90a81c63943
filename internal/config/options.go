package config

import (
	"log"
	"strings"

	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/errdef"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/scripts"
	"github.com/unkn0wn-root/harview/internal/tabs"
)

// DefaultPanelHeight is used when neither settings nor the host supply one.
const DefaultPanelHeight = 600

// Resolved is settings turned into tab options.
type Resolved struct {
	Tabs        tabs.Options
	PanelHeight int
	// PanelHeightSet reports whether PanelHeight came from settings rather
	// than DefaultPanelHeight.
	PanelHeightSet bool
	// Script is the loaded reduce_script, nil when none is configured.
	Script *scripts.Reducer
}

// Resolve parses selector lists and loads the reducer script. Relative
// script paths are taken from baseDir.
func Resolve(s Settings, baseDir string) (Resolved, error) {
	out := Resolved{PanelHeight: s.PanelHeight, PanelHeightSet: s.PanelHeight > 0}
	if !out.PanelHeightSet {
		out.PanelHeight = DefaultPanelHeight
	}

	base, err := parseTabList("tabs", s.Tabs)
	if err != nil {
		return Resolved{}, err
	}
	byType := make(map[har.RequestType][]tabs.Selector, len(s.TypeTabs))
	for name, items := range s.TypeTabs {
		rt := har.RequestType(strings.ToLower(strings.TrimSpace(name)))
		if rt.Normalize() != rt {
			return Resolved{}, errdef.New(errdef.CodeConfig, "type_tabs: unknown request type %q", name)
		}
		sels, err := parseTabList("type_tabs."+name, items)
		if err != nil {
			return Resolved{}, err
		}
		byType[rt] = sels
	}
	if len(base) > 0 || len(byType) > 0 {
		out.Tabs.TabPlugins = plugins(base, byType)
	}

	var script details.Reducer
	if path := ResolvePath(baseDir, strings.TrimSpace(s.ReduceScript)); path != "" {
		r, err := scripts.LoadReducer(path)
		if err != nil {
			return Resolved{}, err
		}
		out.Script = r
		script = r.Func()
	}
	out.Tabs.ReduceTuples = HideLabels(s.GeneralHide, script)
	return out, nil
}

func parseTabList(name string, items []any) ([]tabs.Selector, error) {
	if len(items) == 0 {
		return nil, nil
	}
	sels, err := tabs.ParseSelectors(items)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeConfig, err, "%s", name)
	}
	for _, sel := range sels {
		if !tabs.Known(sel.Use) {
			log.Printf("%s: unknown tab %q is ignored", name, sel.Use)
		}
	}
	return sels, nil
}

// plugins returns a TabPlugins hook preferring the request-type list, then
// the base list, then the defaults.
func plugins(base []tabs.Selector, byType map[har.RequestType][]tabs.Selector) func(*har.Entry, []tabs.Selector) []tabs.Selector {
	return func(entry *har.Entry, defaults []tabs.Selector) []tabs.Selector {
		rt := har.RequestTypeOf(entry.Response.Content.MimeType)
		if sels, ok := byType[rt]; ok {
			return append([]tabs.Selector(nil), sels...)
		}
		if len(base) > 0 {
			return append([]tabs.Selector(nil), base...)
		}
		return defaults
	}
}

// HideLabels drops general rows whose label matches one of labels, case
// insensitively. next sees only the remaining rows: its index and list
// arguments refer to the filtered list, so a reducer returning the whole
// list cannot bring hidden rows back. It returns next unchanged when there
// is nothing to hide.
func HideLabels(labels []string, next details.Reducer) details.Reducer {
	hidden := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			hidden[l] = struct{}{}
		}
	}
	if len(hidden) == 0 {
		return next
	}
	isHidden := func(kv details.KV) bool {
		_, ok := hidden[strings.ToLower(kv.Label)]
		return ok
	}
	return func(acc []details.KV, kv details.KV, index int, all []details.KV) []details.KV {
		if isHidden(kv) {
			return acc
		}
		if next == nil {
			return append(acc, kv)
		}
		visible := make([]details.KV, 0, len(all))
		pos := 0
		for i, row := range all {
			if isHidden(row) {
				continue
			}
			if i < index {
				pos++
			}
			visible = append(visible, row)
		}
		return next(acc, kv, pos, visible)
	}
}
