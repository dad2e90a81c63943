package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc"

	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/errdef"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/tabs"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDirOverride(t *testing.T) {
	t.Setenv("HARVIEW_CONFIG_DIR", "/tmp/harview-test")
	if got := Dir(); got != "/tmp/harview-test" {
		t.Fatalf("expected override, got %q", got)
	}
}

func TestLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARVIEW_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.toml"), heredoc.Doc(`
		tabs = ["general", { use = "response", label = "Reply", is_network = false }, "timings"]
		general_hide = ["Priority"]
		panel_height = 480

		[type_tabs]
		image = ["general", "image"]
	`))

	s, h, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if h.Format != SettingsFormatTOML || h.Path != filepath.Join(dir, "settings.toml") {
		t.Fatalf("unexpected handle %+v", h)
	}
	if len(s.Tabs) != 3 || s.PanelHeight != 480 || len(s.TypeTabs["image"]) != 2 {
		t.Fatalf("unexpected settings %+v", s)
	}
	sels, err := tabs.ParseSelectors(s.Tabs)
	if err != nil {
		t.Fatalf("ParseSelectors: %v", err)
	}
	if sels[1].Use != "response" || sels[1].Label != "Reply" || sels[1].IsNetwork == nil || *sels[1].IsNetwork {
		t.Fatalf("table selector not decoded: %+v", sels[1])
	}
}

func TestLoadSettingsYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HARVIEW_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.yml"), heredoc.Doc(`
		tabs:
		  - general
		  - use: request
		    label: Outgoing
		reduce_script: hide.js
	`))

	s, h, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if h.Format != SettingsFormatYAML {
		t.Fatalf("expected yaml handle, got %+v", h)
	}
	sels, err := tabs.ParseSelectors(s.Tabs)
	if err != nil {
		t.Fatalf("ParseSelectors: %v", err)
	}
	if len(sels) != 2 || sels[1].Label != "Outgoing" || s.ReduceScript != "hide.js" {
		t.Fatalf("unexpected settings %+v / %+v", s, sels)
	}
}

func TestLoadSettingsMissing(t *testing.T) {
	t.Setenv("HARVIEW_CONFIG_DIR", t.TempDir())
	s, h, err := LoadSettings()
	if err != nil {
		t.Fatalf("missing settings should not fail: %v", err)
	}
	if h.Format != SettingsFormatTOML || len(s.Tabs) != 0 {
		t.Fatalf("unexpected defaults %+v %+v", s, h)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "tabs = [")
	if _, _, err := LoadSettingsFile(path); errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSaveSettingsRoundTripsFormats(t *testing.T) {
	for _, format := range []SettingsFormat{SettingsFormatTOML, SettingsFormatYAML} {
		h := SettingsHandle{Path: filepath.Join(t.TempDir(), "nested", "settings."+string(format)), Format: format}
		if err := SaveSettings(h, DefaultSettings()); err != nil {
			t.Fatalf("%s save: %v", format, err)
		}
		s, _, err := LoadSettingsFile(h.Path)
		if err != nil {
			t.Fatalf("%s load: %v", format, err)
		}
		if len(s.Tabs) != 7 || s.PanelHeight != DefaultPanelHeight {
			t.Fatalf("%s: unexpected settings %+v", format, s)
		}
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	if _, err := EncodeSettings(Settings{}, SettingsFormat("ini")); errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func entry(mime string) *har.Entry {
	return &har.Entry{Response: har.Response{Content: har.Content{MimeType: mime}}}
}

func TestResolveTabPlugins(t *testing.T) {
	s := Settings{
		Tabs:     []any{"general", "raw"},
		TypeTabs: map[string][]any{"image": {"image"}},
	}
	r, err := Resolve(s, t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.PanelHeight != DefaultPanelHeight {
		t.Fatalf("expected default panel height, got %d", r.PanelHeight)
	}
	got := r.Tabs.TabPlugins(entry("text/html"), tabs.DefaultSelectors())
	if len(got) != 2 || got[1].Use != "raw" {
		t.Fatalf("base list not used: %+v", got)
	}
	got = r.Tabs.TabPlugins(entry("image/png"), tabs.DefaultSelectors())
	if len(got) != 1 || got[0].Use != "image" {
		t.Fatalf("type list not used: %+v", got)
	}
}

func TestResolveWithoutListsKeepsDefaults(t *testing.T) {
	r, err := Resolve(Settings{}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Tabs.TabPlugins != nil || r.Tabs.ReduceTuples != nil || r.Script != nil {
		t.Fatalf("empty settings should resolve to zero options: %+v", r)
	}
}

func TestResolveErrors(t *testing.T) {
	cases := map[string]Settings{
		"bad selector": {Tabs: []any{42}},
		"bad type":     {TypeTabs: map[string][]any{"spreadsheet": {"general"}}},
		"missing js":   {ReduceScript: "nope.js"},
	}
	for name, s := range cases {
		if _, err := Resolve(s, t.TempDir()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestResolveScriptAndHide(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "upper.js"), heredoc.Doc(`
		function reduceTuples(acc, t) {
		  acc.push([t[0], String(t[1]).toUpperCase()]);
		  return acc;
		}
	`))
	r, err := Resolve(Settings{ReduceScript: "upper.js", GeneralHide: []string{" priority "}}, dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Script == nil {
		t.Fatalf("expected script to be loaded")
	}
	out := details.Reduce([]details.KV{
		{Label: "Priority", Value: "high"},
		{Label: "Method", Value: "get"},
	}, r.Tabs.ReduceTuples)
	if len(out) != 1 || out[0] != (details.KV{Label: "Method", Value: "GET"}) {
		t.Fatalf("unexpected reduced rows %+v", out)
	}
}

func TestHideLabelsWithoutNext(t *testing.T) {
	if HideLabels(nil, nil) != nil {
		t.Fatalf("expected nil reducer")
	}
	out := details.Reduce([]details.KV{{Label: "A", Value: "1"}, {Label: "B", Value: "2"}}, HideLabels([]string{"a"}, nil))
	if len(out) != 1 || out[0].Label != "B" {
		t.Fatalf("unexpected rows %+v", out)
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("/base", "x.js"); got != filepath.Join("/base", "x.js") {
		t.Fatalf("unexpected %q", got)
	}
	if got := ResolvePath("/base", "/abs/x.js"); got != "/abs/x.js" {
		t.Fatalf("absolute path changed: %q", got)
	}
}

func TestHideLabelsSurvivesArrayReturningScript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "all.js"), `function reduceTuples(acc, tuple, index, array) { return array; }`)
	r, err := Resolve(Settings{ReduceScript: "all.js", GeneralHide: []string{"Connection"}}, dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	e := &har.Entry{Connection: "42", ServerIPAddress: "10.0.0.1"}
	for _, kv := range details.General(e, 0, 1, r.Tabs.ReduceTuples) {
		if kv.Label == "Connection" {
			t.Fatalf("hidden row returned by script: %+v", kv)
		}
	}
	if r.Script.Err() != nil {
		t.Fatalf("unexpected script error: %v", r.Script.Err())
	}
}

func TestHideLabelsPassesFilteredIndex(t *testing.T) {
	var seen []string
	next := func(acc []details.KV, kv details.KV, index int, all []details.KV) []details.KV {
		seen = append(seen, kv.Label+":"+all[index].Label)
		return append(acc, kv)
	}
	rows := []details.KV{{Label: "A", Value: "1"}, {Label: "B", Value: "2"}, {Label: "C", Value: "3"}}
	out := details.Reduce(rows, HideLabels([]string{"b"}, next))
	if len(out) != 2 || out[1].Label != "C" {
		t.Fatalf("unexpected rows %+v", out)
	}
	if len(seen) != 2 || seen[0] != "A:A" || seen[1] != "C:C" {
		t.Fatalf("index should refer to the filtered list, got %v", seen)
	}
}
