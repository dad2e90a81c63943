package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/harview/internal/config"
	"github.com/unkn0wn-root/harview/internal/errdef"
	"github.com/unkn0wn-root/harview/internal/har"
	"github.com/unkn0wn-root/harview/internal/tabs"
	"github.com/unkn0wn-root/harview/internal/theme"
	"github.com/unkn0wn-root/harview/internal/ui"
	"github.com/unkn0wn-root/harview/internal/view"
	"github.com/unkn0wn-root/harview/internal/waterfall"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	formatTerm  = "term"
	formatPlain = "plain"
	formatHTML  = "html"
	formatPage  = "page"
)

var usage = heredoc.Doc(`
	Usage: harview [flags] <file.har>
	       harview init [flags]

	Without -entry harview opens the interactive viewer. With -entry it
	prints the detail tabs of that request and exits.

	Flags:
`)

func main() {
	if handled, err := handleInitSubcommand(os.Args[1:]); handled {
		if err != nil {
			log.Fatalf("init: %v", err)
		}
		return
	}

	var (
		settingsPath string
		entryID      int
		page         int
		tabList      string
		format       string
		panelHeight  int
		width        int
		debugLog     string
		showVersion  bool
	)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.StringVar(&settingsPath, "config", "", "Settings file (default: settings.toml in the config dir)")
	flag.IntVar(&entryID, "entry", 0, "Print the tabs of this request number instead of opening the viewer")
	flag.IntVar(&page, "page", waterfall.AllPages, "Page index to show (-1 for every entry)")
	flag.StringVar(&tabList, "tabs", "", "Comma-separated tab keys overriding the configured order")
	flag.StringVar(&format, "format", formatTerm, "Output format for -entry: term, plain, html or page")
	flag.IntVar(&panelHeight, "height", 0, "Panel height passed to tab renderers")
	flag.IntVar(&width, "width", 100, "Wrap width for term and plain output")
	flag.StringVar(&debugLog, "debug", "", "Write viewer debug logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show harview version")
	flag.Parse()

	if showVersion {
		fmt.Printf("harview %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	harPath := flag.Arg(0)

	doc, err := har.Load(harPath)
	if err != nil {
		log.Fatalf("load har: %v", err)
	}

	settings, handle, err := loadSettings(settingsPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	resolved, err := config.Resolve(settings, filepath.Dir(handle.Path))
	if err != nil {
		log.Fatalf("settings %s: %v", handle.Path, err)
	}
	applyPanelHeight(&resolved, panelHeight)
	if tabList != "" {
		sels, err := parseTabList(tabList)
		if err != nil {
			log.Fatalf("-tabs: %v", err)
		}
		resolved.Tabs.TabPlugins = func(*har.Entry, []tabs.Selector) []tabs.Selector {
			return append([]tabs.Selector(nil), sels...)
		}
	}

	wf, err := waterfall.Build(doc, waterfall.Options{Page: page, Tabs: resolved.Tabs})
	if err != nil {
		log.Fatalf("build waterfall: %v", err)
	}

	if entryID > 0 {
		err = printEntry(os.Stdout, wf, entryID, format, resolved.PanelHeight, width)
	} else {
		err = runViewer(wf, filepath.Base(harPath), viewerPanelHeight(resolved), debugLog)
	}
	if resolved.Script != nil && resolved.Script.Err() != nil {
		log.Printf("reduce_script: %v", resolved.Script.Err())
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func loadSettings(path string) (config.Settings, config.SettingsHandle, error) {
	if path != "" {
		return config.LoadSettingsFile(path)
	}
	return config.LoadSettings()
}

func parseTabList(list string) ([]tabs.Selector, error) {
	var sels []tabs.Selector
	for _, part := range strings.Split(list, ",") {
		key := strings.ToLower(strings.TrimSpace(part))
		if key == "" {
			continue
		}
		if !tabs.Known(key) {
			return nil, errdef.New(errdef.CodeConfig, "unknown tab %q", key)
		}
		sels = append(sels, tabs.Use(key))
	}
	if len(sels) == 0 {
		return nil, errdef.New(errdef.CodeConfig, "no tabs given")
	}
	return sels, nil
}

func findRow(wf *waterfall.Waterfall, id int) (*waterfall.Row, error) {
	for _, row := range wf.Rows {
		if row.Input.RequestID == id {
			return row, nil
		}
	}
	return nil, errdef.New(errdef.CodeConfig, "request #%d not found (%d requests)", id, len(wf.Rows))
}

func printEntry(w io.Writer, wf *waterfall.Waterfall, id int, format string, panelHeight, width int) error {
	row, err := findRow(wf, id)
	if err != nil {
		return err
	}
	d := view.Details{
		RequestID:   row.Input.RequestID,
		URL:         row.Entry.Request.URL,
		RequestType: row.Input.RequestType,
		PanelHeight: panelHeight,
		Tabs:        row.Tabs(),
	}

	switch format {
	case formatHTML:
		return view.WriteHTML(w, d)
	case formatPage:
		return view.WriteHTMLPage(w, d)
	case formatTerm, formatPlain:
	default:
		return errdef.New(errdef.CodeConfig, "unknown format %q", format)
	}

	th := theme.DefaultTheme()
	r := view.NewTerminal(th, width)
	if format == formatPlain {
		r = view.NewPlain(th, width)
	}
	fmt.Fprintf(w, "#%d %s\n", d.RequestID, d.URL)
	for _, tab := range d.Tabs {
		out, err := r.RenderTab(tab, panelHeight)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n== %s ==\n%s\n", tab.Title, out)
	}
	return nil
}

// applyPanelHeight lets the -height flag override settings.
func applyPanelHeight(r *config.Resolved, flagHeight int) {
	if flagHeight > 0 {
		r.PanelHeight = flagHeight
		r.PanelHeightSet = true
	}
}

// viewerPanelHeight is the height the viewer hands to tab renderers. Zero
// lets the viewer derive it from its viewport.
func viewerPanelHeight(r config.Resolved) int {
	if r.PanelHeightSet {
		return r.PanelHeight
	}
	return 0
}

func newViewerModel(wf *waterfall.Waterfall, title string, panelHeight int) ui.Model {
	th := theme.DefaultTheme()
	return ui.New(ui.Config{
		Waterfall:   wf,
		Theme:       &th,
		Title:       title,
		PanelHeight: panelHeight,
	})
}

func runViewer(wf *waterfall.Waterfall, title string, panelHeight int, debugLog string) error {
	if debugLog != "" {
		f, err := tea.LogToFile(debugLog, "harview")
		if err != nil {
			return errdef.Wrap(errdef.CodeFilesystem, err, "open debug log")
		}
		defer f.Close()
	}
	program := tea.NewProgram(newViewerModel(wf, title, panelHeight), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return errdef.Wrap(errdef.CodeUI, err, "run viewer")
	}
	return nil
}
