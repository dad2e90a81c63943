package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/harview/internal/errdef"
)

type SettingsFormat string

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatYAML SettingsFormat = "yaml"
)

const settingsBase = "settings"

// Settings is the on-disk configuration. Tab lists hold bare keys or
// tables with use, label and is_network.
type Settings struct {
	Tabs         []any            `toml:"tabs,omitempty" yaml:"tabs,omitempty"`
	TypeTabs     map[string][]any `toml:"type_tabs,omitempty" yaml:"type_tabs,omitempty"`
	GeneralHide  []string         `toml:"general_hide,omitempty" yaml:"general_hide,omitempty"`
	ReduceScript string           `toml:"reduce_script,omitempty" yaml:"reduce_script,omitempty"`
	PanelHeight  int              `toml:"panel_height,omitempty" yaml:"panel_height,omitempty"`
}

// SettingsHandle records where settings came from so they can be saved
// back in the same format.
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

// LoadSettings reads settings.toml, settings.yaml or settings.yml from Dir,
// in that order. A missing file yields zero settings and a TOML handle.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()
	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, settingsBase+".toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, settingsBase+".yaml"), Format: SettingsFormatYAML},
		{Path: filepath.Join(dir, settingsBase+".yml"), Format: SettingsFormatYAML},
	}
	for _, h := range candidates {
		s, err := readSettings(h)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return s, h, err
	}
	return Settings{}, candidates[0], nil
}

// LoadSettingsFile reads an explicit settings file; the format follows
// the extension.
func LoadSettingsFile(path string) (Settings, SettingsHandle, error) {
	h := SettingsHandle{Path: path, Format: FormatForPath(path)}
	s, err := readSettings(h)
	return s, h, err
}

// FormatForPath picks YAML for .yaml/.yml and TOML otherwise.
func FormatForPath(path string) SettingsFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SettingsFormatYAML
	default:
		return SettingsFormatTOML
	}
}

func readSettings(h SettingsHandle) (Settings, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
		return Settings{}, errdef.Wrap(errdef.CodeFilesystem, err, "read settings %s", h.Path)
	}
	s, err := DecodeSettings(data, h.Format)
	if err != nil {
		return Settings{}, errdef.Wrap(errdef.CodeConfig, err, "settings %s", h.Path)
	}
	return s, nil
}

// DecodeSettings parses data in the given format.
func DecodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	var s Settings
	switch format {
	case SettingsFormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, errdef.Wrap(errdef.CodeConfig, err, "decode toml")
		}
	case SettingsFormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, errdef.Wrap(errdef.CodeConfig, err, "decode yaml")
		}
	default:
		return Settings{}, errdef.New(errdef.CodeConfig, "unsupported settings format %q", format)
	}
	return s, nil
}

// EncodeSettings renders s in the given format.
func EncodeSettings(s Settings, format SettingsFormat) ([]byte, error) {
	switch format {
	case SettingsFormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(s); err != nil {
			return nil, errdef.Wrap(errdef.CodeConfig, err, "encode toml")
		}
		return buf.Bytes(), nil
	case SettingsFormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, errdef.Wrap(errdef.CodeConfig, err, "encode yaml")
		}
		return data, nil
	default:
		return nil, errdef.New(errdef.CodeConfig, "unsupported settings format %q", format)
	}
}

// SaveSettings writes s to h.Path, creating the directory if needed.
func SaveSettings(h SettingsHandle, s Settings) error {
	data, err := EncodeSettings(s, h.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(h.Path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create settings dir")
	}
	if err := os.WriteFile(h.Path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write settings %s", h.Path)
	}
	return nil
}

// DefaultSettings lists the built-in tab order explicitly, as written by
// harview init.
func DefaultSettings() Settings {
	return Settings{
		Tabs:        []any{"general", "request", "response", "timings", "raw", "image", "content"},
		PanelHeight: DefaultPanelHeight,
	}
}
