package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/harview/internal/config"
)

func handleInitSubcommand(args []string) (bool, error) {
	if len(args) == 0 || args[0] != "init" {
		return false, nil
	}
	return true, runInit(args[1:], os.Stdout)
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: harview init [flags]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.SetOutput(os.Stderr)
		fs.PrintDefaults()
	}

	var (
		dir    string
		format string
		force  bool
	)
	fs.StringVar(&dir, "dir", config.Dir(), "Target directory")
	fs.StringVar(&format, "format", string(config.SettingsFormatTOML), "Settings format: toml or yaml")
	fs.BoolVar(&force, "force", false, "Overwrite an existing settings file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return nil
		}
		return err
	}

	f := config.SettingsFormat(format)
	if f != config.SettingsFormatTOML && f != config.SettingsFormatYAML {
		return fmt.Errorf("unsupported format %q", format)
	}
	handle := config.SettingsHandle{Path: filepath.Join(dir, "settings."+format), Format: f}
	if _, err := os.Stat(handle.Path); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", handle.Path)
	}
	if err := config.SaveSettings(handle, config.DefaultSettings()); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", handle.Path)
	return nil
}
