package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggstar"
)

// maxConfigSize bounds the YAML file read by loadConfig.
const maxConfigSize = 1 << 20

// Config holds the demo settings. Every field can come from the YAML file
// given with -config; flags set on the command line win.
type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Window     string `yaml:"window"`
	Dump       string `yaml:"dump"`
	DumpPrefix string `yaml:"dump_prefix"`
	Frames     int    `yaml:"frames"`
	Change     bool   `yaml:"change"`
	Verbose    bool   `yaml:"verbose"`
	Colors     Colors `yaml:"colors"`
}

// Colors overrides the frame colors. Values are hex strings such as
// "#7E8FFB"; empty keeps the default.
type Colors struct {
	Clear      string `yaml:"clear"`
	Background string `yaml:"background"`
	Draw       string `yaml:"draw"`
	Change     string `yaml:"change"`
}

func defaultConfig() Config {
	return Config{
		Width:  480,
		Height: 480,
		Frames: 1,
	}
}

// loadConfig reads path over the defaults. A missing file is an error,
// the caller asked for it explicitly.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		return cfg, err
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s: too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	slog.Debug("loaded config", "path", path, "size", info.Size())
	return cfg, nil
}

// options converts the configured colors and dump settings to core options.
func (c Config) options() ([]ggstar.Option, error) {
	var opts []ggstar.Option

	colors := []struct {
		name  string
		value string
		apply func(ggstar.RGBA) ggstar.Option
	}{
		{"clear", c.Colors.Clear, ggstar.WithClearColor},
		{"background", c.Colors.Background, ggstar.WithBackgroundColor},
		{"draw", c.Colors.Draw, ggstar.WithDrawColor},
		{"change", c.Colors.Change, ggstar.WithChangeColor},
	}
	for _, col := range colors {
		if col.value == "" {
			continue
		}
		if !validHex(col.value) {
			return nil, fmt.Errorf("color %s: invalid hex %q", col.name, col.value)
		}
		opts = append(opts, col.apply(ggstar.Hex(col.value)))
	}

	if c.Dump != "" {
		opts = append(opts, ggstar.WithDump(c.Dump, c.DumpPrefix))
	}
	return opts, nil
}

func validHex(s string) bool {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
