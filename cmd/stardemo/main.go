// Command stardemo renders the ggstar star into a window backend.
//
// With no -window flag the best available backend is used: the terminal
// when stdout is a TTY, otherwise an off-screen memory window. Pass -dump
// to keep every frame as a BMP file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/ggstar"
	"github.com/gogpu/ggstar/window"
	_ "github.com/gogpu/ggstar/window/termwin"
)

// keyWaiter is implemented by interactive windows.
type keyWaiter interface {
	WaitKey() *tcell.EventKey
}

func main() {
	err := run(os.Args[1:], os.Stderr)
	if code := exitCode(err); code != 0 {
		slog.Error("stardemo failed", "error", err)
		os.Exit(code)
	}
}

// exitCode maps run's error to a process status. Asking for help is not
// a failure.
func exitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	ggstar.SetLogger(logger)
	defer ggstar.SetLogger(nil)

	opts, err := cfg.options()
	if err != nil {
		return err
	}

	win, err := openWindow(cfg)
	if err != nil {
		return err
	}

	// Interactive backends choose their own size.
	width, height := win.Geometry()
	slog.Info("window opened", "backend", backendName(cfg), "width", width, "height", height)

	core := ggstar.NewCore(opts...)
	if err := core.Init(win, width, height); err != nil {
		return errors.Join(err, win.Close())
	}

	if err := render(core, cfg); err != nil {
		return errors.Join(err, core.Release())
	}

	if w, ok := win.(keyWaiter); ok {
		w.WaitKey()
	}

	if err := core.Release(); err != nil {
		return err
	}
	if cfg.Dump != "" {
		slog.Info("frames dumped", "dir", cfg.Dump)
	}
	return nil
}

// parseFlags loads the optional YAML file and applies the flags that were
// set explicitly on top of it.
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("stardemo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := defaultConfig()
	var (
		width      = fs.Int("width", def.Width, "viewport width")
		height     = fs.Int("height", def.Height, "viewport height")
		backend    = fs.String("window", "", "window backend (default: best available)")
		dump       = fs.String("dump", "", "directory for dumpNN.bmp frames")
		frames     = fs.Int("frames", def.Frames, "number of frames to draw")
		change     = fs.Bool("change", false, "redraw in the change color after the last frame")
		configPath = fs.String("config", "", "YAML config file")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "window":
			cfg.Window = *backend
		case "dump":
			cfg.Dump = *dump
		case "frames":
			cfg.Frames = *frames
		case "change":
			cfg.Change = *change
		case "v":
			cfg.Verbose = *verbose
		}
	})

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Frames < 0 {
		return Config{}, fmt.Errorf("invalid frame count %d", cfg.Frames)
	}
	return cfg, nil
}

func openWindow(cfg Config) (window.Window, error) {
	opts := window.Options{Width: cfg.Width, Height: cfg.Height, Title: "stardemo"}
	if cfg.Window == "" {
		return window.New(opts)
	}
	return window.NewByName(cfg.Window, opts)
}

func backendName(cfg Config) string {
	if cfg.Window != "" {
		return cfg.Window
	}
	if names := window.Available(); len(names) > 0 {
		return names[0]
	}
	return "none"
}

func render(core *ggstar.Core, cfg Config) error {
	for i := 0; i < cfg.Frames; i++ {
		if err := core.Draw(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	if !cfg.Change {
		return nil
	}
	changed, err := core.ChangeColor()
	if err != nil {
		return fmt.Errorf("change color: %w", err)
	}
	if !changed {
		slog.Warn("change color skipped, nothing drawn yet")
	}
	return nil
}
