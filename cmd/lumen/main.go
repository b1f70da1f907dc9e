// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// lumen is a terminal image gallery: a filterable grid of images
// with a modal viewer. It reads a directory of images, optionally
// described by a gallery.yaml manifest, and watches the manifest for
// changes while running.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/lumen-gallery/lumen/lib/cli"
	"github.com/lumen-gallery/lumen/lib/config"
	"github.com/lumen-gallery/lumen/lib/frame"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/galleryui"
	"github.com/lumen-gallery/lumen/lib/tui"
	"github.com/lumen-gallery/lumen/lib/version"
)

// defaultCacheEntries bounds the in-memory frame cache when the
// config does not say otherwise.
const defaultCacheEntries = 128

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var galleryDir string
	var manifestPath string
	var configPath string
	var initialFilter string
	var cacheDir string
	var logOutput string
	var noRestore bool
	var noWatch bool

	flagSet := pflag.NewFlagSet("lumen", pflag.ContinueOnError)
	flagSet.StringVar(&galleryDir, "dir", "", "gallery image directory (default: current directory)")
	flagSet.StringVar(&manifestPath, "manifest", "", "manifest path (default: gallery.yaml in the gallery directory)")
	flagSet.StringVar(&configPath, "config", "", "configuration file (JSONC)")
	flagSet.StringVar(&initialFilter, "filter", "", "initial filter query, e.g. '#landscape harbor'")
	flagSet.StringVar(&cacheDir, "cache-dir", "", "frame cache directory (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.BoolVar(&noRestore, "no-restore", false, "do not restore the previous filter state")
	flagSet.BoolVar(&noWatch, "no-watch", false, "do not watch the manifest for changes")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("lumen")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	configuration, err := config.Load(configPath)
	if err != nil {
		return cli.Validation("cannot load configuration: %w", err)
	}

	if galleryDir == "" {
		galleryDir = configuration.GalleryDir
	}
	if galleryDir == "" {
		galleryDir = "."
	}
	if manifestPath == "" {
		manifestPath = configuration.Manifest
	}
	if cacheDir == "" {
		cacheDir = configuration.CacheDir
	}

	catalog, err := gallery.Load(galleryDir, manifestPath)
	if err != nil {
		return cli.Validation("cannot load gallery from %s: %w", galleryDir, err).
			WithHint("Check that the directory exists and that the manifest, if given, is valid YAML.")
	}
	source := gallery.NewSource(catalog)

	if !noWatch {
		stop, watchErr := gallery.Watch(galleryDir, manifestPath, source)
		if watchErr != nil {
			slog.Debug("manifest watch unavailable", "error", watchErr)
		} else {
			defer stop()
		}
	}

	cache, err := buildCache(configuration, cacheDir)
	if err != nil {
		return cli.Validation("cannot initialize frame cache: %w", err)
	}

	statePath := ""
	if defaultState, stateErr := galleryui.DefaultStatePath(); stateErr == nil {
		statePath = defaultState
	}
	restore := configuration.RestoreFilter && !noRestore

	model := galleryui.NewModel(source, cache, tui.DefaultTheme, statePath, restore)
	if initialFilter != "" {
		model.SetFilter(initialFilter)
	}

	tuiHandler := galleryui.NewLogHandler(parseLogLevel(configuration.LogLevel))
	if logOutput != "" {
		fileHandler, closeFile, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer closeFile()
		slog.SetDefault(slog.New(fanoutHandler{tuiHandler, fileHandler}))
	} else {
		slog.SetDefault(slog.New(tuiHandler))
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// buildCache constructs the frame cache from configuration, with the
// command-line cache directory taking precedence.
func buildCache(configuration *config.Config, cacheDir string) (*frame.Cache, error) {
	maxEntries := configuration.CacheMaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}

	compression := frame.CompressionLZ4
	if configuration.CacheCompression != "" {
		parsed, err := frame.ParseCompressionTag(configuration.CacheCompression)
		if err != nil {
			return nil, err
		}
		compression = parsed
	}

	return frame.NewCache(maxEntries, cacheDir, compression)
}

// parseLogLevel maps the configured level name to a slog level,
// defaulting to warn so routine records stay out of the status bar.
func parseLogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// openFileLogHandler creates a JSON slog handler writing to the
// given path. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `lumen: terminal image gallery with a modal viewer.

Reads images from a directory, optionally ordered and captioned by a
gallery.yaml manifest. Navigate the grid with the arrow keys or
h/j/k/l, press / to filter by name, caption, or #tag, and Enter to
open the viewer. Inside the viewer, the arrow keys move between
images with wrap-around, Tab cycles the controls, and Escape closes.

Usage:
  lumen [flags]

Examples:
  # Browse the current directory
  lumen

  # Browse a photo archive with a manifest
  lumen --dir ~/photos --manifest ~/photos/gallery.yaml

  # Start filtered to a tag
  lumen --dir ~/photos --filter '#landscape'

Flags:
%s`, flagSet.FlagUsages())
}
