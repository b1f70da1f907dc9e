// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// lumen-doccheck verifies that the documentation matches the source:
// every configuration key, manifest key, and key binding the code
// exports must be documented, and everything documented must exist.
// Relative links in the checked documents must resolve. Run from the
// repository root, typically in CI.
//
// Exit codes: 0 when the docs are consistent, 1 when drift was
// found, 2 on an operational error such as a missing document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/lumen-gallery/lumen/lib/cli"
	"github.com/lumen-gallery/lumen/lib/config"
	"github.com/lumen-gallery/lumen/lib/doccheck"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/galleryui"
	"github.com/lumen-gallery/lumen/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// checkedFile binds a document to the registries it must list.
type checkedFile struct {
	path       string
	registries []doccheck.Registry
}

func run() error {
	var rootDir string

	flagSet := pflag.NewFlagSet("lumen-doccheck", pflag.ContinueOnError)
	flagSet.StringVar(&rootDir, "root", ".", "repository root containing docs/")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("lumen-doccheck")
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

	keyNames := galleryui.DefaultKeyMap.KeyNames()
	bindingKeys := make([]string, 0, len(keyNames))
	for name := range keyNames {
		bindingKeys = append(bindingKeys, name)
	}

	files := []checkedFile{
		{
			path: filepath.Join(rootDir, "docs", "configuration.md"),
			registries: []doccheck.Registry{{
				Name:    "configuration key",
				Section: "Configuration keys",
				Entries: config.Keys(),
			}},
		},
		{
			path: filepath.Join(rootDir, "docs", "manifest.md"),
			registries: []doccheck.Registry{{
				Name:    "manifest key",
				Section: "Manifest keys",
				Entries: gallery.ManifestKeys(),
			}},
		},
		{
			path: filepath.Join(rootDir, "docs", "keys.md"),
			registries: []doccheck.Registry{{
				Name:    "key binding",
				Section: "Key bindings",
				Entries: bindingKeys,
			}},
		},
		{path: filepath.Join(rootDir, "README.md")},
	}

	var total int
	for _, file := range files {
		issues, err := doccheck.CheckFile(file.path, file.registries)
		if err != nil {
			return cli.Internal("checking %s: %w", file.path, err)
		}
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue)
		}
		total += len(issues)
	}

	if total > 0 {
		fmt.Fprintf(os.Stderr, "%d documentation issue(s) found\n", total)
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `lumen-doccheck: documentation consistency checker.

Cross-references docs/ against the registries the source exports:
configuration keys, manifest keys, and key bindings. Also verifies
that relative links in the checked documents resolve.

Usage:
  lumen-doccheck [--root DIR]

Flags:
%s`, flagSet.FlagUsages())
}
