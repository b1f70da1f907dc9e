// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information for Lumen binaries.
//
// The release version is stamped via -ldflags:
//
//	go build -ldflags "-X github.com/lumen-gallery/lumen/lib/version.Version=1.2.0"
//
// Commit metadata comes from the Go toolchain's embedded VCS info, so
// plain `go build` inside a git checkout produces a usable version line
// without any ldflags at all.
package version

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Version is the semantic version, stamped at release time. Development
// builds keep the default.
var Version = "0.1.0-dev"

// commit returns the short VCS revision of the build, with a "-dirty"
// suffix when the working tree had local modifications. Returns
// "unknown" for builds outside a checkout (including `go install` of a
// module version, where the module version itself is the identity).
func commit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	revision := ""
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "unknown"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}

// Line returns the one-line version string used by --version output.
func Line() string {
	return fmt.Sprintf("%s (%s)", Version, commit())
}

// Print writes the binary name and version line to stdout.
func Print(binaryName string) {
	fmt.Fprintf(os.Stdout, "%s %s\n", binaryName, Line())
}
