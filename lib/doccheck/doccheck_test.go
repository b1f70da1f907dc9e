// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package doccheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `# Guide

Intro text with ` + "`stray`" + ` span.

## Configuration keys

- ` + "`gallery_dir`" + ` sets the image directory.
- ` + "`cache_dir`" + ` sets the cache directory.

## Other section

Mentions ` + "`unrelated`" + ` things.
`

func TestCollectCodeSpansGroupsByHeading(t *testing.T) {
	spans := CollectCodeSpans([]byte(sampleDoc))

	configSpans := spans["Configuration keys"]
	if len(configSpans) != 2 || configSpans[0] != "gallery_dir" || configSpans[1] != "cache_dir" {
		t.Errorf("configuration spans = %v", configSpans)
	}
	if len(spans["Other section"]) != 1 {
		t.Errorf("other section spans = %v", spans["Other section"])
	}
}

func TestCheckRegistryClean(t *testing.T) {
	registry := Registry{
		Name:    "configuration key",
		Section: "Configuration keys",
		Entries: []string{"gallery_dir", "cache_dir"},
	}
	if issues := CheckRegistry("doc.md", []byte(sampleDoc), registry); len(issues) != 0 {
		t.Errorf("clean doc produced issues: %v", issues)
	}
}

func TestCheckRegistryReportsDriftBothWays(t *testing.T) {
	registry := Registry{
		Name:    "configuration key",
		Section: "Configuration keys",
		Entries: []string{"gallery_dir", "log_level"},
	}
	issues := CheckRegistry("doc.md", []byte(sampleDoc), registry)
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(issues), issues)
	}

	var undocumented, phantom bool
	for _, issue := range issues {
		if strings.Contains(issue.Detail, `"log_level" is not documented`) {
			undocumented = true
		}
		if strings.Contains(issue.Detail, `"cache_dir" does not exist`) {
			phantom = true
		}
	}
	if !undocumented {
		t.Error("missing-documentation issue not reported")
	}
	if !phantom {
		t.Error("phantom-entry issue not reported")
	}
}

func TestCheckRegistryMissingSection(t *testing.T) {
	registry := Registry{Name: "key binding", Section: "Key bindings", Entries: []string{"q"}}
	issues := CheckRegistry("doc.md", []byte(sampleDoc), registry)
	if len(issues) != 1 || !strings.Contains(issues[0].Detail, "missing section") {
		t.Errorf("issues = %v", issues)
	}
}

func TestCheckLinks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "exists.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := []byte("[good](exists.md) [section](exists.md#part) [web](https://example.com) [bad](missing.md) [frag](#local)")
	issues := CheckLinks("doc.md", doc, dir)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %v", len(issues), issues)
	}
	if !strings.Contains(issues[0].Detail, `"missing.md"`) {
		t.Errorf("issue = %v", issues[0])
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := Registry{
		Name:    "configuration key",
		Section: "Configuration keys",
		Entries: []string{"gallery_dir", "cache_dir"},
	}
	issues, err := CheckFile(path, []Registry{registry})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}

	if _, err := CheckFile(filepath.Join(dir, "absent.md"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}
