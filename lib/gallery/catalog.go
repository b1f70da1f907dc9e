// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultManifestName is the manifest filename looked up inside the
// gallery directory when no explicit --manifest path is given.
const DefaultManifestName = "gallery.yaml"

// Catalog is an ordered, immutable snapshot of gallery items.
// Insertion order is manifest order for items the manifest names,
// followed by remaining image files in name order. Index positions in
// the catalog are the shared coordinate system between the gallery
// list and the lightbox.
type Catalog struct {
	// Title is the manifest title, shown in the gallery header.
	Title string

	// Items in display order.
	Items []Item
}

// Len returns the number of items.
func (catalog Catalog) Len() int { return len(catalog.Items) }

// manifestFile is the YAML schema of gallery.yaml.
type manifestFile struct {
	Title string         `yaml:"title"`
	Items []manifestItem `yaml:"items"`
}

// manifestItem is one entry in the manifest's items list. File is
// relative to the gallery directory; full and link may be relative or
// absolute.
type manifestItem struct {
	File    string   `yaml:"file"`
	Full    string   `yaml:"full,omitempty"`
	Link    string   `yaml:"link,omitempty"`
	Caption string   `yaml:"caption,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
}

// imageExtensions are the display formats the catalog recognizes when
// scanning the gallery directory.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Load hydrates a Catalog from a directory of images plus an optional
// YAML manifest. When manifestPath is empty, <dir>/gallery.yaml is
// used if it exists; a missing default manifest is not an error. A
// missing explicit manifestPath is.
//
// Manifest entries whose file does not exist on disk are skipped
// (the manifest may be ahead of the image sync). Image files absent
// from the manifest are appended with zero-value metadata, in name
// order, so a manifest-less directory still produces a usable
// catalog.
func Load(dir, manifestPath string) (Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Catalog{}, fmt.Errorf("gallery directory: %w", err)
	}
	if !info.IsDir() {
		return Catalog{}, fmt.Errorf("gallery path %s is not a directory", dir)
	}

	manifest, err := loadManifest(dir, manifestPath)
	if err != nil {
		return Catalog{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading gallery directory: %w", err)
	}

	onDisk := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			onDisk[entry.Name()] = true
		}
	}

	catalog := Catalog{Title: manifest.Title}
	claimed := make(map[string]bool)

	// Manifest order first.
	for _, entry := range manifest.Items {
		if entry.File == "" || !onDisk[entry.File] {
			continue
		}
		claimed[entry.File] = true
		catalog.Items = append(catalog.Items, Item{
			Name:     entry.File,
			Path:     filepath.Join(dir, entry.File),
			FullPath: resolveManifestPath(dir, entry.Full),
			LinkPath: resolveManifestPath(dir, entry.Link),
			Caption:  entry.Caption,
			Tags:     entry.Tags,
		})
	}

	// Then unclaimed files in name order.
	var remaining []string
	for name := range onDisk {
		if !claimed[name] {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(remaining)
	for _, name := range remaining {
		catalog.Items = append(catalog.Items, Item{
			Name: name,
			Path: filepath.Join(dir, name),
		})
	}

	return catalog, nil
}

// loadManifest reads and parses the manifest. See Load for the
// missing-file policy.
func loadManifest(dir, manifestPath string) (manifestFile, error) {
	explicit := manifestPath != ""
	if !explicit {
		manifestPath = filepath.Join(dir, DefaultManifestName)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return manifestFile{}, nil
		}
		return manifestFile{}, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest manifestFile
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return manifestFile{}, fmt.Errorf("%s: %w", manifestPath, err)
	}
	return manifest, nil
}

// resolveManifestPath makes a manifest-relative path absolute against
// the gallery directory. Absolute paths and URLs pass through; empty
// stays empty.
func resolveManifestPath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}
	return filepath.Join(dir, path)
}

// ManifestKeys returns the YAML keys of the manifest schema, in
// declaration order. This is the documented compatibility surface
// checked by lumen-doccheck against docs/.
func ManifestKeys() []string {
	var keys []string
	for _, structType := range []reflect.Type{
		reflect.TypeOf(manifestFile{}),
		reflect.TypeOf(manifestItem{}),
	} {
		for index := 0; index < structType.NumField(); index++ {
			tag := structType.Field(index).Tag.Get("yaml")
			if tag == "" {
				continue
			}
			keys = append(keys, strings.Split(tag, ",")[0])
		}
	}
	return keys
}
