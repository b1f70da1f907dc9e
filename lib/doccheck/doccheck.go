// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package doccheck cross-references the documentation against the
// source registries it documents. The docs name configuration keys,
// manifest keys, and key bindings as inline code spans; each checked
// section must name exactly the entries the corresponding registry
// exports. Drift in either direction is reported as an issue, as are
// relative links to files that do not exist.
package doccheck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Issue is one documentation inconsistency.
type Issue struct {
	File    string
	Section string
	Detail  string
}

func (issue Issue) String() string {
	if issue.Section == "" {
		return fmt.Sprintf("%s: %s", issue.File, issue.Detail)
	}
	return fmt.Sprintf("%s: section %q: %s", issue.File, issue.Section, issue.Detail)
}

// Registry pairs a documentation section with the source-derived
// entries it must list.
type Registry struct {
	// Name identifies the registry in issue output, for example
	// "configuration keys".
	Name string

	// Section is the heading text that scopes the check. Code spans
	// under other headings are ignored.
	Section string

	// Entries are the names exported by the source.
	Entries []string
}

// CollectCodeSpans parses a markdown document and returns the inline
// code span texts grouped by the heading they appear under. Spans
// before the first heading group under the empty string.
func CollectCodeSpans(source []byte) map[string][]string {
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	spans := make(map[string][]string)
	currentHeading := ""

	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := node.(type) {
		case *ast.Heading:
			currentHeading = string(node.Text(source))
		case *ast.CodeSpan:
			spans[currentHeading] = append(spans[currentHeading], string(node.Text(source)))
		}
		return ast.WalkContinue, nil
	})
	return spans
}

// CheckRegistry compares the code spans in a document section
// against a registry. Every registry entry must be documented, and
// every documented span in that section must name a registry entry.
func CheckRegistry(file string, source []byte, registry Registry) []Issue {
	spans := CollectCodeSpans(source)
	documented, sectionFound := spans[registry.Section]
	if !sectionFound {
		return []Issue{{
			File:   file,
			Detail: fmt.Sprintf("missing section %q for %s", registry.Section, registry.Name),
		}}
	}

	documentedSet := make(map[string]bool, len(documented))
	for _, span := range documented {
		documentedSet[span] = true
	}
	knownSet := make(map[string]bool, len(registry.Entries))
	for _, entry := range registry.Entries {
		knownSet[entry] = true
	}

	var issues []Issue
	for _, entry := range sorted(registry.Entries) {
		if !documentedSet[entry] {
			issues = append(issues, Issue{
				File:    file,
				Section: registry.Section,
				Detail:  fmt.Sprintf("%s %q is not documented", registry.Name, entry),
			})
		}
	}
	for _, span := range sorted(documented) {
		if !knownSet[span] {
			issues = append(issues, Issue{
				File:    file,
				Section: registry.Section,
				Detail:  fmt.Sprintf("documented %s %q does not exist in the source", registry.Name, span),
			})
		}
	}
	return issues
}

// CheckLinks verifies that every relative link in a document points
// to an existing file. Absolute URLs and intra-document fragment
// links are skipped.
func CheckLinks(file string, source []byte, baseDir string) []Issue {
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var issues []Issue
	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := node.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		destination := string(link.Destination)
		if destination == "" ||
			strings.Contains(destination, "://") ||
			strings.HasPrefix(destination, "#") ||
			strings.HasPrefix(destination, "mailto:") {
			return ast.WalkContinue, nil
		}

		// Strip a fragment before resolving.
		if index := strings.IndexByte(destination, '#'); index >= 0 {
			destination = destination[:index]
		}

		target := filepath.Join(baseDir, destination)
		if _, err := os.Stat(target); err != nil {
			issues = append(issues, Issue{
				File:   file,
				Detail: fmt.Sprintf("link target %q does not exist", destination),
			})
		}
		return ast.WalkContinue, nil
	})
	return issues
}

// CheckFile runs the registry checks scoped to a file plus the link
// check. Registries whose section does not belong to this file
// should not be passed.
func CheckFile(path string, registries []Registry) ([]Issue, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var issues []Issue
	for _, registry := range registries {
		issues = append(issues, CheckRegistry(path, source, registry)...)
	}
	issues = append(issues, CheckLinks(path, source, filepath.Dir(path))...)
	return issues, nil
}

func sorted(values []string) []string {
	result := make([]string, len(values))
	copy(result, values)
	sort.Strings(result)
	return result
}
