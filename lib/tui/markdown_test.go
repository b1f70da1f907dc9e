// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// plain renders markdown and strips all ANSI styling, leaving just
// the text layout for assertions.
func plain(input string, width int) string {
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", DefaultTheme, 60); got != "" {
		t.Errorf("empty input should render empty, got %q", got)
	}
	if got := RenderMarkdown("   \n  ", DefaultTheme, 60); got != "" {
		t.Errorf("whitespace input should render empty, got %q", got)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// Hard-wrapped source text: the soft line break becomes a space
	// and the paragraph reflows at the render width.
	input := "shot on the pier\njust before the storm rolled in"
	got := plain(input, 80)
	if strings.Count(got, "\n") != 0 {
		t.Errorf("paragraph should reflow to one line at width 80, got %q", got)
	}
	if !strings.Contains(got, "pier just") {
		t.Errorf("soft break should become a space, got %q", got)
	}
}

func TestRenderMarkdownWraps(t *testing.T) {
	input := "a long caption describing the conditions under which this photograph was taken"
	got := plain(input, 30)
	for index, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 30 {
			t.Errorf("line %d exceeds width 30: %q", index, line)
		}
	}
}

func TestRenderMarkdownInlineCode(t *testing.T) {
	got := plain("processed with `darktable`", 60)
	if !strings.Contains(got, "darktable") {
		t.Errorf("code span text missing from output: %q", got)
	}
}

func TestRenderMarkdownList(t *testing.T) {
	input := "- one\n- two\n- three"
	got := plain(input, 60)
	if strings.Count(got, "•") != 3 {
		t.Errorf("expected 3 bullets, got %q", got)
	}
}

func TestRenderMarkdownOrderedList(t *testing.T) {
	input := "1. first\n2. second"
	got := plain(input, 60)
	if !strings.Contains(got, "1. first") || !strings.Contains(got, "2. second") {
		t.Errorf("ordered list numbering missing: %q", got)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	got := plain("> a quoted line", 60)
	if !strings.Contains(got, "│ ") {
		t.Errorf("blockquote prefix missing: %q", got)
	}
	if !strings.Contains(got, "a quoted line") {
		t.Errorf("blockquote text missing: %q", got)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	input := "```go\nfmt.Println(\"hi\")\n```"
	got := plain(input, 60)
	if !strings.Contains(got, "fmt.Println") {
		t.Errorf("code block content missing: %q", got)
	}
}

func TestRenderMarkdownNoTrailingNewline(t *testing.T) {
	got := RenderMarkdown("plain text", DefaultTheme, 60)
	if strings.HasSuffix(got, "\n") {
		t.Errorf("output should not end with newline, got %q", got)
	}
}
