// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// captionParser is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	captionParser     goldmark.Markdown
	captionParserOnce sync.Once
)

func getCaptionParser() goldmark.Markdown {
	captionParserOnce.Do(func() {
		captionParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return captionParser
}

// RenderMarkdown parses markdown and renders it as styled terminal
// text wrapped to the given width. Captions in gallery manifests are
// markdown; this renderer covers the subset that makes sense in a
// caption pane: paragraphs, headings, emphasis, inline code, fenced
// code blocks (chroma-highlighted), lists, and block quotes. Soft
// line breaks reflow; everything is wrapped ANSI-aware.
func RenderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	source := []byte(input)
	document := getCaptionParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: caption output always targets the
	// bubbletea display, so auto-detection (which sees no TTY under
	// tests) must be bypassed.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	walker := &captionWalker{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, walker.walk)
	walker.flushInline("")

	return strings.TrimRight(walker.output.String(), "\n")
}

// captionWalker accumulates inline content per block and flushes it
// word-wrapped when the block closes.
type captionWalker struct {
	source      []byte
	theme       Theme
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	// Inline style nesting counters. Counters rather than booleans
	// so nested emphasis closes correctly.
	boldDepth   int
	italicDepth int
	strikeDepth int
	linkDepth   int

	// Ordered-list numbering per nesting level.
	listCounters []int
	listOrdered  []bool

	blockquoteDepth int
}

func (walker *captionWalker) style() lipgloss.Style {
	style := walker.lipRenderer.NewStyle().Foreground(walker.theme.NormalText)
	if walker.boldDepth > 0 {
		style = style.Bold(true)
	}
	if walker.italicDepth > 0 {
		style = style.Italic(true)
	}
	if walker.strikeDepth > 0 {
		style = style.Strikethrough(true)
	}
	if walker.linkDepth > 0 {
		style = style.Foreground(walker.theme.AccentColor).Underline(true)
	}
	return style
}

// linePrefix returns the prefix for every emitted line at the current
// blockquote depth.
func (walker *captionWalker) linePrefix() string {
	if walker.blockquoteDepth == 0 {
		return ""
	}
	prefix := strings.Repeat("│ ", walker.blockquoteDepth)
	return walker.lipRenderer.NewStyle().Foreground(walker.theme.BorderColor).Render(prefix)
}

// flushInline word-wraps the accumulated inline content and appends
// it to the output. The bullet, when non-empty, replaces the line
// prefix on the first emitted line (list items).
func (walker *captionWalker) flushInline(bullet string) {
	content := walker.inline.String()
	walker.inline.Reset()
	if content == "" {
		return
	}

	wrapWidth := walker.width - walker.blockquoteDepth*2 - ansi.StringWidth(bullet)
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	wrapped := ansi.Wordwrap(content, wrapWidth, " ")
	for index, line := range strings.Split(wrapped, "\n") {
		walker.output.WriteString(walker.linePrefix())
		if bullet != "" {
			if index == 0 {
				walker.output.WriteString(bullet)
			} else {
				walker.output.WriteString(strings.Repeat(" ", ansi.StringWidth(bullet)))
			}
		}
		walker.output.WriteString(line)
		walker.output.WriteString("\n")
	}
}

func (walker *captionWalker) blankLine() {
	if walker.output.Len() > 0 {
		walker.output.WriteString("\n")
	}
}

func (walker *captionWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {
	case *ast.Heading:
		if entering {
			walker.blankLine()
			walker.boldDepth++
		} else {
			walker.boldDepth--
			walker.flushInline("")
		}

	case *ast.Paragraph:
		if !entering {
			walker.flushInline(walker.pendingBullet(typed))
			walker.blankLineUnlessTight(typed)
		}

	case *ast.TextBlock:
		// Tight list items carry TextBlocks instead of Paragraphs.
		if !entering {
			walker.flushInline(walker.pendingBullet(typed))
		}

	case *ast.Text:
		if entering {
			walker.inline.WriteString(walker.style().Render(string(typed.Segment.Value(walker.source))))
			if typed.SoftLineBreak() {
				walker.inline.WriteString(" ")
			}
			if typed.HardLineBreak() {
				walker.inline.WriteString("\n")
			}
		}

	case *ast.Emphasis:
		if typed.Level >= 2 {
			if entering {
				walker.boldDepth++
			} else {
				walker.boldDepth--
			}
		} else {
			if entering {
				walker.italicDepth++
			} else {
				walker.italicDepth--
			}
		}

	case *ast.CodeSpan:
		if entering {
			codeStyle := walker.lipRenderer.NewStyle().
				Foreground(walker.theme.AccentColor)
			walker.inline.WriteString(codeStyle.Render(string(typed.Text(walker.source))))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if entering {
			walker.linkDepth++
		} else {
			walker.linkDepth--
		}

	case *ast.AutoLink:
		if entering {
			linkStyle := walker.lipRenderer.NewStyle().
				Foreground(walker.theme.AccentColor).Underline(true)
			walker.inline.WriteString(linkStyle.Render(string(typed.URL(walker.source))))
			return ast.WalkSkipChildren, nil
		}

	case *ast.FencedCodeBlock:
		if entering {
			walker.blankLine()
			walker.writeCodeBlock(typed)
			return ast.WalkSkipChildren, nil
		}

	case *ast.List:
		if entering {
			walker.listOrdered = append(walker.listOrdered, typed.IsOrdered())
			walker.listCounters = append(walker.listCounters, typed.Start)
		} else {
			walker.listOrdered = walker.listOrdered[:len(walker.listOrdered)-1]
			walker.listCounters = walker.listCounters[:len(walker.listCounters)-1]
			walker.blankLine()
		}

	case *ast.Blockquote:
		if entering {
			walker.blankLine()
			walker.blockquoteDepth++
		} else {
			walker.blockquoteDepth--
		}

	case *ast.ThematicBreak:
		if entering {
			walker.blankLine()
			rule := walker.lipRenderer.NewStyle().
				Foreground(walker.theme.BorderColor).
				Render(strings.Repeat("─", walker.width))
			walker.output.WriteString(rule + "\n")
		}
	}

	return ast.WalkContinue, nil
}

// pendingBullet returns the bullet string when the flushed block is
// the first child of a list item, and advances the ordered counter.
func (walker *captionWalker) pendingBullet(block ast.Node) string {
	parent := block.Parent()
	if parent == nil || parent.Kind() != ast.KindListItem {
		return ""
	}
	if parent.FirstChild() != block {
		return ""
	}
	depth := len(walker.listOrdered)
	if depth == 0 {
		return "• "
	}
	indent := strings.Repeat("  ", depth-1)
	if walker.listOrdered[depth-1] {
		number := walker.listCounters[depth-1]
		walker.listCounters[depth-1]++
		bulletStyle := walker.lipRenderer.NewStyle().Foreground(walker.theme.FaintText)
		return indent + bulletStyle.Render(strconv.Itoa(number)+". ")
	}
	return indent + "• "
}

func (walker *captionWalker) blankLineUnlessTight(paragraph *ast.Paragraph) {
	parent := paragraph.Parent()
	if parent != nil && parent.Kind() == ast.KindListItem {
		return
	}
	walker.blankLine()
}

// writeCodeBlock renders a fenced code block, chroma-highlighted when
// the language is known, indented two spaces.
func (walker *captionWalker) writeCodeBlock(block *ast.FencedCodeBlock) {
	var code strings.Builder
	lines := block.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(walker.source))
	}

	language := string(block.Language(walker.source))
	var highlighted strings.Builder
	err := quick.Highlight(&highlighted, code.String(), language, "terminal256", "monokai")
	rendered := highlighted.String()
	if err != nil || language == "" {
		rendered = walker.lipRenderer.NewStyle().
			Foreground(walker.theme.FaintText).
			Render(code.String())
	}

	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		walker.output.WriteString(walker.linePrefix())
		walker.output.WriteString("  " + line + "\n")
	}
}
