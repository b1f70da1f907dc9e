// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package galleryui

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/lumen-gallery/lumen/lib/frame"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/lightbox"
	"github.com/lumen-gallery/lumen/lib/tui"
)

func newTestModel(t *testing.T, items []gallery.Item) *Model {
	t.Helper()
	cache, err := frame.NewCache(8, "", frame.CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	source := gallery.NewSource(gallery.Catalog{Title: "Test", Items: items})
	model := NewModel(source, cache, tui.DefaultTheme, "", false)
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return model
}

func TestOpenRequestOpensViewerAndRoutesFocus(t *testing.T) {
	model := newTestModel(t, testItems())

	model.Update(lightbox.OpenRequestMsg{Index: 1})
	if !model.viewer.IsOpen() {
		t.Fatal("open request did not open the viewer")
	}
	if model.focus != FocusLightbox {
		t.Errorf("focus = %v, want lightbox", model.focus)
	}

	// Escape is routed to the viewer, which closes and hands focus
	// back to the grid.
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.viewer.IsOpen() {
		t.Error("escape did not close the viewer")
	}
	if model.focus != FocusGrid {
		t.Errorf("focus = %v after close, want grid", model.focus)
	}
}

func TestOpenRequestOnEmptyCatalogIsNoop(t *testing.T) {
	model := newTestModel(t, nil)

	model.Update(lightbox.OpenRequestMsg{Index: 0})
	if model.viewer.IsOpen() {
		t.Error("viewer opened with an empty catalog")
	}
	if model.focus != FocusGrid {
		t.Errorf("focus = %v, want grid", model.focus)
	}
	if model.focusMemory.Pending() {
		t.Error("declined open left a parked focus region")
	}
}

func TestEnterEmitsOpenRequestForSelectedCard(t *testing.T) {
	model := newTestModel(t, testItems())
	model.moveCursor(1)

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if command == nil {
		t.Fatal("enter produced no command")
	}
	message := command()
	request, ok := message.(lightbox.OpenRequestMsg)
	if !ok {
		t.Fatalf("command produced %T, want OpenRequestMsg", message)
	}
	if request.Index != 1 {
		t.Errorf("request index = %d, want 1", request.Index)
	}
}

func TestFilteredOpenRequestMapsToCatalogIndex(t *testing.T) {
	model := newTestModel(t, testItems())
	model.filter.Input = "#portrait"
	model.refreshVisible()

	if len(model.visible) != 1 {
		t.Fatalf("filter kept %d items, want 1", len(model.visible))
	}

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if command == nil {
		t.Fatal("enter produced no command")
	}
	request := command().(lightbox.OpenRequestMsg)
	if request.Index != 2 {
		t.Errorf("request index = %d, want catalog index 2", request.Index)
	}
}

func TestReloadKeepsSelectionByName(t *testing.T) {
	model := newTestModel(t, testItems())
	model.moveCursor(2)
	if model.selectedItemName() != "portrait-anna.jpg" {
		t.Fatalf("setup: selected %q", model.selectedItemName())
	}

	// New catalog with the selected item at a different position.
	model.source.Replace(gallery.Catalog{Items: []gallery.Item{
		{Name: "portrait-anna.jpg", Tags: []string{"portrait"}},
		{Name: "new-arrival.jpg"},
		{Name: "winter-harbor.jpg"},
	}})
	model.Update(gallery.Event{Kind: "reload", Count: 3})

	if model.selectedItemName() != "portrait-anna.jpg" {
		t.Errorf("selection moved to %q across reload", model.selectedItemName())
	}
	if model.catalog.Len() != 3 {
		t.Errorf("catalog not refreshed: %d items", model.catalog.Len())
	}
}

func TestFilterModeKeyRouting(t *testing.T) {
	model := newTestModel(t, testItems())

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if model.focus != FocusFilter || !model.filter.Active {
		t.Fatal("slash did not enter filter mode")
	}

	for _, character := range "harbor" {
		model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
	if len(model.visible) != 1 {
		t.Errorf("typed filter kept %d items, want 1", len(model.visible))
	}

	// Enter accepts the filter and returns focus to the grid.
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.focus != FocusGrid || model.filter.Active {
		t.Error("enter did not leave filter mode")
	}
	if model.filter.Input != "harbor" {
		t.Errorf("filter input = %q after accept", model.filter.Input)
	}

	// Escape from the grid clears the accepted filter.
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.filter.Input != "" || len(model.visible) != 3 {
		t.Error("escape did not clear the filter")
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.cbor")

	if err := SaveState(path, FilterState{Query: "#winter", SelectedName: "winter-harbor.jpg"}); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.Query != "#winter" || state.SelectedName != "winter-harbor.jpg" {
		t.Errorf("restored state = %+v", state)
	}

	// A model created over the saved state restores the filter.
	cache, err := frame.NewCache(8, "", frame.CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	source := gallery.NewSource(gallery.Catalog{Items: testItems()})
	model := NewModel(source, cache, tui.DefaultTheme, path, true)
	if model.filter.Input != "#winter" {
		t.Errorf("restored filter input = %q", model.filter.Input)
	}
	if len(model.visible) != 1 {
		t.Errorf("restored filter kept %d items, want 1", len(model.visible))
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "absent.cbor"))
	if err != nil {
		t.Fatalf("missing state file should not error: %v", err)
	}
	if state.Query != "" {
		t.Errorf("missing file produced state %+v", state)
	}
}

func TestViewRendersGridAndStatus(t *testing.T) {
	model := newTestModel(t, testItems())

	plain := ansi.Strip(model.View())
	for _, want := range []string{"Test", "3 / 3 images", "winter-harbor.jpg", "#portrait"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewShowsFilteredCount(t *testing.T) {
	model := newTestModel(t, testItems())
	model.filter.Input = "#portrait"
	model.refreshVisible()

	plain := ansi.Strip(model.View())
	if !strings.Contains(plain, "1 / 3 shown") {
		t.Errorf("filtered view missing shown count:\n%s", plain)
	}
}

func TestHighlightNameKeepsText(t *testing.T) {
	model := newTestModel(t, testItems())
	model.filter.Input = "harbor"
	model.refreshVisible()

	// Styling must never change the visible text, or cell geometry
	// and truncation would drift.
	highlighted := model.highlightName("winter-harbor.jpg")
	if ansi.Strip(highlighted) != "winter-harbor.jpg" {
		t.Errorf("highlighting altered the text: %q", ansi.Strip(highlighted))
	}
}

func TestViewShowsViewerOverlayWhileOpen(t *testing.T) {
	model := newTestModel(t, testItems())
	model.Update(lightbox.OpenRequestMsg{Index: 0})

	plain := ansi.Strip(model.View())
	for _, want := range []string{"1 / 3", "Close", "Next"} {
		if !strings.Contains(plain, want) {
			t.Errorf("overlay view missing %q", want)
		}
	}
}

func TestLogHandlerLevelGate(t *testing.T) {
	handler := NewLogHandler(slog.LevelWarn)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on a warn-level handler")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error not enabled on a warn-level handler")
	}

	// Records before SetProgram are dropped without error.
	record := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Errorf("Handle without program: %v", err)
	}
}
