// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package lightbox

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumen-gallery/lumen/lib/announce"
	"github.com/lumen-gallery/lumen/lib/frame"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/tui"
)

// newTestController builds a closed controller over an in-memory
// catalog. The item paths do not exist on disk, which exercises the
// soft-fail rendering path; the state machine is unaffected.
func newTestController(t *testing.T, items ...gallery.Item) *Controller {
	t.Helper()
	cache, err := frame.NewCache(4, "", frame.CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	source := gallery.NewSource(gallery.Catalog{Items: items})
	controller := NewController(source, cache, announce.NewAnnouncer(0), tui.DefaultTheme)
	controller.SetSize(80, 24)
	return controller
}

// fiveItems returns a catalog of five uncaptioned items.
func fiveItems() []gallery.Item {
	items := make([]gallery.Item, 5)
	for index := range items {
		items[index] = gallery.Item{Name: fmt.Sprintf("image-%d.jpg", index)}
	}
	return items
}

func TestOpenEmptyCatalogStaysClosed(t *testing.T) {
	controller := newTestController(t)

	if cmd := controller.Open(0, nil); cmd != nil {
		t.Error("open on empty catalog returned a command")
	}
	if controller.IsOpen() {
		t.Error("controller opened with no items")
	}
	if controller.Background() != BackgroundDefault {
		t.Error("background changed on a failed open")
	}
}

func TestWrapRoundTrip(t *testing.T) {
	controller := newTestController(t, fiveItems()...)
	controller.Open(2, nil)

	for step := 0; step < 5; step++ {
		controller.Next()
	}
	if controller.Index() != 2 {
		t.Errorf("five Next calls over five items: index = %d, want 2", controller.Index())
	}

	for step := 0; step < 5; step++ {
		controller.Prev()
	}
	if controller.Index() != 2 {
		t.Errorf("five Prev calls over five items: index = %d, want 2", controller.Index())
	}
}

func TestCounterScenario(t *testing.T) {
	controller := newTestController(t, fiveItems()...)

	controller.Open(0, nil)
	if got := controller.Counter(); got != "1 / 5" {
		t.Errorf("after open: counter = %q, want %q", got, "1 / 5")
	}

	for step := 0; step < 4; step++ {
		controller.Next()
	}
	if got := controller.Counter(); got != "5 / 5" {
		t.Errorf("after four Next: counter = %q, want %q", got, "5 / 5")
	}

	controller.Next()
	if got := controller.Counter(); got != "1 / 5" {
		t.Errorf("after wrap: counter = %q, want %q", got, "1 / 5")
	}
}

func TestIdempotentClose(t *testing.T) {
	controller := newTestController(t, fiveItems()...)
	controller.Open(0, nil)

	controller.Close()
	if controller.IsOpen() {
		t.Error("still open after close")
	}
	if controller.Background() != BackgroundRevealed {
		t.Error("background not revealed after close")
	}
	if text, _ := controller.announcer.Current(); text != "Viewer closed" {
		t.Errorf("after close: announcement = %q", text)
	}

	if cmd := controller.Close(); cmd != nil {
		t.Error("second close was not a no-op")
	}
	if controller.IsOpen() {
		t.Error("reopened by the second close")
	}
	if controller.Background() != BackgroundRevealed {
		t.Error("second close disturbed the background state")
	}
	if text, _ := controller.announcer.Current(); text != "Viewer closed" {
		t.Errorf("second close disturbed the announcement: %q", text)
	}
}

func TestFocusRoundTrip(t *testing.T) {
	controller := newTestController(t, fiveItems()...)

	releases := 0
	controller.Open(3, func() { releases++ })

	if releases != 0 {
		t.Fatal("release invoked before close")
	}
	controller.Close()
	if releases != 1 {
		t.Fatalf("release invoked %d times, want 1", releases)
	}
	controller.Close()
	if releases != 1 {
		t.Error("idempotent close re-invoked the release function")
	}
}

func TestBackgroundNeverReturnsToDefault(t *testing.T) {
	controller := newTestController(t, fiveItems()...)

	if controller.Background() != BackgroundDefault {
		t.Fatal("fresh controller background not default")
	}

	controller.Open(0, nil)
	if controller.Background() != BackgroundHidden {
		t.Error("background not hidden while open")
	}

	controller.Close()
	controller.Open(0, nil)
	controller.Close()
	if controller.Background() != BackgroundRevealed {
		t.Error("background left the hidden/revealed cycle")
	}
}

func TestOutOfRangeOpenWraps(t *testing.T) {
	controller := newTestController(t, fiveItems()...)

	controller.Open(7, nil)
	if controller.Index() != 2 {
		t.Errorf("Open(7) over five items: index = %d, want 2", controller.Index())
	}
	controller.Close()

	controller.Open(-1, nil)
	if controller.Index() != 4 {
		t.Errorf("Open(-1) over five items: index = %d, want 4", controller.Index())
	}
}

func TestOpenWhileOpenNavigates(t *testing.T) {
	controller := newTestController(t, fiveItems()...)

	releases := 0
	controller.Open(0, func() { releases++ })
	controller.Open(3, func() { t.Error("second open installed a new release") })

	if controller.Index() != 3 {
		t.Errorf("index = %d, want 3", controller.Index())
	}
	controller.Close()
	if releases != 1 {
		t.Errorf("original release invoked %d times, want 1", releases)
	}
}

func TestAnnouncementFormat(t *testing.T) {
	items := fiveItems()
	items[1].Caption = "Winter harbor at dusk"
	controller := newTestController(t, items...)

	controller.Open(0, nil)
	// Navigation to a captioned item appends the caption after a
	// comma.
	controller.Next()
	if text, _ := controller.announcer.Current(); text != "Image 2 of 5, Winter harbor at dusk" {
		t.Errorf("captioned announcement = %q", text)
	}

	// An uncaptioned item gets no trailing fragment at all.
	controller.Next()
	if text, _ := controller.announcer.Current(); text != "Image 3 of 5" {
		t.Errorf("uncaptioned announcement = %q", text)
	}
}

func TestOpenAndCloseAnnouncements(t *testing.T) {
	controller := newTestController(t, fiveItems()...)

	controller.Open(0, nil)
	if text, _ := controller.announcer.Current(); text != "Viewer opened" {
		t.Errorf("after open: announcement = %q", text)
	}

	controller.Close()
	if text, _ := controller.announcer.Current(); text != "Viewer closed" {
		t.Errorf("after close: announcement = %q", text)
	}
}

func TestSnapshotIgnoresCatalogReload(t *testing.T) {
	cache, err := frame.NewCache(4, "", frame.CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	source := gallery.NewSource(gallery.Catalog{Items: []gallery.Item{
		{Name: "a.jpg"}, {Name: "b.jpg"},
	}})
	controller := NewController(source, cache, announce.NewAnnouncer(0), tui.DefaultTheme)
	controller.SetSize(80, 24)

	controller.Open(0, nil)
	source.Replace(gallery.Catalog{Items: fiveItems()})

	controller.Next()
	if got := controller.Counter(); got != "2 / 2" {
		t.Errorf("open viewer observed a catalog reload: counter = %q", got)
	}

	// The snapshot persists across close and reopen; only an empty
	// snapshot rehydrates.
	controller.Close()
	controller.Open(0, nil)
	if got := controller.Counter(); got != "1 / 2" {
		t.Errorf("reopen rehydrated a non-empty snapshot: counter = %q", got)
	}
}

func TestKeyBindings(t *testing.T) {
	controller := newTestController(t, fiveItems()...)
	controller.Open(0, nil)

	controller.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	if controller.Index() != 1 {
		t.Errorf("right arrow: index = %d, want 1", controller.Index())
	}

	controller.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if controller.Index() != 2 {
		t.Errorf("l key: index = %d, want 2", controller.Index())
	}

	controller.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if controller.Index() != 1 {
		t.Errorf("left arrow: index = %d, want 1", controller.Index())
	}

	controller.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if controller.IsOpen() {
		t.Error("escape did not close the viewer")
	}

	// Keys are ignored while closed.
	if cmd := controller.HandleKey(tea.KeyMsg{Type: tea.KeyRight}); cmd != nil {
		t.Error("closed controller handled a key")
	}
}

func TestFocusCycleWraps(t *testing.T) {
	controller := newTestController(t, fiveItems()...)
	controller.Open(0, nil)

	if controller.Focused() != ControlClose {
		t.Fatalf("initial focus = %v, want close control", controller.Focused())
	}

	tab := tea.KeyMsg{Type: tea.KeyTab}
	wantForward := []Control{ControlPrev, ControlNext, ControlClose}
	for _, want := range wantForward {
		controller.HandleKey(tab)
		if controller.Focused() != want {
			t.Fatalf("tab cycle: focused = %v, want %v", controller.Focused(), want)
		}
	}

	controller.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if controller.Focused() != ControlNext {
		t.Errorf("shift+tab: focused = %v, want next control", controller.Focused())
	}
}

func TestEnterActivatesFocusedControl(t *testing.T) {
	controller := newTestController(t, fiveItems()...)
	controller.Open(0, nil)

	// Tab twice: close -> prev -> next.
	controller.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	controller.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	controller.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if controller.Index() != 1 {
		t.Errorf("enter on next control: index = %d, want 1", controller.Index())
	}

	// Back to the close control.
	controller.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	controller.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if controller.IsOpen() {
		t.Error("enter on close control did not close")
	}
}
