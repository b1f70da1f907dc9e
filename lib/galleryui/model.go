// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package galleryui implements the top-level gallery application: a
// filterable grid of image cards with an embedded modal viewer. The
// model owns all UI state and routes input by focus region; the
// viewer, while open, captures every key and mouse event.
package galleryui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumen-gallery/lumen/lib/announce"
	"github.com/lumen-gallery/lumen/lib/frame"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/lightbox"
	"github.com/lumen-gallery/lumen/lib/tui"

	"github.com/charmbracelet/bubbles/key"
)

// FocusRegion identifies which part of the UI receives key input.
type FocusRegion int

const (
	FocusGrid FocusRegion = iota
	FocusFilter
	FocusLightbox
)

// announceRefreshDelay is how long after an announcement the status
// line re-raises it.
const announceRefreshDelay = 2 * time.Second

// Model is the top-level bubbletea model.
type Model struct {
	source *gallery.Source
	events <-chan gallery.Event

	catalog gallery.Catalog
	// visible holds the catalog indices passing the filter, in
	// catalog order. The grid cursor indexes into visible.
	visible   []int
	cursor    int
	scrollRow int

	filter      FilterModel
	focus       FocusRegion
	focusMemory announce.FocusMemory[FocusRegion]
	announcer   *announce.Announcer
	viewer      *lightbox.Controller
	keys        KeyMap
	theme       tui.Theme
	cache       *frame.Cache

	width  int
	height int

	logSummary string
	logLevel   slog.Level

	// statePath persists the filter state across runs; empty
	// disables persistence.
	statePath string
}

// NewModel creates the gallery application model. When statePath is
// non-empty and restore is true, the persisted filter state is
// applied immediately.
func NewModel(source *gallery.Source, cache *frame.Cache, theme tui.Theme, statePath string, restore bool) *Model {
	announcer := announce.NewAnnouncer(announceRefreshDelay)
	model := &Model{
		source:    source,
		events:    source.Subscribe(),
		catalog:   source.Snapshot(),
		filter:    NewFilterModel(),
		announcer: announcer,
		viewer:    lightbox.NewController(source, cache, announcer, theme),
		keys:      DefaultKeyMap,
		theme:     theme,
		cache:     cache,
		statePath: statePath,
	}

	if statePath != "" && restore {
		if state, err := LoadState(statePath); err == nil {
			model.filter.Input = state.Query
			model.refreshVisible()
			model.selectByName(state.SelectedName)
		}
	}
	if model.visible == nil {
		model.refreshVisible()
	}
	return model
}

// SetFilter replaces the filter query, as if the user had typed it.
// Used for the --filter flag.
func (model *Model) SetFilter(query string) {
	model.filter.Input = query
	model.refreshVisible()
}

// Init subscribes the update loop to catalog reload events.
func (model *Model) Init() tea.Cmd {
	return model.listenForReload()
}

func (model *Model) listenForReload() tea.Cmd {
	return func() tea.Msg {
		return <-model.events
	}
}

// Update implements tea.Model.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, model.viewer.SetSize(message.Width, message.Height)

	case gallery.Event:
		return model, tea.Batch(model.handleReload(message), model.listenForReload())

	case lightbox.OpenRequestMsg:
		return model, model.openViewer(message.Index)

	case announce.RefreshMsg:
		// A live refresh just forces a redraw; a stale one is
		// ignored.
		model.announcer.Refresh(message)
		return model, nil

	case LogRecordMsg:
		model.logSummary = message.Summary
		model.logLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.logSummary = ""
		return model, nil

	case tea.KeyMsg:
		return model, model.handleKey(message)

	case tea.MouseMsg:
		return model, model.handleMouse(message)
	}

	return model, nil
}

// handleReload replaces the catalog from the source after a manifest
// change. The cursor follows the selected item by name; an open
// viewer keeps its snapshot.
func (model *Model) handleReload(event gallery.Event) tea.Cmd {
	selectedName := model.selectedItemName()
	model.catalog = model.source.Snapshot()
	model.refreshVisible()
	model.selectByName(selectedName)
	return model.announcer.Announce(
		fmt.Sprintf("Gallery reloaded, %d images", event.Count), announce.Info)
}

// openViewer starts a viewing session at a catalog index, parking
// the current focus region for restoration at close.
func (model *Model) openViewer(catalogIndex int) tea.Cmd {
	model.focusMemory.Remember(model.focus)
	release := func() {
		if region, ok := model.focusMemory.Restore(); ok {
			model.focus = region
		} else {
			model.focus = FocusGrid
		}
	}

	command := model.viewer.Open(catalogIndex, release)
	if model.viewer.IsOpen() {
		model.focus = FocusLightbox
	} else {
		// Open declined (empty catalog): drop the parked focus.
		model.focusMemory.Restore()
	}
	return command
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	switch model.focus {
	case FocusLightbox:
		return model.viewer.HandleKey(message)

	case FocusFilter:
		return model.handleFilterKey(message)

	default:
		return model.handleGridKey(message)
	}
}

func (model *Model) handleFilterKey(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyEsc:
		model.filter.Clear()
		model.focus = FocusGrid
		model.refreshVisible()
		return nil

	case tea.KeyEnter:
		model.filter.Active = false
		model.focus = FocusGrid
		return nil

	case tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.refreshVisible()
		}
		return nil

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		if message.Type == tea.KeySpace {
			model.filter.HandleRune(' ')
		}
		model.refreshVisible()
		return nil
	}
	return nil
}

func (model *Model) handleGridKey(message tea.KeyMsg) tea.Cmd {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		model.saveState()
		return tea.Quit

	case key.Matches(message, keys.FilterActivate):
		model.filter.Active = true
		model.focus = FocusFilter
		return nil

	case key.Matches(message, keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.refreshVisible()
		}
		return nil

	case key.Matches(message, keys.Up):
		model.moveCursor(-model.gridColumns())
		return nil

	case key.Matches(message, keys.Down):
		model.moveCursor(model.gridColumns())
		return nil

	case key.Matches(message, keys.Left):
		model.moveCursor(-1)
		return nil

	case key.Matches(message, keys.Right):
		model.moveCursor(1)
		return nil

	case key.Matches(message, keys.Home):
		model.cursor = 0
		model.ensureCursorVisible()
		return nil

	case key.Matches(message, keys.End):
		if len(model.visible) > 0 {
			model.cursor = len(model.visible) - 1
		}
		model.ensureCursorVisible()
		return nil

	case key.Matches(message, keys.Open):
		return model.emitOpenRequest()
	}
	return nil
}

// emitOpenRequest publishes the typed open signal for the selected
// card, carrying its catalog index.
func (model *Model) emitOpenRequest() tea.Cmd {
	if model.cursor >= len(model.visible) {
		return nil
	}
	catalogIndex := model.visible[model.cursor]
	return func() tea.Msg {
		return lightbox.OpenRequestMsg{Index: catalogIndex}
	}
}

func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	if model.viewer.IsOpen() {
		return model.viewer.HandleMouse(message)
	}

	mouse := tea.MouseEvent(message)
	if mouse.Action != tea.MouseActionRelease || mouse.Button != tea.MouseButtonLeft {
		return nil
	}

	index, ok := model.cellAt(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	model.cursor = index
	model.ensureCursorVisible()
	return model.emitOpenRequest()
}

// refreshVisible recomputes the filtered item set and clamps the
// cursor and scroll into the new bounds.
func (model *Model) refreshVisible() {
	model.visible = model.filter.Apply(model.catalog.Items)
	if model.cursor >= len(model.visible) {
		model.cursor = len(model.visible) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.ensureCursorVisible()
}

func (model *Model) moveCursor(delta int) {
	if len(model.visible) == 0 {
		return
	}
	next := model.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(model.visible) {
		next = len(model.visible) - 1
	}
	model.cursor = next
	model.ensureCursorVisible()
}

func (model *Model) selectedItemName() string {
	if model.cursor < len(model.visible) {
		return model.catalog.Items[model.visible[model.cursor]].Name
	}
	return ""
}

// selectByName moves the cursor to the visible item with the given
// name, if present. Used to keep the selection stable across catalog
// reloads and when restoring persisted state.
func (model *Model) selectByName(name string) {
	if name == "" {
		return
	}
	for position, catalogIndex := range model.visible {
		if model.catalog.Items[catalogIndex].Name == name {
			model.cursor = position
			model.ensureCursorVisible()
			return
		}
	}
}

func (model *Model) saveState() {
	if model.statePath == "" {
		return
	}
	state := FilterState{
		Query:        model.filter.Input,
		SelectedName: model.selectedItemName(),
	}
	if err := SaveState(model.statePath, state); err != nil {
		slog.Debug("saving view state failed", "path", model.statePath, "error", err)
	}
}
