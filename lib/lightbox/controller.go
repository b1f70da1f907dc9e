// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package lightbox implements the modal image viewer: a small state
// machine coordinating the open session, circular navigation, input
// capture, background dimming, and status announcements. One
// Controller instance serves one gallery view; all state is owned by
// the instance.
package lightbox

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumen-gallery/lumen/lib/announce"
	"github.com/lumen-gallery/lumen/lib/frame"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/tui"
)

// OpenRequestMsg asks the lightbox to open at a catalog index. Any
// producer may emit it; the top-level model routes it here.
type OpenRequestMsg struct {
	Index int
}

// Control identifies one of the modal's activatable controls, in
// focus-cycle order.
type Control int

const (
	ControlClose Control = iota
	ControlPrev
	ControlNext

	controlCount = 3
)

// session bundles the state that exists only while the viewer is
// open. Open-ness itself is derived from its presence; there is no
// separate boolean to fall out of sync.
type session struct {
	// release restores the input routing and cursor position that
	// were in effect before the viewer opened. Installed by the
	// caller at open time.
	release func()

	// focused is the control the focus cycle currently rests on.
	focused Control
}

// BackgroundState is the dimming state of the content behind the
// viewer. Opening sets Hidden and closing sets Revealed; the state
// never returns to Default within a session. The asymmetry is
// deliberate: Revealed records that a viewer has been dismissed,
// which Default cannot.
type BackgroundState int

const (
	BackgroundDefault BackgroundState = iota
	BackgroundHidden
	BackgroundRevealed
)

// Controller owns the modal viewer state machine.
type Controller struct {
	source    *gallery.Source
	cache     *frame.Cache
	announcer *announce.Announcer
	theme     tui.Theme
	keys      KeyMap

	// items is the catalog snapshot, hydrated lazily at the first
	// successful open. Catalog reloads are not observed by an
	// already-hydrated controller.
	items []gallery.Item
	index int

	session    *session
	background BackgroundState

	// lastFrame persists across renders so an item whose image fails
	// to resolve keeps showing the previous image rather than going
	// blank.
	lastFrame   frame.Frame
	lastCaption string
	counter     string

	screenWidth  int
	screenHeight int

	// layout is the hit geometry of the most recent render, used for
	// mouse dispatch.
	layout layout
}

// NewController creates a closed viewer over a gallery source.
func NewController(source *gallery.Source, cache *frame.Cache, announcer *announce.Announcer, theme tui.Theme) *Controller {
	return &Controller{
		source:     source,
		cache:      cache,
		announcer:  announcer,
		theme:      theme,
		keys:       DefaultKeyMap(),
		background: BackgroundDefault,
	}
}

// IsOpen reports whether a viewing session is active. Derived from
// session presence, never stored separately.
func (controller *Controller) IsOpen() bool {
	return controller.session != nil
}

// Index returns the current item index. Meaningful only while the
// item snapshot is non-empty.
func (controller *Controller) Index() int {
	return controller.index
}

// Background returns the dimming state of the content behind the
// viewer.
func (controller *Controller) Background() BackgroundState {
	return controller.background
}

// Counter returns the position text of the last render, in the form
// "3 / 5".
func (controller *Controller) Counter() string {
	return controller.counter
}

// Focused returns the control the focus cycle rests on.
func (controller *Controller) Focused() Control {
	if controller.session == nil {
		return ControlClose
	}
	return controller.session.focused
}

// SetSize records the screen geometry. A later render uses it; an
// open viewer re-renders immediately.
func (controller *Controller) SetSize(width, height int) tea.Cmd {
	controller.screenWidth = width
	controller.screenHeight = height
	if controller.session == nil {
		return nil
	}
	return controller.updateUI()
}

// Open starts a viewing session at the given index. The release
// function restores the caller's pre-open input routing and cursor;
// it is invoked exactly once, at close. When the item snapshot is
// empty it is hydrated from the source; if it is still empty the
// viewer stays closed and Open is a no-op.
//
// An out-of-range index wraps into range by floored modulo, matching
// the wrap-always navigation policy.
func (controller *Controller) Open(index int, release func()) tea.Cmd {
	if len(controller.items) == 0 {
		controller.items = controller.source.Snapshot().Items
	}
	if len(controller.items) == 0 {
		return nil
	}

	if controller.session != nil {
		// Already open: treat as navigation to the requested item.
		controller.index = gallery.Normalize(index, len(controller.items))
		return controller.updateUI()
	}

	controller.index = gallery.Normalize(index, len(controller.items))
	controller.session = &session{release: release, focused: ControlClose}
	controller.background = BackgroundHidden

	renderCommand := controller.updateUI()
	openedCommand := controller.announcer.Announce("Viewer opened", announce.Info)
	return tea.Batch(renderCommand, openedCommand)
}

// Close ends the viewing session: releases the input capture,
// reveals the background, restores the caller's focus through the
// release function, and defuses any pending announcement refresh so
// a stale timer cannot write after closure. Calling Close while
// already closed is a safe no-op.
func (controller *Controller) Close() tea.Cmd {
	if controller.session == nil {
		return nil
	}

	release := controller.session.release
	controller.session = nil
	controller.background = BackgroundRevealed

	controller.announcer.Cancel()
	if release != nil {
		release()
	}
	return controller.announcer.Announce("Viewer closed", announce.Info)
}

// Next advances to the circular successor. Navigation always wraps;
// there is no boundary state.
func (controller *Controller) Next() tea.Cmd {
	if controller.session == nil || len(controller.items) == 0 {
		return nil
	}
	controller.index = gallery.WrapNext(controller.index, len(controller.items))
	return controller.updateUI()
}

// Prev moves to the circular predecessor.
func (controller *Controller) Prev() tea.Cmd {
	if controller.session == nil || len(controller.items) == 0 {
		return nil
	}
	controller.index = gallery.WrapPrev(controller.index, len(controller.items))
	return controller.updateUI()
}

// HandleKey processes a key press while the viewer is open. Every
// key is consumed so input cannot reach the gallery underneath.
func (controller *Controller) HandleKey(message tea.KeyMsg) tea.Cmd {
	if controller.session == nil {
		return nil
	}

	switch {
	case key.Matches(message, controller.keys.Close):
		return controller.Close()

	case key.Matches(message, controller.keys.Next):
		return controller.Next()

	case key.Matches(message, controller.keys.Prev):
		return controller.Prev()

	case key.Matches(message, controller.keys.CycleFocus):
		controller.session.focused = (controller.session.focused + 1) % controlCount
		return nil

	case key.Matches(message, controller.keys.CycleFocusBack):
		controller.session.focused = (controller.session.focused + controlCount - 1) % controlCount
		return nil

	case key.Matches(message, controller.keys.Activate):
		return controller.activate(controller.session.focused)
	}

	return nil
}

// HandleMouse processes a mouse click while the viewer is open. A
// click on a control activates it; a click outside the modal frame
// closes the viewer; a click inside the frame that hits no control
// does nothing. The inside/outside distinction is a strict
// hit-rectangle test against the frame of the most recent render.
func (controller *Controller) HandleMouse(message tea.MouseMsg) tea.Cmd {
	if controller.session == nil {
		return nil
	}
	mouse := tea.MouseEvent(message)
	if mouse.Action != tea.MouseActionRelease || mouse.Button != tea.MouseButtonLeft {
		return nil
	}

	for control, rect := range controller.layout.controls {
		if rect.contains(mouse.X, mouse.Y) {
			controller.session.focused = Control(control)
			return controller.activate(Control(control))
		}
	}

	if !controller.layout.frame.contains(mouse.X, mouse.Y) {
		return controller.Close()
	}
	return nil
}

func (controller *Controller) activate(control Control) tea.Cmd {
	switch control {
	case ControlClose:
		return controller.Close()
	case ControlPrev:
		return controller.Prev()
	case ControlNext:
		return controller.Next()
	}
	return nil
}

// updateUI renders the active item: resolves the image through the
// fallback chain, the caption through the caption chain, sets the
// counter, preloads the circular neighbors, and announces the
// position. When no image source resolves, or decoding fails, the
// previous frame stays on screen.
func (controller *Controller) updateUI() tea.Cmd {
	item := controller.items[controller.index]

	imageColumns, imageRows := controller.imageArea()
	if source := gallery.ResolveFullSource(item); source != "" && imageColumns > 0 {
		if rendered, err := frame.Load(controller.cache, source, imageColumns, imageRows); err == nil {
			controller.lastFrame = rendered
		}
	}

	controller.lastCaption = gallery.ResolveCaption(item)
	controller.counter = fmt.Sprintf("%d / %d", controller.index+1, len(controller.items))

	controller.preloadNeighbors(imageColumns, imageRows)

	return controller.announcer.Announce(controller.positionAnnouncement(), announce.Info)
}

// positionAnnouncement builds the status text for the active item:
// "Image 3 of 5" with ", {caption}" appended only when a caption
// exists. An empty caption never leaves a trailing fragment.
func (controller *Controller) positionAnnouncement() string {
	text := fmt.Sprintf("Image %d of %d", controller.index+1, len(controller.items))
	if caption := gallery.CaptionFirstLine(controller.lastCaption); caption != "" {
		text += ", " + caption
	}
	return text
}

// preloadNeighbors warms the frame cache for both circular neighbors
// of the current index, fire and forget.
func (controller *Controller) preloadNeighbors(columns, rows int) {
	length := len(controller.items)
	if length < 2 || columns < 1 {
		return
	}

	neighborPaths := make([]string, 0, 2)
	for _, neighborIndex := range []int{
		gallery.WrapNext(controller.index, length),
		gallery.WrapPrev(controller.index, length),
	} {
		if neighborIndex == controller.index {
			continue
		}
		if path := gallery.ResolveFullSource(controller.items[neighborIndex]); path != "" {
			neighborPaths = append(neighborPaths, path)
		}
	}
	frame.PreloadNeighbors(controller.cache, neighborPaths, columns, rows)
}
