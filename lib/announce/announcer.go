// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package announce provides the status-line announcer and focus
// memory for the gallery application. Announcements surface state
// changes (navigation, load failures) in a dedicated status line;
// the announcer re-raises the current message after a short delay so
// a redraw storm cannot swallow it.
package announce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Politeness ranks an announcement. Alert messages use the alert
// style and displace info messages; info messages never displace a
// live alert.
type Politeness int

const (
	// Info is routine narration such as position changes.
	Info Politeness = iota

	// Alert is for failures the user should notice, such as an
	// image that cannot be loaded.
	Alert
)

// RefreshMsg asks the announcer to re-raise its current message. The
// generation ties the message to the announcement that scheduled it;
// a stale generation is ignored, which is how Cancel defuses timers
// already in flight.
type RefreshMsg struct {
	Generation uint64
}

// Announcer holds the current status-line message. It is owned by
// the UI model and accessed only from the update loop, so it carries
// no locking.
type Announcer struct {
	text       string
	politeness Politeness
	generation uint64

	// refreshDelay is how long after an announcement the message is
	// re-raised. Zero disables refresh.
	refreshDelay time.Duration
}

// NewAnnouncer creates an announcer with the given refresh delay.
func NewAnnouncer(refreshDelay time.Duration) *Announcer {
	return &Announcer{refreshDelay: refreshDelay}
}

// Announce replaces the current message and schedules a refresh. An
// info message is dropped while an alert is live; announce the alert
// resolution with Alert politeness or Cancel first.
func (announcer *Announcer) Announce(text string, politeness Politeness) tea.Cmd {
	if politeness == Info && announcer.politeness == Alert && announcer.text != "" {
		return nil
	}

	announcer.text = text
	announcer.politeness = politeness
	announcer.generation++

	if announcer.refreshDelay <= 0 || text == "" {
		return nil
	}
	generation := announcer.generation
	return tea.Tick(announcer.refreshDelay, func(time.Time) tea.Msg {
		return RefreshMsg{Generation: generation}
	})
}

// Refresh handles a RefreshMsg. A stale generation means the
// announcement was replaced or cancelled after the timer was
// scheduled; it is ignored so the timer cannot resurrect old text.
// A live generation reports true and the caller redraws.
func (announcer *Announcer) Refresh(message RefreshMsg) bool {
	return message.Generation == announcer.generation && announcer.text != ""
}

// Cancel clears the current message and invalidates any scheduled
// refresh.
func (announcer *Announcer) Cancel() {
	announcer.text = ""
	announcer.politeness = Info
	announcer.generation++
}

// Current returns the live message and its politeness. The text is
// empty when nothing is announced.
func (announcer *Announcer) Current() (string, Politeness) {
	return announcer.text, announcer.politeness
}
