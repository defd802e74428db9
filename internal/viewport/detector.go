// Package viewport reports whether the screen is narrow enough for the
// compact presentation.
package viewport

import (
	"fmt"

	"golang.org/x/term"
)

// DefaultBreakpoint is the reference width below which a viewport is compact
const DefaultBreakpoint = 768

// Compact reports whether width is below breakpoint
func Compact(width, breakpoint int) bool {
	return width < breakpoint
}

// Listener receives the compact flag whenever it changes
type Listener func(compact bool)

type listener struct {
	id uint64
	fn Listener
}

// Detector tracks the current width and notifies listeners when the compact
// flag flips. It is driven synchronously from the owner's event loop.
type Detector struct {
	breakpoint int
	width      int
	compact    bool
	nextID     uint64
	listeners  []listener
}

// NewDetector creates a detector for breakpoint. A non-positive breakpoint
// uses DefaultBreakpoint. The initial width is unknown and treated as wide.
func NewDetector(breakpoint int) *Detector {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return &Detector{breakpoint: breakpoint}
}

// Breakpoint returns the configured breakpoint
func (d *Detector) Breakpoint() int {
	return d.breakpoint
}

// Width returns the last observed width
func (d *Detector) Width() int {
	return d.width
}

// IsCompact returns the current compact flag
func (d *Detector) IsCompact() bool {
	return d.compact
}

// Observe records a new width. Listeners are called in subscription order,
// only when the flag changes.
func (d *Detector) Observe(width int) {
	d.width = width
	compact := Compact(width, d.breakpoint)
	if compact == d.compact {
		return
	}
	d.compact = compact

	// Copy so listeners may unsubscribe while being notified
	listeners := make([]listener, len(d.listeners))
	copy(listeners, d.listeners)
	for _, l := range listeners {
		l.fn(compact)
	}
}

// Subscribe registers fn and returns the function that releases it.
// The release function may be called any number of times.
func (d *Detector) Subscribe(fn Listener) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of active subscriptions
func (d *Detector) Listeners() int {
	return len(d.listeners)
}

// TerminalWidth reads the current width of the terminal behind fd
func TerminalWidth(fd int) (int, error) {
	if !term.IsTerminal(fd) {
		return 0, fmt.Errorf("fd %d is not a terminal", fd)
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to read terminal size: %w", err)
	}
	return width, nil
}
