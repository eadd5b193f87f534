// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/events.go
// Summary: Render/clear notifications for collaborators of the grid engine.

package grid

import "sync"

// EventType defines the type of an engine event.
type EventType int

const (
	// EventRendered is sent after a render pass committed new state.
	EventRendered EventType = iota
	// EventCleared is sent after Clear released every cell.
	EventCleared
)

func (t EventType) String() string {
	switch t {
	case EventRendered:
		return "rendered"
	case EventCleared:
		return "cleared"
	}
	return "unknown"
}

// Event carries the committed geometry. Geometry is shared with the engine
// and must be treated as read-only.
type Event struct {
	Type     EventType
	Geometry *Geometry
}

// Listener is implemented by collaborators that react to engine events,
// such as scrollbars and resize handles.
type Listener interface {
	OnGridEvent(ev Event)
}

// ListenerFunc adapts a function to the Listener interface. Function
// listeners cannot be compared, so they stay subscribed for the engine's
// lifetime.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnGridEvent(ev Event) { f(ev) }

// dispatcher keeps listeners in subscription order.
type dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

func (d *dispatcher) subscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

func (d *dispatcher) unsubscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := l.(ListenerFunc); ok {
		return
	}
	for i, cur := range d.listeners {
		if _, fn := cur.(ListenerFunc); !fn && cur == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func (d *dispatcher) broadcast(ev Event) {
	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()
	for _, l := range listeners {
		l.OnGridEvent(ev)
	}
}
