package htmldom

import (
	"sync/atomic"

	"github.com/goliatone/go-loginform/pkg/dom"
)

// Event is the concrete event delivered by Document.Dispatch.
type Event struct {
	typ       string
	target    *Element
	prevented atomic.Bool
}

var _ dom.Event = (*Event)(nil)

func (e *Event) Type() string { return e.typ }

// Target returns the element the event was dispatched at.
func (e *Event) Target() *Element { return e.target }

func (e *Event) PreventDefault() { e.prevented.Store(true) }

func (e *Event) DefaultPrevented() bool { return e.prevented.Load() }
