package formhandler

import "net/url"

// The page is reached only through these interfaces, so a WASM bridge or a
// test fake can host a Controller.

type Event interface {
	PreventDefault()
}

type Listener func(Event)

// EventTarget registers a listener and returns the function that removes it.
type EventTarget interface {
	AddEventListener(event string, fn Listener) (remove func())
}

// Element is a message region shown or hidden as a whole.
type Element interface {
	SetVisible(visible bool)
}

type TextSink interface {
	SetText(text string)
}

type Button interface {
	SetDisabled(disabled bool)
	SetOpacity(opacity string)
	SetTitle(title string)
}

type Input interface {
	EventTarget
	// Tag is the upper-case element name, e.g. "INPUT" or "SELECT".
	Tag() string
}

type Form interface {
	EventTarget
	// Values snapshots every named field of the form.
	Values() url.Values
	Reset()
	Inputs(selector string) []Input
}
