package dom

// Event names the login form listens for.
const (
	EventSubmit           = "submit"
	EventBlur             = "blur"
	EventInput            = "input"
	EventDOMContentLoaded = "DOMContentLoaded"
)

// Event is the subset of a browser event the form handlers need.
type Event interface {
	Type() string
	PreventDefault()
	DefaultPrevented() bool
}

// Listener receives dispatched events.
type Listener func(Event)

// ClassList mirrors Element.classList.
type ClassList interface {
	Add(names ...string)
	Remove(names ...string)
	Contains(name string) bool
}

// Element is the element surface used by the controller. Lookups that find
// nothing return a nil Element.
type Element interface {
	ID() string
	Value() string
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	TextContent() string
	SetTextContent(text string)
	ClassList() ClassList
	Disabled() bool
	SetDisabled(disabled bool)
	// Closest returns the element itself or its nearest ancestor matching
	// selector.
	Closest(selector string) Element
	// QuerySelector returns the first descendant matching selector.
	QuerySelector(selector string) Element
	AddEventListener(eventType string, fn Listener)
}

// Document resolves elements by id.
type Document interface {
	GetElementByID(id string) Element
}

// Window carries the page level side effects: navigation and native alerts.
type Window interface {
	Navigate(href string)
	Alert(message string)
}
