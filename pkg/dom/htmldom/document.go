package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/goliatone/go-loginform/pkg/dom"
)

// Document is an in-memory DOM backed by an x/net/html node tree. It also
// plays the window role: navigations and alerts are recorded instead of
// performed.
//
// All methods are safe for concurrent use. Listeners run outside the
// document lock so they may freely call back into elements.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node]map[string][]dom.Listener

	location    string
	navigations []string
	alerts      []string
	onNavigate  func(string)
	onAlert     func(string)
}

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Window   = (*Document)(nil)
)

// Parse builds a document from HTML markup.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node]map[string][]dom.Listener),
	}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// GetElementByID returns the first element carrying id, or nil.
func (d *Document) GetElementByID(id string) dom.Element {
	if el := d.ElementByID(id); el != nil {
		return el
	}
	return nil
}

// ElementByID is the concrete typed variant of GetElementByID.
func (d *Document) ElementByID(id string) *Element {
	if d == nil || id == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	node := findFirst(d.root, func(n *html.Node) bool {
		return attr(n, "id") == id
	}, true)
	if node == nil {
		return nil
	}
	return d.wrap(node)
}

// QuerySelector returns the first element in document order matching
// selector, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	node := findFirst(d.root, sel.Match, true)
	if node == nil {
		return nil
	}
	return d.wrap(node)
}

// Navigate records a navigation request.
func (d *Document) Navigate(href string) {
	d.mu.Lock()
	d.location = href
	d.navigations = append(d.navigations, href)
	hook := d.onNavigate
	d.mu.Unlock()
	if hook != nil {
		hook(href)
	}
}

// Alert records a native alert.
func (d *Document) Alert(message string) {
	d.mu.Lock()
	d.alerts = append(d.alerts, message)
	hook := d.onAlert
	d.mu.Unlock()
	if hook != nil {
		hook(message)
	}
}

// OnNavigate registers a hook invoked after every navigation.
func (d *Document) OnNavigate(fn func(href string)) {
	d.mu.Lock()
	d.onNavigate = fn
	d.mu.Unlock()
}

// OnAlert registers a hook invoked after every alert.
func (d *Document) OnAlert(fn func(message string)) {
	d.mu.Lock()
	d.onAlert = fn
	d.mu.Unlock()
}

// Location returns the last navigated href, empty when the page never left.
func (d *Document) Location() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.location
}

// Navigations returns every recorded navigation in order.
func (d *Document) Navigations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.navigations...)
}

// Alerts returns every recorded alert message in order.
func (d *Document) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.alerts...)
}

// Render serialises the current tree.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Dispatch fires an event at target. Submit and input events bubble to
// ancestors; every other type is delivered to the target only.
func (d *Document) Dispatch(target *Element, eventType string) *Event {
	evt := &Event{typ: eventType, target: target}
	if target == nil {
		return evt
	}

	d.mu.Lock()
	var chain []dom.Listener
	for n := target.node; n != nil; n = n.Parent {
		chain = append(chain, d.listeners[n][eventType]...)
		if !bubbles(eventType) {
			break
		}
	}
	d.mu.Unlock()

	for _, fn := range chain {
		fn(evt)
	}
	return evt
}

func (d *Document) addListener(n *html.Node, eventType string, fn dom.Listener) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]dom.Listener)
		d.listeners[n] = byType
	}
	byType[eventType] = append(byType[eventType], fn)
}

// wrap must be called with d.mu held.
func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func bubbles(eventType string) bool {
	switch eventType {
	case dom.EventSubmit, dom.EventInput:
		return true
	default:
		return false
	}
}

// findFirst walks the subtree rooted at n depth first in document order.
func findFirst(n *html.Node, match func(*html.Node) bool, includeSelf bool) *html.Node {
	if n == nil {
		return nil
	}
	if includeSelf && n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match, true); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
