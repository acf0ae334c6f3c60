package htmldom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/goliatone/go-loginform/pkg/dom"
)

// Element wraps a single element node. Elements are interned per document so
// repeated lookups return the same pointer.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ dom.Element = (*Element)(nil)

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

func (e *Element) ID() string {
	v, _ := e.Attribute("id")
	return v
}

// Value returns the control value: the value attribute for inputs, the text
// for textareas.
func (e *Element) Value() string {
	if e.node.Data == "textarea" {
		return e.TextContent()
	}
	v, _ := e.Attribute("value")
	return v
}

// SetValue replaces the control value without dispatching events.
func (e *Element) SetValue(value string) {
	if e.node.Data == "textarea" {
		e.SetTextContent(value)
		return
	}
	e.SetAttribute("value", value)
}

func (e *Element) Attribute(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttribute(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, name, value)
}

// RemoveAttribute drops name when present.
func (e *Element) RemoveAttribute(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeAttr(e.node, name)
}

func (e *Element) TextContent() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	collectText(e.node, &b)
	return b.String()
}

// SetTextContent replaces every child with a single text node. An empty
// string leaves the element without children.
func (e *Element) SetTextContent(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (e *Element) ClassList() dom.ClassList {
	return classList{el: e}
}

// HasClass is shorthand for ClassList().Contains(name).
func (e *Element) HasClass(name string) bool {
	return e.ClassList().Contains(name)
}

func (e *Element) Disabled() bool {
	_, ok := e.Attribute("disabled")
	return ok
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttribute("disabled", "")
		return
	}
	e.RemoveAttribute("disabled")
}

// Closest walks from the element up through its ancestors and returns the
// first one matching selector. Invalid selectors match nothing.
func (e *Element) Closest(selector string) dom.Element {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && sel.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// QuerySelector returns the first descendant matching selector.
func (e *Element) QuerySelector(selector string) dom.Element {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	node := findFirst(e.node, sel.Match, false)
	if node == nil {
		return nil
	}
	return e.doc.wrap(node)
}

func (e *Element) AddEventListener(eventType string, fn dom.Listener) {
	e.doc.addListener(e.node, eventType, fn)
}

// Type simulates the user typing: the value is replaced and an input event is
// dispatched.
func (e *Element) Type(value string) *Event {
	e.SetValue(value)
	return e.doc.Dispatch(e, dom.EventInput)
}

// Blur dispatches a blur event.
func (e *Element) Blur() *Event {
	return e.doc.Dispatch(e, dom.EventBlur)
}

// Submit dispatches a submit event at the element (normally the form).
func (e *Element) Submit() *Event {
	return e.doc.Dispatch(e, dom.EventSubmit)
}

type classList struct {
	el *Element
}

func (c classList) Add(names ...string) {
	c.el.doc.mu.Lock()
	defer c.el.doc.mu.Unlock()
	current := strings.Fields(attr(c.el.node, "class"))
	for _, name := range names {
		if name == "" || containsClass(current, name) {
			continue
		}
		current = append(current, name)
	}
	setAttr(c.el.node, "class", strings.Join(current, " "))
}

func (c classList) Remove(names ...string) {
	c.el.doc.mu.Lock()
	defer c.el.doc.mu.Unlock()
	current := strings.Fields(attr(c.el.node, "class"))
	kept := current[:0]
	for _, cls := range current {
		if !containsClass(names, cls) {
			kept = append(kept, cls)
		}
	}
	if len(kept) == 0 {
		if _, ok := hasAttr(c.el.node, "class"); ok {
			setAttr(c.el.node, "class", "")
		}
		return
	}
	setAttr(c.el.node, "class", strings.Join(kept, " "))
}

func (c classList) Contains(name string) bool {
	c.el.doc.mu.Lock()
	defer c.el.doc.mu.Unlock()
	return containsClass(strings.Fields(attr(c.el.node, "class")), name)
}

func containsClass(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

func hasAttr(n *html.Node, key string) (int, bool) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return i, true
		}
	}
	return -1, false
}

func setAttr(n *html.Node, key, value string) {
	if i, ok := hasAttr(n, key); ok {
		n.Attr[i].Val = value
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	if i, ok := hasAttr(n, key); ok {
		n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
	}
}

func collectText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			collectText(c, b)
		}
	}
}
