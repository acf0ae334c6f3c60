//go:build js && wasm

// Package jsdom binds the dom contract to the browser through syscall/js.
package jsdom

import (
	"syscall/js"

	"github.com/goliatone/go-loginform/pkg/dom"
)

// Document wraps the global document and window objects.
type Document struct {
	document js.Value
	window   js.Value
	funcs    []js.Func
}

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Window   = (*Document)(nil)
)

// Global returns a Document bound to globalThis.document and globalThis.
func Global() *Document {
	global := js.Global()
	return &Document{document: global.Get("document"), window: global}
}

func (d *Document) GetElementByID(id string) dom.Element {
	v := d.document.Call("getElementById", id)
	if isNullish(v) {
		return nil
	}
	return &Element{doc: d, v: v}
}

func (d *Document) Navigate(href string) {
	d.window.Get("location").Set("href", href)
}

func (d *Document) Alert(message string) {
	d.window.Call("alert", message)
}

// OnReady runs fn once the DOM is parsed: immediately when the document has
// already left the loading state, otherwise on DOMContentLoaded.
func (d *Document) OnReady(fn func()) {
	if d.document.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	d.funcs = append(d.funcs, cb)
	d.document.Call("addEventListener", dom.EventDOMContentLoaded, cb, map[string]any{"once": true})
}

// Release frees every registered callback. Listeners stop working afterwards.
func (d *Document) Release() {
	for _, fn := range d.funcs {
		fn.Release()
	}
	d.funcs = nil
}

// Element wraps an HTMLElement.
type Element struct {
	doc *Document
	v   js.Value
}

var _ dom.Element = (*Element)(nil)

func (e *Element) ID() string { return e.v.Get("id").String() }

func (e *Element) Value() string {
	value := e.v.Get("value")
	if isNullish(value) {
		return ""
	}
	return value.String()
}

func (e *Element) Attribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if isNullish(v) {
		return "", false
	}
	return v.String(), true
}

func (e *Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }

func (e *Element) TextContent() string { return e.v.Get("textContent").String() }

func (e *Element) SetTextContent(text string) { e.v.Set("textContent", text) }

func (e *Element) ClassList() dom.ClassList { return classList{v: e.v.Get("classList")} }

func (e *Element) Disabled() bool { return e.v.Get("disabled").Truthy() }

func (e *Element) SetDisabled(disabled bool) { e.v.Set("disabled", disabled) }

func (e *Element) Closest(selector string) dom.Element {
	v := e.v.Call("closest", selector)
	if isNullish(v) {
		return nil
	}
	return &Element{doc: e.doc, v: v}
}

func (e *Element) QuerySelector(selector string) dom.Element {
	v := e.v.Call("querySelector", selector)
	if isNullish(v) {
		return nil
	}
	return &Element{doc: e.doc, v: v}
}

func (e *Element) AddEventListener(eventType string, fn dom.Listener) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			fn(&event{})
			return nil
		}
		fn(&event{v: args[0]})
		return nil
	})
	e.doc.funcs = append(e.doc.funcs, cb)
	e.v.Call("addEventListener", eventType, cb)
}

type classList struct {
	v js.Value
}

func (c classList) Add(names ...string) {
	for _, name := range names {
		if name != "" {
			c.v.Call("add", name)
		}
	}
}

func (c classList) Remove(names ...string) {
	for _, name := range names {
		if name != "" {
			c.v.Call("remove", name)
		}
	}
}

func (c classList) Contains(name string) bool {
	return c.v.Call("contains", name).Bool()
}

type event struct {
	v js.Value
}

func (e *event) Type() string {
	if isNullish(e.v) {
		return ""
	}
	return e.v.Get("type").String()
}

func (e *event) PreventDefault() {
	if !isNullish(e.v) {
		e.v.Call("preventDefault")
	}
}

func (e *event) DefaultPrevented() bool {
	return !isNullish(e.v) && e.v.Get("defaultPrevented").Bool()
}

func isNullish(v js.Value) bool {
	return v.IsUndefined() || v.IsNull()
}
