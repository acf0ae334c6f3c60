// Package dom defines the narrow DOM contract the login form controller is
// written against. Two implementations ship with the module: htmldom keeps an
// in-memory tree parsed from HTML (tests, terminal host, server self checks)
// and jsdom binds to the browser document when compiled for js/wasm.
//
// Selectors are CSS selectors. htmldom compiles them with cascadia and jsdom
// hands them to the browser.
package dom
