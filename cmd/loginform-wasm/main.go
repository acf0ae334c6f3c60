//go:build js && wasm

// Command loginform-wasm binds the login form controller to the page it is
// loaded into. Build with GOOS=js GOARCH=wasm and serve the output next to
// wasm_exec.js.
//
// Submit mode, success path, redirect delay and success message are read from
// the form's data attributes so the same binary serves every deployment.
package main

import (
	"syscall/js"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/dom/jsdom"
)

func main() {
	doc := jsdom.Global()
	done := make(chan struct{})

	doc.OnReady(func() {
		opts := controller.FormOptions(doc.GetElementByID(controller.FormID))

		ctrl, err := controller.New(doc, doc, opts...)
		if err != nil {
			js.Global().Get("console").Call("error", err.Error())
			close(done)
			return
		}

		// A persisted pagehide means the page entered the back/forward cache
		// and may be shown again, so the controller stays bound.
		var onHide js.Func
		onHide = js.FuncOf(func(_ js.Value, args []js.Value) any {
			if len(args) > 0 && args[0].Get("persisted").Truthy() {
				return nil
			}
			ctrl.Close()
			onHide.Release()
			return nil
		})
		js.Global().Call("addEventListener", "pagehide", onHide)
	})

	<-done
	doc.Release()
}
