// Package widget provides small components built on the loom core: solid
// fills, overlapping panels, row and column stacks, borders, buttons that
// turn hits into messages, and a measuring wrapper.
//
// Components that go through the registry (Fill, Button) must be registered
// on the window before the first frame that mounts them:
//
//	w, _ := loom.NewWindow()
//	widget.Register(w)
package widget

import "github.com/grindlemire/go-loom"

// Register binds every component type of this package to a basic renderer.
func Register(w *loom.Window) {
	loom.RegisterBasic[Fill](w)
	loom.RegisterBasic[Button](w)
}
