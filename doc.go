// Package loom evaluates immediate-mode UI descriptions into resolved layouts.
//
// A frame starts from a root Generator. Generators emit child nodes through a
// Context; Sockets collect the layouts their children resolve to and resolve
// to a LayoutNode of their own; Filters interpose on the Generators and
// Sockets inside their scope. The evaluator walks this lazily produced tree
// with an explicit stack machine, interleaving top-down generation with
// bottom-up size resolution, and yields one LayoutNode: a minimum Area plus a
// deferred render procedure that writes draw Commands.
//
// Users import this single package for the public API: Window (frame
// lifecycle, component registry, cross-frame state and messages), Context,
// node constructors, geometry types and the Commands sink. Reference
// components live in the widget subpackage.
//
// Everything allocated during a frame comes from a per-frame arena and is
// released in bulk when the frame ends. The package is single-threaded: a
// Window must only be driven from one goroutine.
package loom
