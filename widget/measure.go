package widget

import "github.com/grindlemire/go-loom"

// Resized is sent to a Measure's Notify Id when its child's minimum area
// differs from the previous frame's.
type Resized struct {
	From loom.Id
	Area loom.Area
}

// measure passes its single child through unchanged and remembers the
// child's minimum area for the next frame.
type measure struct {
	notify loom.Id
	child  loom.LayoutNode
	full   bool
}

func (m *measure) Capacity() loom.Capacity { return loom.One }

func (m *measure) Accept(child loom.LayoutNode) {
	m.child, m.full = child, true
}

func (m *measure) Close(ctx *loom.Context) (loom.LayoutNode, bool) {
	if !m.full {
		return loom.LayoutNode{}, false
	}
	prev, seen := loom.LoadState[loom.Area](ctx)
	cur := m.child.MinArea
	loom.StoreState(ctx, cur)
	if m.notify != 0 && (!seen || prev != cur) {
		ctx.Send(m.notify, Resized{From: ctx.ID(), Area: cur})
	}
	return m.child, true
}

// Measure wraps child, reporting its minimum area to notify whenever it
// changes. The first frame always reports.
func Measure(ctx *loom.Context, id, notify loom.Id, child *loom.Node) *loom.Node {
	return ctx.Socket(id, &measure{notify: notify}, child)
}
