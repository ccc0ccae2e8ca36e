package widget

import "github.com/grindlemire/go-loom"

// Clicked is posted to a button's Id when a hit on it is reported, and sent
// on to Notify when the button has one.
type Clicked struct {
	From loom.Id
}

// Button is a clickable rectangle. It counts clicks across frames and draws
// in its Pressed color during the frame a click arrives.
type Button struct {
	Size    loom.Area
	Color   loom.Color
	Pressed loom.Color
	Notify  loom.Id
}

// Clicks returns how many clicks the button at ctx's position had received
// as of the previous frame.
func Clicks(ctx *loom.Context) int {
	n, _ := loom.LoadState[int](ctx)
	return n
}

// Layout implements loom.Component.
func (b Button) Layout(ctx *loom.Context) (loom.LayoutNode, bool) {
	id := ctx.ID()
	clicks := Clicks(ctx)
	color := b.Color

	if _, ok := loom.Message[Clicked](ctx); ok {
		clicks++
		color = b.Pressed
		if b.Notify != 0 {
			ctx.Send(b.Notify, Clicked{From: id})
		}
		ctx.Logger().Debug("button clicked", "id", id, "clicks", clicks)
	}
	loom.StoreState(ctx, clicks)

	return loom.NewLayoutNode(b.Size, func(r loom.Region, cmds *loom.Commands) {
		r = r.Sized(b.Size.Min(r.Area()))
		cmds.Quad(r, color)
		cmds.Hit(r, id)
	}), true
}

// Click reports a pointer press at (x, y) on frame's output. If it lands on
// a hit region, the owner receives Clicked on the next frame.
func Click(w *loom.Window, frame loom.Frame, x, y int) (loom.Id, bool) {
	id, ok := frame.Commands.HitAt(x, y)
	if ok {
		w.Post(id, Clicked{From: id})
	}
	return id, ok
}
