package widget

import "github.com/grindlemire/go-loom"

// Fill is a solid rectangle that needs at least Size and paints whatever
// region it is given.
type Fill struct {
	Size  loom.Area
	Color loom.Color
}

// Layout implements loom.Component.
func (f Fill) Layout(_ *loom.Context) (loom.LayoutNode, bool) {
	return loom.NewLayoutNode(f.Size, func(r loom.Region, cmds *loom.Commands) {
		cmds.Quad(r, f.Color)
	}), true
}

// Spacer reserves area without drawing anything.
func Spacer(ctx *loom.Context, size loom.Area) *loom.Node {
	return ctx.Leaf(loom.NewLayoutNode(size, nil))
}
