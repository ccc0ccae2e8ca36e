package widget

import "github.com/grindlemire/go-loom"

// Border is a generator that frames its single child with a colored edge.
// The child is offered the area left inside the edge.
type Border struct {
	Edges loom.Edges
	Color loom.Color
}

// Generate implements loom.Generator.
func (b Border) Generate(ctx *loom.Context) {
	children := ctx.Children()
	frame := &bordered{edges: b.Edges, color: b.Color}
	ctx.Emit(ctx.Socket(ctx.Child("border"), frame).Adopt(&children))
}

// Bordered is shorthand for a Border generator node around child.
func Bordered(ctx *loom.Context, id loom.Id, width int, color loom.Color, child *loom.Node) *loom.Node {
	return ctx.Generator(id, Border{Edges: loom.EdgeAll(width), Color: color}, child)
}

type bordered struct {
	edges loom.Edges
	color loom.Color
	child loom.LayoutNode
	full  bool
}

func (b *bordered) Capacity() loom.Capacity { return loom.One }

func (b *bordered) ChildArea(max loom.Area) loom.Area {
	return max.Shrink(b.edges)
}

func (b *bordered) Accept(child loom.LayoutNode) {
	b.child, b.full = child, true
}

// Close draws the edge even around an empty child so that an empty border
// still occupies its edges.
func (b *bordered) Close(_ *loom.Context) (loom.LayoutNode, bool) {
	edges, color, child, full := b.edges, b.color, b.child, b.full
	need := loom.Area{}.Grow(edges)
	if full {
		need = child.MinArea.Grow(edges)
	}
	return loom.NewLayoutNode(need, func(r loom.Region, cmds *loom.Commands) {
		cmds.Quad(r, color)
		if full {
			child.Render(r.Inset(edges), cmds)
		}
	}), true
}
