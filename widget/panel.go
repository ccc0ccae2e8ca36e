package widget

import "github.com/grindlemire/go-loom"

// panel overlays all of its children in one region. Its minimum area is the
// per-axis maximum of theirs.
type panel struct {
	background loom.Color
	children   []loom.LayoutNode
	min        loom.Area
}

func (p *panel) Capacity() loom.Capacity { return loom.Unlimited }

func (p *panel) Accept(child loom.LayoutNode) {
	p.children = append(p.children, child)
	p.min = p.min.Max(child.MinArea)
}

func (p *panel) Close(_ *loom.Context) (loom.LayoutNode, bool) {
	if len(p.children) == 0 {
		return loom.LayoutNode{}, false
	}
	children, bg := p.children, p.background
	return loom.NewLayoutNode(p.min, func(r loom.Region, cmds *loom.Commands) {
		if !bg.IsDefault() {
			cmds.Quad(r, bg)
		}
		for _, c := range children {
			c.Render(r, cmds)
		}
	}), true
}

// Panel creates a socket drawing every child over the same region, later
// children on top. A panel without children resolves to nothing.
func Panel(ctx *loom.Context, id loom.Id, children ...*loom.Node) *loom.Node {
	return ctx.Socket(id, &panel{}, children...)
}

// PanelWith is Panel with a background color painted under the children.
func PanelWith(ctx *loom.Context, id loom.Id, background loom.Color, children ...*loom.Node) *loom.Node {
	return ctx.Socket(id, &panel{background: background}, children...)
}
