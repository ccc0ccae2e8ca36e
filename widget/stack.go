package widget

import "github.com/grindlemire/go-loom"

// Axis is the direction a stack lays its children out in.
type Axis uint8

const (
	// Row places children left to right.
	Row Axis = iota
	// Column places children top to bottom.
	Column
)

func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "column"
}

func (a Axis) main(v loom.Area) int {
	if a == Row {
		return v.Width
	}
	return v.Height
}

// stack places children one after another along an axis. Each child gets
// its own minimum extent on the main axis and the full cross axis.
type stack struct {
	axis     Axis
	gap      int
	children []loom.LayoutNode
	min      loom.Area
}

func (s *stack) Capacity() loom.Capacity { return loom.Unlimited }

func (s *stack) Accept(child loom.LayoutNode) {
	gap := 0
	if len(s.children) > 0 {
		gap = s.gap
	}
	s.children = append(s.children, child)

	c := child.MinArea
	if s.axis == Row {
		s.min.Width = s.min.Add(loom.NewArea(c.Width+gap, 0)).Width
		s.min.Height = max(s.min.Height, c.Height)
	} else {
		s.min.Height = s.min.Add(loom.NewArea(0, c.Height+gap)).Height
		s.min.Width = max(s.min.Width, c.Width)
	}
}

func (s *stack) Close(_ *loom.Context) (loom.LayoutNode, bool) {
	if len(s.children) == 0 {
		return loom.LayoutNode{}, false
	}
	axis, gap, children := s.axis, s.gap, s.children
	return loom.NewLayoutNode(s.min, func(r loom.Region, cmds *loom.Commands) {
		rest := r
		for i, c := range children {
			if i > 0 {
				rest = skip(axis, rest, gap)
			}
			var cell loom.Region
			if axis == Row {
				cell, rest = rest.SplitX(axis.main(c.MinArea))
			} else {
				cell, rest = rest.SplitY(axis.main(c.MinArea))
			}
			c.Render(cell, cmds)
		}
	}), true
}

func skip(axis Axis, r loom.Region, n int) loom.Region {
	if axis == Row {
		_, rest := r.SplitX(n)
		return rest
	}
	_, rest := r.SplitY(n)
	return rest
}

// Stack creates a socket laying children out along axis with gap cells
// between them.
func Stack(ctx *loom.Context, id loom.Id, axis Axis, gap int, children ...*loom.Node) *loom.Node {
	return ctx.Socket(id, &stack{axis: axis, gap: max(gap, 0)}, children...)
}
