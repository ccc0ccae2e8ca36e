package layout

import "math"

// Unbounded is the dimension of an Area that places no limit on an axis.
const Unbounded = math.MaxInt32

// Area is a width/height pair. It is used both for minimum requirements
// reported by resolved subtrees and for the maximum space offered to them.
type Area struct {
	Width, Height int
}

// NewArea creates an Area.
func NewArea(width, height int) Area {
	return Area{Width: width, Height: height}
}

// UnboundedArea returns an Area with no limit on either axis.
func UnboundedArea() Area {
	return Area{Width: Unbounded, Height: Unbounded}
}

// IsZero returns true if both dimensions are zero.
func (a Area) IsZero() bool {
	return a.Width == 0 && a.Height == 0
}

// Max returns the per-axis maximum of a and other.
func (a Area) Max(other Area) Area {
	return Area{Width: max(a.Width, other.Width), Height: max(a.Height, other.Height)}
}

// Min returns the per-axis minimum of a and other.
func (a Area) Min(other Area) Area {
	return Area{Width: min(a.Width, other.Width), Height: min(a.Height, other.Height)}
}

// Add returns the per-axis sum, saturating at Unbounded.
func (a Area) Add(other Area) Area {
	return Area{Width: addDim(a.Width, other.Width), Height: addDim(a.Height, other.Height)}
}

// Shrink returns a reduced by edges on each side, never below zero.
// Unbounded axes stay unbounded.
func (a Area) Shrink(edges Edges) Area {
	return Area{
		Width:  shrinkDim(a.Width, edges.Horizontal()),
		Height: shrinkDim(a.Height, edges.Vertical()),
	}
}

// Grow returns a enlarged by edges on each side.
func (a Area) Grow(edges Edges) Area {
	return a.Add(Area{Width: edges.Horizontal(), Height: edges.Vertical()})
}

// Fits reports whether a fits inside limit on both axes.
func (a Area) Fits(limit Area) bool {
	return a.Width <= limit.Width && a.Height <= limit.Height
}

func addDim(x, y int) int {
	if x >= Unbounded || y >= Unbounded || x+y >= Unbounded {
		return Unbounded
	}
	return x + y
}

func shrinkDim(x, by int) int {
	if x >= Unbounded {
		return Unbounded
	}
	return max(x-by, 0)
}
