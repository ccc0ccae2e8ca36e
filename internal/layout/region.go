package layout

// Region is a placed rectangle. X and Y are the top-left corner.
type Region struct {
	X, Y          int
	Width, Height int
}

// NewRegion creates a Region with the given position and dimensions.
func NewRegion(x, y, width, height int) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// RegionOf places an Area at the origin.
func RegionOf(a Area) Region {
	return Region{Width: a.Width, Height: a.Height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Region) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Region) Bottom() int {
	return r.Y + r.Height
}

// Area returns the dimensions of the region.
func (r Region) Area() Area {
	return Area{Width: r.Width, Height: r.Height}
}

// IsEmpty returns true if the region has zero or negative area.
func (r Region) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) is inside the region.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset returns a new Region inset by the given Edges.
// Positive values shrink the region; negative values expand it.
func (r Region) Inset(edges Edges) Region {
	return Region{
		X:      r.X + edges.Left,
		Y:      r.Y + edges.Top,
		Width:  r.Width - edges.Left - edges.Right,
		Height: r.Height - edges.Top - edges.Bottom,
	}
}

// Translate returns a new Region moved by (dx, dy).
func (r Region) Translate(dx, dy int) Region {
	return Region{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Sized returns a Region at the same position with the given area.
func (r Region) Sized(a Area) Region {
	return Region{X: r.X, Y: r.Y, Width: a.Width, Height: a.Height}
}

// Intersect returns the intersection of two regions.
// If the regions don't overlap, returns an empty Region.
func (r Region) Intersect(other Region) Region {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	width := right - x
	height := bottom - y

	if width <= 0 || height <= 0 {
		return Region{}
	}

	return Region{X: x, Y: y, Width: width, Height: height}
}

// SplitX cuts the region at w columns from the left, returning the left and
// right parts. w is clamped to the region width.
func (r Region) SplitX(w int) (Region, Region) {
	w = min(max(w, 0), max(r.Width, 0))
	return Region{X: r.X, Y: r.Y, Width: w, Height: r.Height},
		Region{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
}

// SplitY cuts the region at h rows from the top, returning the top and
// bottom parts. h is clamped to the region height.
func (r Region) SplitY(h int) (Region, Region) {
	h = min(max(h, 0), max(r.Height, 0))
	return Region{X: r.X, Y: r.Y, Width: r.Width, Height: h},
		Region{X: r.X, Y: r.Y + h, Width: r.Width, Height: r.Height - h}
}
