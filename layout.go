// layout.go re-exports geometry types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package loom

import "github.com/grindlemire/go-loom/internal/layout"

// Area is a width/height pair used for minimum and maximum sizes.
type Area = layout.Area

// Region is a placed rectangle.
type Region = layout.Region

// Point represents an x/y coordinate.
type Point = layout.Point

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Unbounded is the dimension of an Area that places no limit on an axis.
const Unbounded = layout.Unbounded

// NewArea creates an Area.
func NewArea(width, height int) Area {
	return layout.NewArea(width, height)
}

// UnboundedArea returns an Area with no limit on either axis.
func UnboundedArea() Area {
	return layout.UnboundedArea()
}

// NewRegion creates a Region with the given position and dimensions.
func NewRegion(x, y, width, height int) Region {
	return layout.NewRegion(x, y, width, height)
}

// RegionOf places an Area at the origin.
func RegionOf(a Area) Region {
	return layout.RegionOf(a)
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return layout.EdgeAll(n)
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h int) Edges {
	return layout.EdgeSymmetric(v, h)
}
