// Package layout holds the plain geometry values exchanged during frame
// evaluation: Area (a width/height requirement or limit), Region (a placed
// rectangle), Point and Edges.
//
// All types are small values passed by copy and never aliased. They are
// re-exported through the root loom package for public consumption.
package layout
