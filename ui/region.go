// Package ui is the rendering side of the pipeline: a small library that
// paints scenes into a scanline scratch buffer and hands the result to a
// registered flush callback one strip at a time, the way an embedded
// widget toolkit renders through a partial draw buffer.
package ui

// Region is a rectangle in display coordinates.
type Region struct {
	X, Y, W, H int
}

func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Region) intersect(o Region) Region {
	x0 := maxInt(r.X, o.X)
	y0 := maxInt(r.Y, o.Y)
	x1 := minInt(r.X+r.W, o.X+o.W)
	y1 := minInt(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Region{}
	}
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Region) union(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := minInt(r.X, o.X)
	y0 := minInt(r.Y, o.Y)
	x1 := maxInt(r.X+r.W, o.X+o.W)
	y1 := maxInt(r.Y+r.H, o.Y+o.H)
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Region) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
