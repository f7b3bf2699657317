package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is a rectangle given by two opposite corners. The corners are not
// required to be ordered; call Normalize before containment tests.
//
// In physical (PDF) space Y grows upwards from the bottom of the page. In
// image space Y grows downwards from the top. Use a Mapping to cross.
type Rect struct {
	X1, Y1 float64
	X2, Y2 float64
}

// NewRect creates a rectangle from two corners
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Normalize returns r with X1 <= X2 and Y1 <= Y2
func (r Rect) Normalize() Rect {
	return Rect{
		X1: math.Min(r.X1, r.X2),
		Y1: math.Min(r.Y1, r.Y2),
		X2: math.Max(r.X1, r.X2),
		Y2: math.Max(r.Y1, r.Y2),
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return math.Abs(r.X2 - r.X1)
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return math.Abs(r.Y2 - r.Y1)
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Top returns the larger Y coordinate (the top edge in physical space)
func (r Rect) Top() float64 {
	return math.Max(r.Y1, r.Y2)
}

// Bottom returns the smaller Y coordinate
func (r Rect) Bottom() float64 {
	return math.Min(r.Y1, r.Y2)
}

// Left returns the smaller X coordinate
func (r Rect) Left() float64 {
	return math.Min(r.X1, r.X2)
}

// Right returns the larger X coordinate
func (r Rect) Right() float64 {
	return math.Max(r.X1, r.X2)
}

// Contains reports whether p lies inside r (edges included)
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X1 && p.X <= n.X2 && p.Y >= n.Y1 && p.Y <= n.Y2
}

// corners returns the four corners of the normalized rectangle
func (r Rect) corners() [4]Point {
	n := r.Normalize()
	return [4]Point{
		{n.X1, n.Y1},
		{n.X2, n.Y1},
		{n.X1, n.Y2},
		{n.X2, n.Y2},
	}
}

// Intersects reports whether any of the eight corners of r and other lies
// inside the other rectangle. This is exact for axis-aligned rectangles
// that share a corner region; two rectangles crossing like a plus sign
// with no corner inside the other are not reported.
func (r Rect) Intersects(other Rect) bool {
	for _, c := range r.corners() {
		if other.Contains(c) {
			return true
		}
	}
	for _, c := range other.corners() {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Union returns the smallest normalized rectangle covering both
func (r Rect) Union(other Rect) Rect {
	a, b := r.Normalize(), other.Normalize()
	return Rect{
		X1: math.Min(a.X1, b.X1),
		Y1: math.Min(a.Y1, b.Y1),
		X2: math.Max(a.X2, b.X2),
		Y2: math.Max(a.Y2, b.Y2),
	}
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// UnionAll returns the union of all rectangles, or the zero Rect
func UnionAll(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0].Normalize()
	for _, r := range rects[1:] {
		u = u.Union(r)
	}
	return u
}

// Mapping converts between physical space and image space using
// independent X/Y scale factors and a translation offset. PageHeight is
// the physical page height used to flip the Y axis.
type Mapping struct {
	ScaleX     float64
	ScaleY     float64
	OffsetX    float64
	OffsetY    float64
	PageHeight float64
}

// NewMapping creates a mapping that scales a page of the given physical
// size onto an image of the given pixel size
func NewMapping(pageWidth, pageHeight float64, imageWidth, imageHeight int) Mapping {
	m := Mapping{ScaleX: 1, ScaleY: 1, PageHeight: pageHeight}
	if pageWidth > 0 {
		m.ScaleX = float64(imageWidth) / pageWidth
	}
	if pageHeight > 0 {
		m.ScaleY = float64(imageHeight) / pageHeight
	}
	return m
}

// ToImage converts a physical point to image space
func (m Mapping) ToImage(p Point) Point {
	return Point{
		X: p.X*m.ScaleX + m.OffsetX,
		Y: (m.PageHeight-p.Y)*m.ScaleY + m.OffsetY,
	}
}

// ToPhysical converts an image point to physical space
func (m Mapping) ToPhysical(p Point) Point {
	sx, sy := m.ScaleX, m.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return Point{
		X: (p.X - m.OffsetX) / sx,
		Y: m.PageHeight - (p.Y-m.OffsetY)/sy,
	}
}

// RectToImage converts a physical rectangle to a normalized image rectangle
func (m Mapping) RectToImage(r Rect) Rect {
	a := m.ToImage(Point{r.X1, r.Y1})
	b := m.ToImage(Point{r.X2, r.Y2})
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}.Normalize()
}

// RectToPhysical converts an image rectangle to a normalized physical rectangle
func (m Mapping) RectToPhysical(r Rect) Rect {
	a := m.ToPhysical(Point{r.X1, r.Y1})
	b := m.ToPhysical(Point{r.X2, r.Y2})
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}.Normalize()
}

// Matrix represents a 2D affine transformation matrix
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m followed by other (PDF concatenation order)
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// UnitSquare returns the bounding rectangle of the unit square mapped
// through m. Image XObjects are painted into this area.
func (m Matrix) UnitSquare() Rect {
	pts := [4]Point{
		m.Transform(Point{0, 0}),
		m.Transform(Point{1, 0}),
		m.Transform(Point{0, 1}),
		m.Transform(Point{1, 1}),
	}
	r := Rect{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
	for _, p := range pts[1:] {
		r.X1 = math.Min(r.X1, p.X)
		r.Y1 = math.Min(r.Y1, p.Y)
		r.X2 = math.Max(r.X2, p.X)
		r.Y2 = math.Max(r.Y2, p.Y)
	}
	return r
}
