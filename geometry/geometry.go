// Package geometry holds the plane primitives shared by the layout model,
// the edit-mode editor and the frame projector.
package geometry

import "math"

// Point is an immutable position or vertex. The JSON names match the
// NohBoard interchange format.
type Point struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Length is the magnitude of p treated as a vector from the origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle is the direction of p treated as a vector from the origin,
// in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PointInPolygon reports whether p lies inside the implicitly-closed polygon
// described by vertices, using an even-odd ray cast. Degenerate polygons
// with fewer than three vertices never contain any point.
func PointInPolygon(p Point, vertices []Point) bool {
	if len(vertices) < 3 {
		return false
	}

	inside := false
	j := len(vertices) - 1

	for i := range vertices {
		a, b := vertices[i], vertices[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}

		j = i
	}

	return inside
}

// DistanceToSegment is the shortest distance from p to the segment a-b.
// Used by the editor to decide whether a cursor grabbed an edge.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y

	if lenSq == 0 {
		return Distance(p, a)
	}

	t := (p.Sub(a).X*ab.X + p.Sub(a).Y*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))

	return Distance(p, a.Add(ab.Scale(t)))
}
