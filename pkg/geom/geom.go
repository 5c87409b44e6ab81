// Package geom provides the 2D vector and rectangle math used by the
// diagram scene. All coordinates are in scene units.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the coincidence tolerance for point connections. Two points
// closer than this in scene space are considered to occupy the same spot.
const Epsilon = 0.01

// Vec is a 2D point or displacement.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Coincident reports whether a and b are within Epsilon of each other.
func Coincident(a, b Vec) bool {
	return a.Dist(b) <= Epsilon
}

// Rot90 rotates v by one quadrant step counterclockwise about the origin.
func Rot90(v Vec) Vec { return Vec{-v.Y, v.X} }

// Rot90Back rotates v by one quadrant step clockwise about the origin.
func Rot90Back(v Vec) Vec { return Vec{v.Y, -v.X} }

// RotQuadrant rotates v by n quadrant steps, n in 0..3.
func RotQuadrant(v Vec, n int) Vec {
	for i := 0; i < n&3; i++ {
		v = Rot90(v)
	}
	return v
}

// Snap45 snaps target to the nearest 45° ray out of anchor. Axis-aligned
// snaps keep the dominant component as the length; diagonal snaps use the
// dominant component compensated by sqrt(2) so the snapped point lands on
// the corner of the bounding square.
func Snap45(anchor, target Vec) Vec {
	d := target.Sub(anchor)
	if d.IsZero() {
		return target
	}
	angle := math.Atan2(d.Y, d.X)
	step := math.Round(angle / (math.Pi / 4))
	snapped := step * (math.Pi / 4)

	length := math.Max(math.Abs(d.X), math.Abs(d.Y))
	if int(step)%2 != 0 { // diagonal ray
		length *= math.Sqrt2
	}
	return anchor.Add(Vec{length * math.Cos(snapped), length * math.Sin(snapped)})
}

// Rect is an axis-aligned rectangle. W and H may be negative for a rect
// under construction; Normalized() canonicalizes.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectFromCorners builds the rect spanning two opposite corners.
func RectFromCorners(a, b Vec) Rect {
	return Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}.Normalized()
}

// Normalized returns r with non-negative width and height.
func (r Rect) Normalized() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec { return Vec{r.X + r.W/2, r.Y + r.H/2} }

// Min returns the top-left corner.
func (r Rect) Min() Vec { return Vec{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec { return Vec{r.X + r.W, r.Y + r.H} }

// Contains reports whether p lies inside the normalized rect.
func (r Rect) Contains(p Vec) bool {
	n := r.Normalized()
	return p.X >= n.X && p.X <= n.X+n.W && p.Y >= n.Y && p.Y <= n.Y+n.H
}

// Union returns the smallest rect covering both r and s.
func (r Rect) Union(s Rect) Rect {
	r = r.Normalized()
	s = s.Normalized()
	minX := math.Min(r.X, s.X)
	minY := math.Min(r.Y, s.Y)
	maxX := math.Max(r.X+r.W, s.X+s.W)
	maxY := math.Max(r.Y+r.H, s.Y+s.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Vec) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// IsDegenerate reports whether the rect has no extent in either axis.
func (r Rect) IsDegenerate() bool {
	return math.Abs(r.W) < Epsilon || math.Abs(r.H) < Epsilon
}

// PointSegmentDist returns the distance from p to the segment a-b.
func PointSegmentDist(p, a, b Vec) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
