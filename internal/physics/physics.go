// Package physics provides distance, clamping and collision utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// WithinRange reports whether two points are strictly closer than r.
// All game contact tests (hits, contact damage) use a strict bound.
func WithinRange(x1, y1, x2, y2, r float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < r*r
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Direction returns the unit vector from (x1,y1) towards (x2,y2) and the
// distance between the points. ok is false when the points coincide, since a
// zero vector has no direction.
func Direction(x1, y1, x2, y2 float64) (nx, ny, dist float64, ok bool) {
	dx := x2 - x1
	dy := y2 - y1
	dist = math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return 0, 0, 0, false
	}
	return dx / dist, dy / dist, dist, true
}

// CapMagnitude scales (x,y) down so its length does not exceed max.
func CapMagnitude(x, y, max float64) (float64, float64) {
	m := math.Hypot(x, y)
	if m <= max || m == 0 {
		return x, y
	}
	return x / m * max, y / m * max
}

// Finite reports whether every value is a real number (no NaN or Inf).
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
