// Package geometry provides boundary-curve math for calibrated input regions.
package geometry

import "math"

// rayEpsilon rejects near-parallel ray/segment pairs.
const rayEpsilon = 1e-6

// RayDistance casts a ray from origin along dir and returns the smallest
// positive distance at which it crosses the contour polyline. It returns
// false when dir is zero, the contour is degenerate, or no segment is hit.
// A contour that self-intersects near sharp corners still yields the nearest
// hit, so a mapped ratio can only shrink, never exceed the true boundary.
func RayDistance(origin, dir Point, contour []Point) (float64, bool) {
	if len(contour) < 2 || (dir.X == 0 && dir.Y == 0) {
		return 0, false
	}

	minT := math.Inf(1)
	found := false
	for i := 0; i < len(contour)-1; i++ {
		a := contour[i]
		b := contour[i+1]
		sx := b.X - a.X
		sy := b.Y - a.Y

		det := cross(dir.X, dir.Y, sx, sy)
		if math.Abs(det) < rayEpsilon {
			continue
		}

		qx := a.X - origin.X
		qy := a.Y - origin.Y
		t := cross(qx, qy, sx, sy) / det
		u := cross(qx, qy, dir.X, dir.Y) / det
		if t >= 0 && u >= 0 && u <= 1 && t < minT {
			minT = t
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return minT, true
}

// cross returns the 2D cross product of (ax,ay) and (bx,by).
func cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}
