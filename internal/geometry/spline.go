// Package geometry provides boundary-curve math for calibrated input regions.
package geometry

// MinContourSamples is the minimum number of sampled points on a closed contour.
const MinContourSamples = 256

// Spans holds the four axis-aligned half-extents of a boundary around its center.
type Spans struct {
	Up    float64
	Down  float64
	Left  float64
	Right float64
}

// Offset is a relative diagonal boundary point, in pixels from the center.
type Offset struct {
	DX float64
	DY float64
}

// ContourOffsets carries the four diagonal boundary offsets, one per quadrant.
type ContourOffsets struct {
	UR Offset
	DR Offset
	DL Offset
	UL Offset
}

// Contour samples a closed boundary curve through the four axis anchors
// interleaved with the four diagonal points. The result always closes the
// loop: the last point equals the first.
func Contour(center Point, spans Spans, diagonals ContourOffsets, samples int) []Point {
	control := []Point{
		{X: center.X, Y: center.Y - spans.Up},
		{X: center.X + diagonals.UR.DX, Y: center.Y + diagonals.UR.DY},
		{X: center.X + spans.Right, Y: center.Y},
		{X: center.X + diagonals.DR.DX, Y: center.Y + diagonals.DR.DY},
		{X: center.X, Y: center.Y + spans.Down},
		{X: center.X + diagonals.DL.DX, Y: center.Y + diagonals.DL.DY},
		{X: center.X - spans.Left, Y: center.Y},
		{X: center.X + diagonals.UL.DX, Y: center.Y + diagonals.UL.DY},
	}
	return CatmullRomClosed(control, samples)
}

// CatmullRomClosed interpolates a closed Catmull-Rom spline through the
// control points and returns the sampled polyline, closed into a loop.
// Fewer than four control points are returned unchanged.
func CatmullRomClosed(points []Point, samples int) []Point {
	count := len(points)
	if count < 4 {
		return points
	}
	if samples < MinContourSamples {
		samples = MinContourSamples
	}
	total := samples
	if min := count * 4; total < min {
		total = min
	}
	perSegment := total / count
	if perSegment < 1 {
		perSegment = 1
	}

	spline := make([]Point, 0, count*perSegment+1)
	for i := 0; i < count; i++ {
		p0 := points[(i-1+count)%count]
		p1 := points[i]
		p2 := points[(i+1)%count]
		p3 := points[(i+2)%count]
		for step := 0; step < perSegment; step++ {
			t := float64(step) / float64(perSegment)
			t2 := t * t
			t3 := t2 * t
			spline = append(spline, Point{
				X: 0.5 * (2*p1.X +
					(-p0.X+p2.X)*t +
					(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
					(-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
				Y: 0.5 * (2*p1.Y +
					(-p0.Y+p2.Y)*t +
					(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
					(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
			})
		}
	}
	if len(spline) > 0 && spline[0] != spline[len(spline)-1] {
		spline = append(spline, spline[0])
	}
	return spline
}
