// Package mapper projects absolute pointer positions onto a bounded
// virtual-joystick target inside the widget's output circle.
package mapper

import (
	"math"
	"sort"

	"github.com/frudas24/joybridge/internal/geometry"
)

// Scale clamp applied to measured radius corrections.
const (
	adjustScaleMin = 0.5
	adjustScaleMax = 2.0
)

// Sample is one measured correction: at the given reference angle the
// observed direction was off by Offset degrees and the observed radius by
// the Scale factor.
type Sample struct {
	AngleDeg float64
	Offset   float64
	Scale    float64
}

// Adjustment interpolates angle and radius corrections around the full
// circle from a set of measured samples. The zero value is a no-op.
type Adjustment struct {
	samples []Sample
}

// NewAdjustment sorts and normalizes the samples. Scales outside the
// supported range are clamped, non-finite entries dropped.
func NewAdjustment(samples []Sample) *Adjustment {
	kept := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if math.IsNaN(s.AngleDeg) || math.IsInf(s.AngleDeg, 0) ||
			math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) ||
			math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) {
			continue
		}
		s.AngleDeg = math.Mod(math.Mod(s.AngleDeg, 360)+360, 360)
		if s.Scale < adjustScaleMin {
			s.Scale = adjustScaleMin
		}
		if s.Scale > adjustScaleMax {
			s.Scale = adjustScaleMax
		}
		kept = append(kept, s)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].AngleDeg < kept[j].AngleDeg })
	return &Adjustment{samples: kept}
}

// Apply corrects a gain-scaled pointer offset using the interpolated
// corrections at its angle.
func (a *Adjustment) Apply(rel geometry.Point) geometry.Point {
	if a == nil || len(a.samples) == 0 {
		return rel
	}
	length := rel.Len()
	if length == 0 {
		return rel
	}
	offset, scale := a.At(rel.AngleDeg())
	angle := rel.AngleDeg() + offset
	return geometry.UnitFromAngleDeg(angle).Scale(length * scale)
}

// At returns the interpolated angle offset and radius scale at the given
// angle. Between samples it interpolates linearly along the shorter arc.
func (a *Adjustment) At(angleDeg float64) (offset, scale float64) {
	n := len(a.samples)
	if n == 0 {
		return 0, 1
	}
	angle := math.Mod(math.Mod(angleDeg, 360)+360, 360)
	if n == 1 {
		return a.samples[0].Offset, a.samples[0].Scale
	}

	// Find the surrounding pair, wrapping across 0 degrees.
	hi := sort.Search(n, func(i int) bool { return a.samples[i].AngleDeg >= angle })
	lo := hi - 1
	if hi == n {
		hi = 0
	}
	if lo < 0 {
		lo = n - 1
	}

	s0, s1 := a.samples[lo], a.samples[hi]
	span := math.Mod(s1.AngleDeg-s0.AngleDeg+360, 360)
	if span == 0 {
		return s0.Offset, s0.Scale
	}
	t := math.Mod(angle-s0.AngleDeg+360, 360) / span
	return s0.Offset + (s1.Offset-s0.Offset)*t, s0.Scale + (s1.Scale-s0.Scale)*t
}
