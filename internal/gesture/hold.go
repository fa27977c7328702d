// Package gesture drives the walk and skill touch state machines.
package gesture

import (
	"math"
	"time"

	"github.com/frudas24/joybridge/internal/geometry"
)

// Hold duration bounds for distance-proportional walking.
const (
	HoldMin = 500 * time.Millisecond
	HoldMax = 5 * time.Second
)

// HoldDuration converts a drag distance into how long the walk touch stays
// held. The distance is measured against half the screen diagonal, so a
// drag across half the screen walks for the full HoldMax.
func HoldDuration(from, to geometry.Point, surfaceW, surfaceH int) time.Duration {
	half := math.Hypot(float64(surfaceW), float64(surfaceH)) / 2
	if half <= 0 {
		return HoldMin
	}
	ratio := to.Sub(from).Len() / half
	if ratio > 1 {
		ratio = 1
	}
	d := time.Duration(ratio * float64(HoldMax))
	if d < HoldMin {
		return HoldMin
	}
	return d
}
