// Package touch formats and emits touch events toward the remote transport.
package touch

import (
	"math"

	"github.com/frudas24/joybridge/internal/geometry"
	log "github.com/sirupsen/logrus"
)

// Emitter binds the remote surface size to a sink and applies the event
// field semantics: pressure is 1.0 except on UP, and the primary button is
// set except on UP.
type Emitter struct {
	sink     Sink
	surfaceW int
	surfaceH int
}

// NewEmitter creates an emitter for the given surface size.
func NewEmitter(sink Sink, surfaceW, surfaceH int) *Emitter {
	return &Emitter{sink: sink, surfaceW: surfaceW, surfaceH: surfaceH}
}

// SurfaceSize returns the remote surface dimensions.
func (e *Emitter) SurfaceSize() (int, int) {
	return e.surfaceW, e.surfaceH
}

// Emit formats and sends one touch event at the given position.
func (e *Emitter) Emit(action Action, pointerID int, pos geometry.Point) error {
	pressure := 1.0
	buttons := ButtonPrimary
	if action == ActionUp {
		pressure = 0
		buttons = 0
	}

	ev := Event{
		Action:    action,
		PointerID: pointerID,
		X:         int(math.Round(pos.X)),
		Y:         int(math.Round(pos.Y)),
		SurfaceW:  e.surfaceW,
		SurfaceH:  e.surfaceH,
		Pressure:  pressure,
		Buttons:   buttons,
	}
	if err := e.sink.Emit(ev); err != nil {
		log.WithFields(log.Fields{"action": action, "pointer": pointerID}).
			Warnf("touch emit failed: %v", err)
		return err
	}
	return nil
}
