// Package touch formats and emits touch events toward the remote transport.
package touch

// Action identifies the kind of touch event.
type Action string

const (
	// ActionDown presses a pointer onto the surface.
	ActionDown Action = "down"
	// ActionMove drags a pressed pointer.
	ActionMove Action = "move"
	// ActionUp lifts a pointer off the surface.
	ActionUp Action = "up"
)

// ButtonPrimary is the primary button bit carried on DOWN and MOVE events.
const ButtonPrimary uint32 = 1

// Event is one touch event addressed to the remote surface.
type Event struct {
	Action    Action  `json:"action"`
	PointerID int     `json:"pointerId"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	SurfaceW  int     `json:"surfaceW"`
	SurfaceH  int     `json:"surfaceH"`
	Pressure  float64 `json:"pressure"`
	Buttons   uint32  `json:"buttons"`
}

// Sink consumes formatted touch events.
type Sink interface {
	Emit(Event) error
}
