// Package control handles the websocket input protocol and widget dispatch.
package control

import "github.com/frudas24/joybridge/internal/geometry"

// Widget is the gesture surface every interactive widget exposes.
type Widget interface {
	ID() string
	Press(pointer geometry.Point)
	Motion(pointer geometry.Point)
	Release()
	Cancel()
}

// CancelCaster is implemented by widgets that honor the cancel-casting
// interrupt.
type CancelCaster interface {
	CancelCast(target geometry.Point)
}

// Calibratable is implemented by widgets that consume capture clicks. The
// click updates exactly one calibration field; a false return means the
// click was rejected and nothing changed.
type Calibratable interface {
	CalibClick(step string, pointer geometry.Point) bool
}

// Tunable is implemented by widgets whose calibration fields can be set
// directly by key. A false return means the value was rejected.
type Tunable interface {
	Set(key, value string) bool
}
