// Package session holds runtime state for the active controller.
package session

import "sync"

// Capture steps for calibration clicks. Each step consumes exactly one
// click, updates one calibration field and ends capture mode.
const (
	StepCenter        = "center"
	StepAnchorUp      = "anchor_up"
	StepAnchorDown    = "anchor_down"
	StepAnchorLeft    = "anchor_left"
	StepAnchorRight   = "anchor_right"
	StepDiagonalUR    = "diagonal_ur"
	StepDiagonalDR    = "diagonal_dr"
	StepDiagonalDL    = "diagonal_dl"
	StepDiagonalUL    = "diagonal_ul"
	StepCancelTarget  = "cancel_target"
	StepEllipseNorth  = "ellipse_north"
	StepEllipseSouth  = "ellipse_south"
	StepEllipseWest   = "ellipse_west"
	StepEllipseEast   = "ellipse_east"
	StepEllipseCenter = "ellipse_center"
)

// ValidStep reports whether the named capture step exists.
func ValidStep(step string) bool {
	switch step {
	case StepCenter, StepAnchorUp, StepAnchorDown, StepAnchorLeft, StepAnchorRight,
		StepDiagonalUR, StepDiagonalDR, StepDiagonalDL, StepDiagonalUL,
		StepCancelTarget,
		StepEllipseNorth, StepEllipseSouth, StepEllipseWest, StepEllipseEast, StepEllipseCenter:
		return true
	}
	return false
}

// Capture identifies the widget and field a calibration click will set.
type Capture struct {
	WidgetID string
	Step     string
}

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	InputEnabled bool
	Capture      *Capture
	TuningWidget string
}

// Session holds runtime state for the active controller.
type Session struct {
	mu           sync.RWMutex
	inputEnabled bool
	capture      *Capture
	tuningWidget string
}

// New returns an initialized session with input forwarding enabled.
func New() *Session {
	return &Session{inputEnabled: true}
}

// SetInputEnabled toggles whether pointer events reach the gesture machines.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether pointer events reach the gesture machines.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// BeginCapture arms capture mode for one widget field. It rejects unknown
// steps and reports whether capture was armed.
func (s *Session) BeginCapture(widgetID, step string) bool {
	if !ValidStep(step) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capture = &Capture{WidgetID: widgetID, Step: step}
	return true
}

// EndCapture leaves capture mode.
func (s *Session) EndCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capture = nil
}

// Capture returns the armed capture target, or nil when not capturing.
func (s *Session) Capture() *Capture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.capture == nil {
		return nil
	}
	c := *s.capture
	return &c
}

// SetTuningWidget records which widget is showing its tuning overlay. An
// empty id means no widget is being tuned.
func (s *Session) SetTuningWidget(widgetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tuningWidget = widgetID
}

// TuningWidget returns the widget currently being tuned.
func (s *Session) TuningWidget() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tuningWidget
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		InputEnabled: s.inputEnabled,
		TuningWidget: s.tuningWidget,
	}
	if s.capture != nil {
		c := *s.capture
		snap.Capture = &c
	}
	return snap
}
