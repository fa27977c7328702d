// Package app wires configuration, widgets, and the control plane together.
package app

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/frudas24/joybridge/internal/calib"
	"github.com/frudas24/joybridge/internal/config"
	"github.com/frudas24/joybridge/internal/control"
	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/gesture"
	"github.com/frudas24/joybridge/internal/overlay"
	"github.com/frudas24/joybridge/internal/pointerid"
	"github.com/frudas24/joybridge/internal/session"
	"github.com/frudas24/joybridge/internal/touch"
)

// WidgetWalk and WidgetSkill are the two interactive widget ids.
const (
	WidgetWalk  = "walk"
	WidgetSkill = "skill"
)

// App coordinates the calibration store, widgets, and websocket servers.
type App struct {
	cfg     config.Config
	store   *calib.Store
	session *session.Session
	bus     *overlay.Bus
	sink    *touch.WSSink
	emitter *touch.Emitter
	ids     *pointerid.Allocator
	walk    *Widget
	skill   *Widget
	control *control.Server
}

// New creates the application with its dependencies wired. The calibration
// store is loaded before any widget processes input, so restored profiles
// never race a gesture.
func New(cfg config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		store:   calib.NewStore(cfg.ProfilePath),
		session: session.New(),
		bus:     overlay.NewBus(),
		sink:    touch.NewWSSink(),
		ids:     pointerid.NewAllocator(),
	}
	a.emitter = touch.NewEmitter(a.sink, cfg.RemoteWidth, cfg.RemoteHeight)

	stepInterval := time.Duration(cfg.StepIntervalMs) * time.Millisecond
	a.walk = NewWalkWidget(WidgetWalk, a.store, a.emitter, a.ids, gesture.TimerScheduler{}, gesture.WalkConfig{
		MoveSteps:    cfg.MoveSteps,
		StepInterval: stepInterval,
		LongPress:    time.Duration(cfg.LongPressMs) * time.Millisecond,
	}, geometry.Point{X: float64(cfg.WalkCenterX), Y: float64(cfg.WalkCenterY)}, float64(cfg.WalkRadius))

	a.skill = NewSkillWidget(WidgetSkill, a.store, a.emitter, a.ids, gesture.SkillConfig{
		MoveSteps:    cfg.MoveSteps,
		StepInterval: stepInterval,
	}, geometry.Point{X: float64(cfg.SkillCenterX), Y: float64(cfg.SkillCenterY)}, float64(cfg.SkillRadius))

	a.store.Subscribe(a.onCalibChange)
	if err := a.store.Load(); err != nil {
		return nil, err
	}

	a.control = control.NewServer(a.session, a.bus, []control.Widget{a.walk, a.skill})
	a.bus.Publish(overlay.Notice{WidgetID: WidgetWalk, Action: overlay.ActionRegister})
	a.bus.Publish(overlay.Notice{WidgetID: WidgetSkill, Action: overlay.ActionRegister})
	return a, nil
}

// onCalibChange invalidates the affected widget's mapper. Restored values
// rebuild the mapper like user edits do, but trigger no overlay traffic.
func (a *App) onCalibChange(widgetID, field string, origin calib.Origin) {
	switch widgetID {
	case WidgetWalk:
		if a.walk != nil {
			a.walk.Invalidate()
		}
	case WidgetSkill:
		if a.skill != nil {
			a.skill.Invalidate()
		}
	}
	log.WithFields(log.Fields{
		"widget": widgetID,
		"field":  field,
		"origin": origin.String(),
	}).Debug("calibration changed")
}

// Save persists the calibration profiles.
func (a *App) Save() error {
	return a.store.Save()
}

// Overlay exposes the overlay notice bus.
func (a *App) Overlay() *overlay.Bus {
	return a.bus
}

// Close cancels in-flight gestures, stops the skill consumer, and persists
// the profiles.
func (a *App) Close() error {
	a.walk.Close()
	a.skill.Close()
	a.bus.Publish(overlay.Notice{WidgetID: WidgetWalk, Action: overlay.ActionUnregister})
	a.bus.Publish(overlay.Notice{WidgetID: WidgetSkill, Action: overlay.ActionUnregister})
	return a.store.Save()
}

// RegisterRoutes wires the websocket and API handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/ws/control", a.control)
	mux.Handle("/ws/events", a.sink)
	mux.Handle("/ws/overlay", overlay.NewWSForwarder(a.bus))
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/profiles", a.handleProfiles)
}

type widgetState struct {
	ID      string  `json:"id"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

type captureState struct {
	Widget string `json:"widget"`
	Step   string `json:"step"`
}

type stateResponse struct {
	InputEnabled bool          `json:"inputEnabled"`
	Capture      *captureState `json:"capture,omitempty"`
	TuningWidget string        `json:"tuningWidget,omitempty"`
	SurfaceW     int           `json:"surfaceW"`
	SurfaceH     int           `json:"surfaceH"`
	Widgets      []widgetState `json:"widgets"`
}

// handleState returns runtime state for the controller UI.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	snap := a.session.Snapshot()
	resp := stateResponse{
		InputEnabled: snap.InputEnabled,
		TuningWidget: snap.TuningWidget,
		SurfaceW:     a.cfg.RemoteWidth,
		SurfaceH:     a.cfg.RemoteHeight,
		Widgets: []widgetState{
			{ID: WidgetWalk, CenterX: a.walk.center.X, CenterY: a.walk.center.Y, Radius: a.walk.radius},
			{ID: WidgetSkill, CenterX: a.skill.center.X, CenterY: a.skill.center.Y, Radius: a.skill.radius},
		},
	}
	if snap.Capture != nil {
		resp.Capture = &captureState{Widget: snap.Capture.WidgetID, Step: snap.Capture.Step}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleProfiles returns the calibration profile of every widget.
func (a *App) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles := map[string]calib.Calibration{
		WidgetWalk:  a.store.Get(WidgetWalk),
		WidgetSkill: a.store.Get(WidgetSkill),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profiles)
}
