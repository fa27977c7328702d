// Package control handles the websocket input protocol and widget dispatch.
package control

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/overlay"
	"github.com/frudas24/joybridge/internal/session"
)

// Server handles websocket control input for the widget registry.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	overlay  *overlay.Bus
	widgets  map[string]Widget
	conn     *websocket.Conn
}

// NewServer creates a control websocket server over the given widgets.
func NewServer(sess *session.Session, bus *overlay.Bus, widgets []Widget) *Server {
	byID := make(map[string]Widget, len(widgets))
	for _, w := range widgets {
		byID[w.ID()] = w
	}
	return &Server{
		session: sess,
		overlay: bus,
		widgets: byID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)
	log.WithField("remote", r.RemoteAddr).Info("control connected")

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.handleMessage(msg)
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	log.Info("control disconnected")
}

// handleMessage dispatches a single control message. Invalid messages are
// silent no-ops.
func (s *Server) handleMessage(msg Message) {
	switch msg.T {
	case "press":
		s.handlePress(msg)
	case "motion":
		s.handleMotion(msg)
	case "release":
		s.handleRelease(msg)
	case "cancelCast":
		s.handleCancelCast(msg)
	case "capture":
		s.handleCapture(msg)
	case "calibClick":
		s.handleCalibClick(msg.Widget, msg.Step, geometry.Point{X: msg.X, Y: msg.Y})
	case "set":
		s.handleSet(msg)
	case "tune":
		s.handleTune(msg)
	case "inputEnabled":
		if msg.Enabled != nil {
			s.setInputEnabled(*msg.Enabled)
		}
	}
}

func (s *Server) handlePress(msg Message) {
	pos := geometry.Point{X: msg.X, Y: msg.Y}

	// A press while capture is armed is the calibration click.
	if c := s.session.Capture(); c != nil {
		s.handleCalibClick(c.WidgetID, c.Step, pos)
		return
	}
	if !s.session.InputEnabled() {
		return
	}
	if w, ok := s.widgets[msg.Widget]; ok {
		w.Press(pos)
	}
}

func (s *Server) handleMotion(msg Message) {
	if s.session.Capture() != nil || !s.session.InputEnabled() {
		return
	}
	if w, ok := s.widgets[msg.Widget]; ok {
		w.Motion(geometry.Point{X: msg.X, Y: msg.Y})
	}
}

func (s *Server) handleRelease(msg Message) {
	if s.session.Capture() != nil || !s.session.InputEnabled() {
		return
	}
	if w, ok := s.widgets[msg.Widget]; ok {
		w.Release()
	}
}

func (s *Server) handleCancelCast(msg Message) {
	if !s.session.InputEnabled() {
		return
	}
	w, ok := s.widgets[msg.Widget]
	if !ok {
		return
	}
	if cc, ok := w.(CancelCaster); ok {
		cc.CancelCast(geometry.Point{X: msg.X, Y: msg.Y})
	}
}

// handleCapture arms or disarms capture mode. An empty step disarms.
func (s *Server) handleCapture(msg Message) {
	if msg.Step == "" {
		s.session.EndCapture()
		s.publish(msg.Widget, overlay.ActionStop)
		return
	}
	if _, ok := s.widgets[msg.Widget]; !ok {
		return
	}
	if s.session.BeginCapture(msg.Widget, msg.Step) {
		s.publish(msg.Widget, overlay.ActionStart)
	}
}

// handleCalibClick consumes one capture click. Capture mode always ends,
// whether or not the click was accepted.
func (s *Server) handleCalibClick(widgetID, step string, pos geometry.Point) {
	s.session.EndCapture()
	w, ok := s.widgets[widgetID]
	if !ok {
		return
	}
	c, ok := w.(Calibratable)
	if !ok {
		return
	}
	if c.CalibClick(step, pos) {
		s.publish(widgetID, overlay.ActionRefresh)
	}
	s.publish(widgetID, overlay.ActionStop)
}

func (s *Server) handleSet(msg Message) {
	w, ok := s.widgets[msg.Widget]
	if !ok {
		return
	}
	t, ok := w.(Tunable)
	if !ok {
		return
	}
	if t.Set(msg.Key, msg.Value) {
		s.publish(msg.Widget, overlay.ActionRefresh)
	}
}

// handleTune toggles the tuning overlay. Ending the session drops any
// uncommitted staged gains; the client commits explicitly via
// set tune_commit before stopping.
func (s *Server) handleTune(msg Message) {
	w, ok := s.widgets[msg.Widget]
	if !ok {
		return
	}
	if msg.Enabled != nil && !*msg.Enabled {
		s.session.SetTuningWidget("")
		if t, ok := w.(Tunable); ok {
			t.Set("tune_discard", "")
		}
		s.publish(msg.Widget, overlay.ActionTuneStop)
		return
	}
	s.session.SetTuningWidget(msg.Widget)
	s.publish(msg.Widget, overlay.ActionTuneStart)
}

// setInputEnabled toggles forwarding. Disabling cancels every in-flight
// gesture so no pointer is left pressed on the remote surface.
func (s *Server) setInputEnabled(enabled bool) {
	s.session.SetInputEnabled(enabled)
	if enabled {
		return
	}
	for _, w := range s.widgets {
		w.Cancel()
	}
}

func (s *Server) publish(widgetID string, action overlay.Action) {
	if s.overlay != nil {
		s.overlay.Publish(overlay.Notice{WidgetID: widgetID, Action: action})
	}
}
