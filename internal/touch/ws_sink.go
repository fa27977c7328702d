// Package touch formats and emits touch events toward the remote transport.
package touch

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// WSSink delivers touch events as JSON to a single websocket subscriber,
// typically the agent running on the remote touchscreen device. Events
// emitted while no subscriber is connected are dropped.
type WSSink struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	conn     *websocket.Conn
}

// NewWSSink creates an unconnected websocket sink.
func NewWSSink() *WSSink {
	return &WSSink{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and holds it until the peer disconnects.
// A new subscriber replaces the previous one.
func (s *WSSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn
	s.mu.Unlock()
	log.Info("touch sink subscriber connected")

	// Drain reads so close/ping control frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	log.Info("touch sink subscriber disconnected")
}

// Emit sends one event to the connected subscriber, dropping it when none
// is attached.
func (s *WSSink) Emit(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(ev); err != nil {
		_ = s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
