// Package overlay carries fire-and-forget notifications toward the
// calibration-guide renderer. The core never draws pixels itself.
package overlay

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// WSForwarder streams bus notices as JSON to websocket subscribers, one
// bus subscription per connection. Notices published while nobody is
// connected are dropped, matching the fire-and-forget contract.
type WSForwarder struct {
	bus      *Bus
	upgrader websocket.Upgrader
}

// NewWSForwarder creates a forwarder over the given bus.
func NewWSForwarder(bus *Bus) *WSForwarder {
	return &WSForwarder{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and forwards notices until the peer
// disconnects.
func (f *WSForwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so notices published right
	// after the client connects are already buffered.
	notices, cancel := f.bus.Subscribe(16)
	defer cancel()
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	log.WithField("remote", r.RemoteAddr).Info("overlay subscriber connected")

	// Drain reads so close/ping control frames are processed and the
	// writer learns about a disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case n := <-notices:
			if err := conn.WriteJSON(n); err != nil {
				log.Info("overlay subscriber disconnected")
				return
			}
		case <-done:
			log.Info("overlay subscriber disconnected")
			return
		}
	}
}
