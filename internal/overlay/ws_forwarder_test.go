package overlay

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// TestWSForwarder_DeliversNotices verifies a websocket client receives
// published notices as JSON.
func TestWSForwarder_DeliversNotices(t *testing.T) {
	bus := NewBus()
	srv := httptest.NewServer(NewWSForwarder(bus))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The subscription is created before the handshake reply, so a
	// notice published after a successful dial is always buffered.
	bus.Publish(Notice{WidgetID: "skill", Action: ActionTuneStart})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var got Notice
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.WidgetID != "skill" || got.Action != ActionTuneStart {
		t.Fatalf("unexpected notice %+v", got)
	}
}

// TestWSForwarder_RejectsPlainHTTP verifies non-websocket requests fail
// the upgrade instead of hanging.
func TestWSForwarder_RejectsPlainHTTP(t *testing.T) {
	bus := NewBus()
	rec := httptest.NewRecorder()
	NewWSForwarder(bus).ServeHTTP(rec, httptest.NewRequest("GET", "/ws/overlay", nil))
	if rec.Code == 101 {
		t.Fatalf("expected failed upgrade, got %d", rec.Code)
	}
}
