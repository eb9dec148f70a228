package preview

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubNoClients(t *testing.T) {
	h := NewHub()
	h.NotifyMounted("#root", "<p></p>")
	h.NotifyReload()
	h.NotifyError("boom")
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", h.ClientCount())
	}
	h.Close()
}

func TestHubBroadcastAndClose(t *testing.T) {
	h := NewHub()
	ts := httptest.NewServer(h)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	var conns []*websocket.Conn
	for i := 0; i < 2; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()
		conns = append(conns, conn)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want 2", h.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.NotifyReload()
	for _, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != MessageReload {
			t.Errorf("Type = %q, want reload", msg.Type)
		}
	}

	h.Close()
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount() after Close = %d", h.ClientCount())
	}
}

func TestHubBroadcastAfterClose(t *testing.T) {
	h := NewHub()
	h.Close()
	h.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 2*queueSize; i++ {
			h.NotifyReload()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked after Close")
	}
}
