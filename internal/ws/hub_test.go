package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialTestHub(t, hub)

	// Registration races the broadcast; give the hub a beat to attach.
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast([]byte(`{"type":"refresh"}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"type":"refresh"}` {
		t.Errorf("got %q", msg)
	}
}

func TestHubBroadcastFanOut(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := dialTestHub(t, hub)
	b := dialTestHub(t, hub)

	time.Sleep(50 * time.Millisecond)
	hub.Broadcast([]byte("hello"))

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(msg) != "hello" {
			t.Errorf("got %q", msg)
		}
	}
}

func TestBroadcastOnNilHub(t *testing.T) {
	var hub *Hub
	hub.Broadcast([]byte("noop")) // must not panic
}
