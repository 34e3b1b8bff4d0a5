package ws

import (
	"testing"

	"github.com/gorilla/websocket"
)

func TestRegisterAndUnregisterListener(t *testing.T) {
	hub := NewNotificationHub()
	first := &websocket.Conn{}
	second := &websocket.Conn{}

	hub.RegisterListener("notifications", first)
	hub.RegisterListener("notifications", second)
	if got := hub.ListenerCount("notifications"); got != 2 {
		t.Fatalf("listener count = %d, want 2", got)
	}

	hub.UnregisterListener("notifications", first)
	if got := hub.ListenerCount("notifications"); got != 1 {
		t.Errorf("listener count after unregister = %d, want 1", got)
	}

	hub.UnregisterListener("notifications", second)
	if got := hub.ListenerCount("notifications"); got != 0 {
		t.Errorf("listener count after last unregister = %d, want 0", got)
	}
}

func TestUnregisterKeepsOtherTopicsIntact(t *testing.T) {
	hub := NewNotificationHub()
	conn := &websocket.Conn{}

	hub.RegisterListener("notifications", conn)
	hub.RegisterListener("other", conn)

	hub.UnregisterListener("notifications", conn)
	if got := hub.ListenerCount("other"); got != 1 {
		t.Errorf("unrelated topic lost its listener, count = %d", got)
	}
}

func TestUnregisterUnknownListenerIsNoop(t *testing.T) {
	hub := NewNotificationHub()
	registered := &websocket.Conn{}
	stranger := &websocket.Conn{}

	hub.RegisterListener("notifications", registered)
	hub.UnregisterListener("notifications", stranger)

	if got := hub.ListenerCount("notifications"); got != 1 {
		t.Errorf("listener count = %d, want 1", got)
	}
}
