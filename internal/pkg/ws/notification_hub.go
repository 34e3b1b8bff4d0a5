package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// NotificationHub fans events out to websocket listeners grouped by topic.
type NotificationHub struct {
	registrationMutex sync.Mutex
	listeners         map[string][]*websocket.Conn
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		listeners: make(map[string][]*websocket.Conn),
	}
}

func (hub *NotificationHub) RegisterListener(topic string, conn *websocket.Conn) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	hub.listeners[topic] = append(hub.listeners[topic], conn)
}

func (hub *NotificationHub) UnregisterListener(topic string, conn *websocket.Conn) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	remaining := hub.listeners[topic][:0]
	for _, listener := range hub.listeners[topic] {
		if listener != conn {
			remaining = append(remaining, listener)
		}
	}

	if len(remaining) == 0 {
		delete(hub.listeners, topic)
		return
	}
	hub.listeners[topic] = remaining
}

// Publish writes the event to every listener of the topic. Write failures
// are ignored, a broken connection unregisters itself from its read loop.
func (hub *NotificationHub) Publish(topic string, event any) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	for _, listener := range hub.listeners[topic] {
		_ = listener.WriteJSON(event)
	}
}

// ListenerCount reports how many connections are subscribed to the topic.
func (hub *NotificationHub) ListenerCount(topic string) int {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()
	return len(hub.listeners[topic])
}
