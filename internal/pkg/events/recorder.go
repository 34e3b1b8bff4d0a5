package events

import (
	"github.com/trailmark/trailmark-backend/internal/pkg/pubsub"
	"github.com/trailmark/trailmark-backend/internal/pkg/ws"
)

// NotificationsTopic is the websocket hub topic every domain event is
// broadcast on.
const NotificationsTopic = "notifications"

// Recorder is the single write path for domain events: it appends to the
// log that feeds the SSE stream, pushes to connected websocket listeners
// and optionally mirrors to Google Cloud Pub/Sub.
type Recorder struct {
	log            *Log
	hub            *ws.NotificationHub
	mirrorToPubSub bool
}

func NewRecorder(log *Log, hub *ws.NotificationHub, mirrorToPubSub bool) *Recorder {
	return &Recorder{
		log:            log,
		hub:            hub,
		mirrorToPubSub: mirrorToPubSub,
	}
}

// Record appends the event and fans it out. Returns the log length after
// the append.
func (r *Recorder) Record(event Event) int {
	index := r.log.Append(event)

	if r.hub != nil {
		r.hub.Publish(NotificationsTopic, event)
	}
	if r.mirrorToPubSub {
		pubsub.Publish(event)
	}
	return index
}
