package notification

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/trailmark/trailmark-backend/internal/pkg/events"
	"github.com/trailmark/trailmark-backend/internal/pkg/utils"
	"github.com/trailmark/trailmark-backend/internal/pkg/ws"
)

const (
	defaultPollInterval  = 200 * time.Millisecond
	defaultKeepAliveWait = 15 * time.Second
)

type notificationHandler struct {
	eventLog *events.Log
	hub      *ws.NotificationHub

	pollInterval time.Duration
	// keepAliveTicks is the number of idle polls before a keep-alive
	// comment goes out.
	keepAliveTicks int
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func RegisterRoutes(rg *gin.RouterGroup, eventLog *events.Log, hub *ws.NotificationHub) {
	handler := notificationHandler{
		eventLog:       eventLog,
		hub:            hub,
		pollInterval:   defaultPollInterval,
		keepAliveTicks: int(defaultKeepAliveWait / defaultPollInterval),
	}

	rg.GET("/sse/notifications", handler.streamNotifications)
	rg.GET("/ws/notifications", handler.serveWs)
}

// streamNotifications holds the response open and replays events appended
// after subscribe time. The cursor starts at the current log length, so a
// reconnecting client never sees history. The loop ends only when the
// client goes away or the server shuts the connection down.
func (nh *notificationHandler) streamNotifications(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	cursor := nh.eventLog.Len()
	idleTicks := 0

	ticker := time.NewTicker(nh.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			unseen := nh.eventLog.ReadFrom(cursor)
			if len(unseen) == 0 {
				idleTicks++
				if idleTicks >= nh.keepAliveTicks {
					fmt.Fprint(c.Writer, ": keep alive\n\n")
					c.Writer.Flush()
					idleTicks = 0
				}
				continue
			}

			for _, event := range unseen {
				fmt.Fprintf(c.Writer, "event: %s\n", event.Type)
				fmt.Fprintf(c.Writer, "data: %s\n\n", utils.JsonEncode(event.Data))
			}
			c.Writer.Flush()

			cursor += len(unseen)
			idleTicks = 0
		}
	}
}

func (nh *notificationHandler) serveWs(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Error upgrading ws connection")
		return
	}
	defer conn.Close()

	nh.hub.RegisterListener(events.NotificationsTopic, conn)
	defer nh.hub.UnregisterListener(events.NotificationsTopic, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
