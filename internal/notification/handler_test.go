package notification

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trailmark/trailmark-backend/internal/pkg/events"
)

func streamUntilCancel(t *testing.T, handler *notificationHandler, run func(cancel context.CancelFunc)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	ctx, cancel := context.WithCancel(context.Background())
	c.Request = httptest.NewRequest("GET", "/sse/notifications", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.streamNotifications(c)
		close(done)
	}()

	run(cancel)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after context cancel")
	}
	return recorder.Body.String()
}

func TestStreamStartsAfterExistingEvents(t *testing.T) {
	eventLog := events.NewLog()
	eventLog.Append(events.NewBoardEvent(1, "Old board", "alice"))

	handler := &notificationHandler{
		eventLog:       eventLog,
		pollInterval:   5 * time.Millisecond,
		keepAliveTicks: 1000,
	}

	body := streamUntilCancel(t, handler, func(cancel context.CancelFunc) {
		time.Sleep(50 * time.Millisecond)
		cancel()
	})

	if strings.Contains(body, "event:") {
		t.Errorf("stream replayed history: %q", body)
	}
}

func TestStreamDeliversNewEvents(t *testing.T) {
	eventLog := events.NewLog()

	handler := &notificationHandler{
		eventLog:       eventLog,
		pollInterval:   5 * time.Millisecond,
		keepAliveTicks: 1000,
	}

	body := streamUntilCancel(t, handler, func(cancel context.CancelFunc) {
		time.Sleep(20 * time.Millisecond)
		eventLog.Append(events.NewPathEvent(7, 3, "Grid", "bob"))
		time.Sleep(50 * time.Millisecond)
		cancel()
	})

	if !strings.Contains(body, "event: newPath\n") {
		t.Errorf("event line missing from stream: %q", body)
	}
	if !strings.Contains(body, `"path_id":7`) || !strings.Contains(body, `"user_username":"bob"`) {
		t.Errorf("payload missing from stream: %q", body)
	}
	if !strings.Contains(body, "data: {") || !strings.Contains(body, "}\n\n") {
		t.Errorf("data framing malformed: %q", body)
	}
}

func TestStreamSendsKeepAliveWhenIdle(t *testing.T) {
	handler := &notificationHandler{
		eventLog:       events.NewLog(),
		pollInterval:   5 * time.Millisecond,
		keepAliveTicks: 2,
	}

	body := streamUntilCancel(t, handler, func(cancel context.CancelFunc) {
		time.Sleep(60 * time.Millisecond)
		cancel()
	})

	if !strings.Contains(body, ": keep alive\n\n") {
		t.Errorf("keep-alive comment missing: %q", body)
	}
}

func TestStreamDeliveryResetsKeepAliveCountdown(t *testing.T) {
	eventLog := events.NewLog()

	handler := &notificationHandler{
		eventLog:       eventLog,
		pollInterval:   10 * time.Millisecond,
		keepAliveTicks: 4,
	}

	body := streamUntilCancel(t, handler, func(cancel context.CancelFunc) {
		for i := 0; i < 3; i++ {
			time.Sleep(25 * time.Millisecond)
			eventLog.Append(events.NewBoardEvent(1, "Grid", "alice"))
		}
		time.Sleep(10 * time.Millisecond)
		cancel()
	})

	if strings.Contains(body, ": keep alive") {
		t.Errorf("keep-alive sent despite steady event traffic: %q", body)
	}
	if got := strings.Count(body, "event: newBoard\n"); got != 3 {
		t.Errorf("delivered %d events, want 3: %q", got, body)
	}
}
