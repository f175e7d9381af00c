package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/automate-backend/internal/platform/logger"
)

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubOrderingAndClose(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	channel := UserChannel(7)

	client := hub.NewSSEClient()
	hub.AddChannel(client, channel)
	if hub.Subscribers(channel) != 1 {
		t.Fatalf("expected one subscriber")
	}

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventNotificationCreated, Data: map[string]any{"seq": 1}})
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventBookingApproved, Data: map[string]any{"seq": 2}})
	hub.Broadcast(SSEMessage{Channel: UserChannel(8), Event: SSEEventBookingApproved})

	if got := recvMessage(t, client.Outbound, time.Second); got.Event != SSEEventNotificationCreated {
		t.Fatalf("first event: got %s", got.Event)
	}
	if got := recvMessage(t, client.Outbound, time.Second); got.Event != SSEEventBookingApproved {
		t.Fatalf("second event: got %s", got.Event)
	}

	hub.CloseClient(client)
	hub.CloseClient(client)
	if _, ok := <-client.Outbound; ok {
		t.Fatalf("outbound should be closed after CloseClient")
	}
	if hub.Subscribers(channel) != 0 {
		t.Fatalf("client still subscribed after close")
	}
	// Broadcasting to a channel with no subscribers is a no-op.
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventNotificationCreated})
}

func TestSSEHubServeHTTPWritesEvents(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	client := hub.NewSSEClient()
	hub.AddChannel(client, AdminChannel)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		hub.ServeHTTP(rec, req, client)
		close(done)
	}()

	hub.Broadcast(SSEMessage{Channel: AdminChannel, Event: SSEEventBookingCreated, Data: map[string]any{"id": 3}})
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event: BookingCreated") || !strings.Contains(body, `"id":3`) {
		t.Fatalf("unexpected stream body: %q", body)
	}
	if rec.Header().Get("Content-Type") != "text/event-stream" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}
