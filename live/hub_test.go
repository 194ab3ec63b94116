package live

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(NewClient(hub, conn, r.URL.Query().Get("room")))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?room=t1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize("t1") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom("other", EventMatchUpdated, "ignored")
	hub.BroadcastToRoom("t1", EventMatchUpdated, map[string]string{"id": "m1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		RoomID  string            `json:"room_id"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, EventMatchUpdated, msg.Type)
	assert.Equal(t, "t1", msg.RoomID)
	assert.Equal(t, "m1", msg.Payload["id"])

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.RoomSize("t1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NotPanics(t, func() {
		hub.BroadcastToRoom("nobody", EventBracketGenerated, nil)
	})
	assert.Zero(t, hub.RoomSize("nobody"))
}

func TestHub_DoesNotBlockAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	finished := make(chan struct{})
	go func() {
		hub.Register(NewClient(hub, nil, "t1"))
		hub.leave(NewClient(hub, nil, "t1"))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("register and unregister must return once the hub is stopped")
	}
	assert.Zero(t, hub.RoomSize("t1"))
}
