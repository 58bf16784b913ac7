package stream_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func dialTestHub(t *testing.T, bus *eventbus.Bus) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := stream.NewHub(bus, zap.NewNop())
	r := gin.New()
	r.GET("/ws/events", hub.ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_StreamsBusEventsToClient(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	conn := dialTestHub(t, bus)

	// The subscription is registered during the upgrade handler, before
	// the dial returns a connection, so this publish is observable.
	assert.Eventually(t, func() bool {
		return bus.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	bus.Publish(events.New(events.NoticePayload{Level: "info", Message: "deploy finished"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	assert.NoError(t, err)

	var got struct {
		Kind    string `json:"kind"`
		Payload struct {
			Level   string `json:"level"`
			Message string `json:"message"`
		} `json:"payload"`
	}
	assert.NoError(t, json.Unmarshal(frame, &got))
	assert.Equal(t, string(events.KindSystemNotification), got.Kind)
	assert.Equal(t, "deploy finished", got.Payload.Message)
}

func TestHub_UnsubscribesOnDisconnect(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	conn := dialTestHub(t, bus)

	assert.Eventually(t, func() bool {
		return bus.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool {
		return bus.SubscriberCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
