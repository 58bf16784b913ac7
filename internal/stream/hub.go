package stream

import (
	"net/http"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// sendBuffer frames per connection; a dashboard that cannot keep up
	// loses frames rather than stalling the bus (at-most-once delivery).
	sendBuffer = 64
)

// Hub bridges the in-process bus to websocket dashboard clients. Each
// connection gets its own subscription and buffered send channel; the bus
// handler only enqueues, the writer goroutine does the slow network work.
type Hub struct {
	bus      *eventbus.Bus
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHub(bus *eventbus.Bus, logger ...*zap.Logger) *Hub {
	l := zap.L().Named("stream.hub")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stream.hub")
	}
	return &Hub{
		bus:    bus,
		logger: l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	userID := c.GetString("user_id")
	send := make(chan events.Event, sendBuffer)
	done := make(chan struct{})

	sub := h.bus.Subscribe(func(e events.Event) {
		select {
		case send <- e:
		default:
			h.logger.Warn("dashboard client too slow, frame dropped",
				zap.String("user_id", userID),
				zap.String("kind", string(e.Kind)),
			)
		}
	})

	h.logger.Info("dashboard client connected", zap.String("user_id", userID))

	go h.readLoop(conn, done)
	go h.writeLoop(conn, send, done, sub, userID)
}

// readLoop exists to observe the close handshake; inbound frames are
// ignored, the stream is one-way.
func (h *Hub) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(
	conn *websocket.Conn,
	send <-chan events.Event,
	done <-chan struct{},
	sub *eventbus.Subscription,
	userID string,
) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Unsubscribe()
		_ = conn.Close()
		h.logger.Info("dashboard client disconnected", zap.String("user_id", userID))
	}()

	for {
		select {
		case <-done:
			return
		case e := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				h.logger.Debug("websocket write failed",
					zap.String("user_id", userID),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
