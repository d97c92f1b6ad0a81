package realtime

import (
	"sync/atomic"
	"time"

	"church-checkin-go/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

var clientIDCounter atomic.Uint64

// Client is the middleman between one websocket connection and the hub. It
// holds the authenticated identity established at upgrade time.
type Client struct {
	id       uint64
	hub      *Hub
	conn     *websocket.Conn
	send     chan Event
	userID   string
	personID *string
	log      logger.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, userID string, personID *string, log logger.Logger) *Client {
	return &Client{
		id:       clientIDCounter.Add(1),
		hub:      hub,
		conn:     conn,
		send:     make(chan Event, 64),
		userID:   userID,
		personID: personID,
		log:      log,
	}
}

// Send queues an event for delivery, dropping it if the client is too slow.
// The send happens under the hub's read lock so it cannot interleave with
// unregister closing the channel; a client that already disconnected is
// skipped.
func (c *Client) Send(event Event) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- event:
	default:
		c.log.Warn("realtime: dropping event for slow client", "event", event.Event, "user_id", c.userID)
	}
}

func (c *Client) readPump(onEvent func(*Client, Event)) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error("realtime: set read deadline failed", "err", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var event Event
		if err := c.conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("realtime: unexpected close", "err", err, "user_id", c.userID)
			}
			return
		}
		onEvent(c, event)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) start(onEvent func(*Client, Event)) {
	go c.writePump()
	go c.readPump(onEvent)
}
