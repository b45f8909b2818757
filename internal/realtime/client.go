package realtime

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// Client is one live websocket session for a user.
type Client struct {
	ID          string
	UserID      string
	ConnectedAt time.Time

	conn *websocket.Conn
	Send chan []byte

	closeOnce sync.Once
}

func NewClient(id, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:          id,
		UserID:      userID,
		ConnectedAt: time.Now(),
		conn:        conn,
		Send:        make(chan []byte, 256),
	}
}

// push queues an outbound frame. A slow client with a full buffer
// loses the frame; it recovers state from storage on reconnect.
func (c *Client) push(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// WritePump drains the send channel onto the socket and keeps the
// connection alive with pings. Runs in its own goroutine per client.
func (c *Client) WritePump(pingInterval, writeDeadline time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
