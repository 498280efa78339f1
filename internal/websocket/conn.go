package websocket

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// Conn wraps a gorilla websocket connection.
type Conn struct {
	Conn *websocket.Conn
}

// ReadPump drains the connection. The change feed is one-way; client
// messages are discarded, but the pump is still required to process
// control frames and detect disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Conn.Close()
	}()

	c.Conn.Conn.SetReadLimit(maxMessageSize)
	c.Conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.Conn.SetPongHandler(func(string) error {
		c.Conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			break
		}
	}
}

// WritePump pushes queued events to the peer and keeps the connection
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.Conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
