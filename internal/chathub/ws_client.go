package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"fourkara/backend/internal/config"
	"fourkara/backend/internal/models"

	"github.com/gorilla/websocket"
)

// WebSocketClient implements the Client interface over a gorilla
// websocket connection.
type WebSocketClient struct {
	UserID uint
	JobID  uint
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan models.Frame

	closeOnce sync.Once
}

func (c *WebSocketClient) GetUserID() uint { return c.UserID }

func (c *WebSocketClient) GetJobID() uint { return c.JobID }

func (c *WebSocketClient) GetSendChannel() chan<- models.Frame { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts down the outbound side; the write pump sends a close frame
// and exits, which in turn ends the read pump. Safe to call from the hub
// and from pump teardown concurrently.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump reads inbound frames and forwards well-formed, non-empty
// message bodies to the job group. Malformed frames and empty bodies are
// dropped without closing the connection. Leaving the group is
// unconditional on exit, abrupt disconnects included.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from chat socket (user %d, job %d): %v", c.UserID, c.JobID, err)
			}
			break
		}

		var frame models.InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("invalid JSON from user %d on job %d, dropping", c.UserID, c.JobID)
			continue
		}
		if frame.Message == "" {
			// Missing or empty message field: silent no-op.
			continue
		}

		c.Hub.Forward(c, frame.Message)
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// Channel closed by the hub.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(frame)
			if err != nil {
				log.Printf("error encoding frame for user %d: %v", c.UserID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
