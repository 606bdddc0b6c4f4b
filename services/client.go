package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/acarlier/loto-backend/utils/logger"
)

// Client is one connected display. Displays are read-only subscribers: the
// read pump only drains control frames and detects disconnects.
type Client struct {
	id      uuid.UUID
	eventID uint
	conn    *websocket.Conn
	hub     *Hub
	send    chan []byte
	once    sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[client %s] disconnected", c.id)
			} else {
				logger.Warnf("[client %s] read error: %v", c.id, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Warnf("[client %s] write error: %v", c.id, err)
			return
		}
	}
}
