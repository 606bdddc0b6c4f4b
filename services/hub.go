package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/acarlier/loto-backend/utils/logger"
)

// Envelope is the wire frame pushed to websocket subscribers. Topics scope
// payloads to a game or to the event-wide public display.
type Envelope struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}

func GameTopic(eventID, gameID uint) string {
	return fmt.Sprintf("/events/%d/games/%d/state", eventID, gameID)
}

func PublicTopic(eventID uint) string {
	return fmt.Sprintf("/events/%d/public", eventID)
}

// Hub fans state snapshots out to the display clients of each event.
// Delivery is best-effort: a client whose send buffer is full misses the
// frame and catches up on the next one.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]bool // eventID -> clients
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*Client]bool)}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	if h.clients[c.eventID] == nil {
		h.clients[c.eventID] = make(map[*Client]bool)
	}
	h.clients[c.eventID][c] = true
	total := len(h.clients[c.eventID])
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Infof("[event %d] client %s connected (total=%d)", c.eventID, c.id, total)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.eventID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.eventID)
		}
	}
	h.mu.Unlock()

	c.Close()
}

// Publish pushes data under topic to every client subscribed to the event.
func (h *Hub) Publish(eventID uint, topic string, data interface{}) {
	b, err := json.Marshal(Envelope{Topic: topic, Data: data})
	if err != nil {
		logger.Errorf("publish marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[eventID]))
	for c := range h.clients[eventID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		func(c *Client) {
			// A client can close its send channel between the snapshot
			// above and this send.
			defer func() {
				if r := recover(); r != nil {
					logger.Warnf("[event %d] recovered publish to client %s: %v", eventID, c.id, r)
				}
			}()
			select {
			case c.send <- b:
			default:
				logger.Warnf("[event %d] dropping frame for client %s", eventID, c.id)
			}
		}(c)
	}
}
