package services

import (
	"testing"

	"github.com/google/uuid"
)

// registerTestClient puts a client into the hub without spawning pumps, so
// tests can control its send channel directly.
func registerTestClient(h *Hub, eventID uint, buffer int) *Client {
	c := &Client{
		id:      uuid.New(),
		eventID: eventID,
		hub:     h,
		send:    make(chan []byte, buffer),
	}
	h.mu.Lock()
	if h.clients[eventID] == nil {
		h.clients[eventID] = make(map[*Client]bool)
	}
	h.clients[eventID][c] = true
	h.mu.Unlock()
	return c
}

func TestPublishSurvivesClosedClientChannel(t *testing.T) {
	hub := NewHub()
	gone := registerTestClient(hub, 1, 1)
	alive := registerTestClient(hub, 1, 1)

	// The client disconnected between the hub snapshot and the send.
	close(gone.send)

	hub.Publish(1, PublicTopic(1), map[string]string{"status": "ok"})

	// The remaining client still receives the frame.
	select {
	case msg := <-alive.send:
		if len(msg) == 0 {
			t.Error("empty frame delivered")
		}
	default:
		t.Error("connected client missed the frame")
	}
}

func TestPublishDropsFrameWhenBufferFull(t *testing.T) {
	hub := NewHub()
	slow := registerTestClient(hub, 1, 1)
	slow.send <- []byte("stale")

	hub.Publish(1, PublicTopic(1), map[string]string{"status": "ok"})

	if got := len(slow.send); got != 1 {
		t.Errorf("buffered frames = %d, want 1 (new frame dropped)", got)
	}
}
