package services

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket subscribes a public display to an event's state topics.
// On connect the client immediately receives a snapshot of the running game,
// if any.
func HandleWebSocket(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	if err := database.First(&models.Event{}, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade error: %v", err)
		return
	}

	client := &Client{
		id:      uuid.New(),
		eventID: uint(eventID),
		conn:    conn,
		hub:     Realtime,
		send:    make(chan []byte, 32),
	}
	Realtime.addClient(client)

	if running, err := Games.RunningGameByEvent(uint(eventID)); err == nil && running != nil {
		PublishGameState(running.ID)
	}
}
