package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/config"
	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/services"
)

// CreateEvent registers a new event
func CreateEvent(c *gin.Context) {
	var req struct {
		Name string     `json:"name" binding:"required"`
		Date *time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := models.Event{Name: req.Name, Date: time.Now()}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListEvents returns all events, newest first
func ListEvents(c *gin.Context) {
	var events []models.Event
	config.DB.Order("date DESC").Find(&events)
	c.JSON(http.StatusOK, events)
}

// GetEvent returns one event with its games in position order
func GetEvent(c *gin.Context) {
	id := eventID(c)
	var event models.Event
	if err := config.DB.Preload("Games", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&event, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// ResetAllDraws clears the draws of every game of the event
func ResetAllDraws(c *gin.Context) {
	id := eventID(c)
	if err := services.Draws.ClearAllForEvent(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ResetAllWinners removes every winner of the event and unblocks their cards
func ResetAllWinners(c *gin.Context) {
	id := eventID(c)
	if err := services.Winners.ClearAllForEvent(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UnassignAllPlayers detaches every card of the event from its player
func UnassignAllPlayers(c *gin.Context) {
	id := eventID(c)
	if err := services.Cards.UnassignAllPlayers(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExportWinners streams the winners CSV for the event
func ExportWinners(c *gin.Context) {
	id := eventID(c)
	body, filename, err := services.Export.WinnersCSV(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", body)
}

func eventID(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id)
}
