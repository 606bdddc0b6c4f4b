package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acarlier/loto-backend/services"
)

// CreateCard registers a single card for an event
func CreateCard(c *gin.Context) {
	var req struct {
		EventID   uint    `json:"event_id" binding:"required"`
		Reference string  `json:"reference" binding:"required"`
		Grid      [][]int `json:"grid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := services.Cards.Create(req.EventID, req.Reference, req.Grid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// ListCards returns the cards of an event
func ListCards(c *gin.Context) {
	id := eventID(c)
	cards, err := services.Cards.ByEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ImportCards loads cards from an uploaded CSV file
// (cardRef,line1,line2,line3 with space-separated numbers per line)
func ImportCards(c *gin.Context) {
	id := eventID(c)
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing CSV file"})
		return
	}
	defer file.Close()

	summary, err := services.Cards.ImportCSV(id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AssignCardPlayer attaches a card to a player (or detaches with a null
// player_id)
func AssignCardPlayer(c *gin.Context) {
	cardID, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var req struct {
		PlayerID *uint `json:"player_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.Cards.AssignPlayer(uint(cardID), req.PlayerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
