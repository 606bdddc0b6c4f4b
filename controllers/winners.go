package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acarlier/loto-backend/services"
)

// ValidateWinner confirms a system-detected winner for a frozen game. The
// card must still be a potential winner under the current rule when the
// operator confirms it.
func ValidateWinner(c *gin.Context) {
	id := gameID(c)
	var req struct {
		CardID uint `json:"card_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card"})
		return
	}

	game, err := gameWithDraws(id)
	if err != nil {
		respondError(c, err)
		return
	}
	cards, err := services.Cards.ByEvent(game.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	isPotential := false
	for _, p := range services.Detection.FindPotentialWinners(game, cards) {
		if p.Card.ID == req.CardID {
			isPotential = true
			break
		}
	}
	if !isPotential {
		c.JSON(http.StatusConflict, gin.H{"error": "Card does not meet the rule conditions"})
		return
	}

	winner, err := services.Winners.ValidateSystemWinner(id, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusCreated, winner)
}

// AddOfflineWinner records a manually entered winner, freezing the game if
// needed
func AddOfflineWinner(c *gin.Context) {
	id := gameID(c)
	var req struct {
		Reference string `json:"reference" binding:"required"`
		CardID    *uint  `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	winner, err := services.Winners.ValidateOfflineWinner(id, req.Reference, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusCreated, winner)
}

// ListWinners returns the winners of a game
func ListWinners(c *gin.Context) {
	id := gameID(c)
	winners, err := services.Winners.ByGame(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}
