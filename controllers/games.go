package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acarlier/loto-backend/config"
	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/services"
)

// CreateGame adds a game (round) to an event
func CreateGame(c *gin.Context) {
	var req struct {
		EventID  uint            `json:"event_id" binding:"required"`
		Position int             `json:"position"`
		Rule     models.RuleType `json:"rule" binding:"required"`
		Prize    string          `json:"prize"`
		HallOnly bool            `json:"hall_only"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Rule.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown rule"})
		return
	}
	if err := config.DB.First(&models.Event{}, req.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	game := models.Game{
		EventID:  req.EventID,
		Position: req.Position,
		Rule:     req.Rule,
		Prize:    req.Prize,
		Status:   models.StatusPending,
		HallOnly: req.HallOnly,
	}
	if err := config.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}
	c.JSON(http.StatusCreated, game)
}

// GetGame returns single game info with its draws
func GetGame(c *gin.Context) {
	id := gameID(c)
	payload, _, err := services.BuildGameState(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ToggleNumber calls or uncalls a number for the game and pushes the new
// state to the displays
func ToggleNumber(c *gin.Context) {
	id := gameID(c)
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid number"})
		return
	}

	result, err := services.Draws.Toggle(id, number)
	if err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusOK, result)
}

// StartGame sets the game running, demoting any other running game of the
// event
func StartGame(c *gin.Context) {
	id := gameID(c)
	game, err := services.Games.Start(id)
	if err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusOK, game)
}

// FinishGame marks the game finished
func FinishGame(c *gin.Context) {
	id := gameID(c)
	game, err := services.Games.Finish(id)
	if err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusOK, game)
}

// NextGame finishes this game and starts the next one, carrying draws forward
func NextGame(c *gin.Context) {
	id := gameID(c)
	next, err := services.Games.Next(id)
	if err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(next.ID)
	c.JSON(http.StatusOK, next)
}

// Demarque clears all draws and winners of the game
func Demarque(c *gin.Context) {
	id := gameID(c)
	if err := services.Draws.ClearAll(id); err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UnfreezeGame rejects the detected winner and resumes the game
func UnfreezeGame(c *gin.Context) {
	id := gameID(c)
	if err := services.Games.Unfreeze(id); err != nil {
		respondError(c, err)
		return
	}
	services.PublishGameState(id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReorderGames reassigns positions from an ordered list of game IDs
func ReorderGames(c *gin.Context) {
	var req struct {
		Order []uint `json:"order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err := services.Games.Reorder(req.Order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Potentials lists the cards currently satisfying the game's rule
func Potentials(c *gin.Context) {
	id := gameID(c)
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
	potentials := services.Detection.FindPotentialWinners(game, cards)
	c.JSON(http.StatusOK, gin.H{"potentials": potentials, "count": len(potentials)})
}

func gameID(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id)
}

func gameWithDraws(id uint) (*models.Game, error) {
	var game models.Game
	if err := config.DB.Preload("Draws").First(&game, id).Error; err != nil {
		return nil, services.ErrNotFound
	}
	return &game, nil
}
