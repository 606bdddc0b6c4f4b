package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acarlier/loto-backend/controllers"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Event routes
	// ----------------------
	api.POST("/events", controllers.CreateEvent)
	api.GET("/events", controllers.ListEvents)
	api.GET("/events/:id", controllers.GetEvent)
	api.POST("/events/:id/reset-draws", controllers.ResetAllDraws)
	api.POST("/events/:id/reset-winners", controllers.ResetAllWinners)
	api.POST("/events/:id/unassign-players", controllers.UnassignAllPlayers)
	api.GET("/events/:id/winners.csv", controllers.ExportWinners)

	// ----------------------
	// Game routes
	// ----------------------
	api.POST("/games", controllers.CreateGame)
	api.GET("/games/:id", controllers.GetGame)
	api.POST("/games/:id/toggle/:number", controllers.ToggleNumber)
	api.POST("/games/:id/start", controllers.StartGame)
	api.POST("/games/:id/finish", controllers.FinishGame)
	api.POST("/games/:id/next", controllers.NextGame)
	api.POST("/games/:id/demarque", controllers.Demarque)
	api.POST("/games/:id/unfreeze", controllers.UnfreezeGame)
	api.POST("/games/reorder", controllers.ReorderGames)
	api.GET("/games/:id/potentials", controllers.Potentials)

	// ----------------------
	// Winner routes
	// ----------------------
	api.POST("/games/:id/winners/validate", controllers.ValidateWinner)
	api.POST("/games/:id/winners/offline", controllers.AddOfflineWinner)
	api.GET("/games/:id/winners", controllers.ListWinners)

	// ----------------------
	// Card routes
	// ----------------------
	api.POST("/cards", controllers.CreateCard)
	api.GET("/events/:id/cards", controllers.ListCards)
	api.POST("/events/:id/cards/import", controllers.ImportCards)
	api.POST("/cards/:id/assign", controllers.AssignCardPlayer)

	// ----------------------
	// Player routes
	// ----------------------
	api.POST("/players", controllers.CreatePlayer)
	api.GET("/players/:id", controllers.GetPlayer)
	api.GET("/events/:id/players", controllers.ListPlayers)
}
