package main

import (
	"fmt"
	"time"

	"github.com/acarlier/loto-backend/config"
	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

// Seeds demo data: one event, three games, players and sample cards.
func main() {
	cfg := config.Load()
	db := config.SetupDatabase(cfg.DatabaseURL)

	event := models.Event{Name: "Loto Demo", Date: time.Now()}
	if err := db.Create(&event).Error; err != nil {
		logger.Log.Fatalf("Failed to create event: %v", err)
	}

	games := []models.Game{
		{EventID: event.ID, Position: 1, Rule: models.RuleQuine, Prize: "Gourmet basket", Status: models.StatusRunning},
		{EventID: event.ID, Position: 2, Rule: models.RuleDoubleQuine, Prize: "Hamper", Status: models.StatusPending},
		{EventID: event.ID, Position: 3, Rule: models.RuleFullCard, Prize: "Television", Status: models.StatusPending},
	}
	for i := range games {
		if err := db.Create(&games[i]).Error; err != nil {
			logger.Log.Fatalf("Failed to create game: %v", err)
		}
	}

	players := []models.Player{
		{Name: "Alice", Email: "alice@example.test", EventID: &event.ID},
		{Name: "Bob", Email: "bob@example.test", EventID: &event.ID},
		{Name: "Chloe", Email: "chloe@example.test", EventID: &event.ID},
	}
	for i := range players {
		if err := db.Create(&players[i]).Error; err != nil {
			logger.Log.Fatalf("Failed to create player: %v", err)
		}
	}

	grids := [][][]int{
		{{5, 15, 23, 45, 67}, {8, 12, 34, 56, 78}, {2, 18, 29, 43, 89}},
		{{1, 11, 21, 31, 41}, {51, 61, 71, 81, 90}, {3, 13, 33, 53, 73}},
		{{4, 14, 24, 44, 64}, {6, 16, 36, 46, 76}, {7, 17, 37, 57, 87}},
		{{9, 19, 39, 49, 79}, {10, 20, 40, 60, 80}, {22, 32, 42, 62, 82}},
		{{25, 35, 55, 65, 85}, {26, 27, 28, 38, 48}, {50, 52, 54, 58, 59}},
	}
	for i, grid := range grids {
		card := models.Card{EventID: event.ID, Reference: fmt.Sprintf("C%03d", i+1)}
		if err := card.SetGrid(grid); err != nil {
			logger.Log.Fatalf("Failed to encode grid: %v", err)
		}
		if i < len(players) {
			card.PlayerID = &players[i].ID
		}
		if err := db.Create(&card).Error; err != nil {
			logger.Log.Fatalf("Failed to create card: %v", err)
		}
	}

	logger.Infof("Seeded event %d with %d games, %d players, %d cards",
		event.ID, len(games), len(players), len(grids))
}
