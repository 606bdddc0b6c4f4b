package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/acarlier/loto-backend/config"
	"github.com/acarlier/loto-backend/models"
)

// setupTestDB creates an in-memory database and wires the services to it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	Init(db)
	return db
}

func createEvent(t *testing.T, db *gorm.DB) models.Event {
	t.Helper()
	event := models.Event{Name: "Test event", Date: time.Now()}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return event
}

func createGame(t *testing.T, db *gorm.DB, eventID uint, position int, rule models.RuleType, status models.GameStatus) models.Game {
	t.Helper()
	game := models.Game{
		EventID:  eventID,
		Position: position,
		Rule:     rule,
		Prize:    "Test prize",
		Status:   status,
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return game
}

func createCard(t *testing.T, db *gorm.DB, eventID uint, reference string, grid [][]int) models.Card {
	t.Helper()
	card := models.Card{EventID: eventID, Reference: reference}
	if err := card.SetGrid(grid); err != nil {
		t.Fatalf("Failed to encode grid: %v", err)
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	return card
}

// scenarioGrid is a card whose first row wins a quine after five calls.
func scenarioGrid() [][]int {
	return [][]int{
		{5, 15, 23, 45, 67},
		{8, 12, 34, 56, 78},
		{2, 18, 29, 43, 89},
	}
}

func toggleAll(t *testing.T, gameID uint, numbers ...int) ToggleResult {
	t.Helper()
	var res ToggleResult
	var err error
	for _, n := range numbers {
		res, err = Draws.Toggle(gameID, n)
		if err != nil {
			t.Fatalf("Toggle(%d) failed: %v", n, err)
		}
	}
	return res
}

func reloadGame(t *testing.T, db *gorm.DB, gameID uint) models.Game {
	t.Helper()
	var game models.Game
	if err := db.Preload("Draws").First(&game, gameID).Error; err != nil {
		t.Fatalf("Failed to reload game %d: %v", gameID, err)
	}
	return game
}

func reloadCard(t *testing.T, db *gorm.DB, cardID uint) models.Card {
	t.Helper()
	var card models.Card
	if err := db.First(&card, cardID).Error; err != nil {
		t.Fatalf("Failed to reload card %d: %v", cardID, err)
	}
	return card
}
