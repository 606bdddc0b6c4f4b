package services

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/acarlier/loto-backend/models"
)

func TestWinnersCSV(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db)
	game := createGame(t, db, event.ID, 1, models.RuleQuine, models.StatusRunning)
	card := createCard(t, db, event.ID, "A001", scenarioGrid())

	player := models.Player{Name: "Alice", Phone: "0601020304", Email: "alice@example.test", EventID: &event.ID}
	if err := db.Create(&player).Error; err != nil {
		t.Fatal(err)
	}
	if err := Cards.AssignPlayer(card.ID, &player.ID); err != nil {
		t.Fatal(err)
	}

	toggleAll(t, game.ID, 5, 15, 23, 45, 67)
	if _, err := Winners.ValidateSystemWinner(game.ID, card.ID); err != nil {
		t.Fatal(err)
	}

	body, filename, err := Export.WinnersCSV(event.ID)
	if err != nil {
		t.Fatalf("WinnersCSV failed: %v", err)
	}
	if !strings.HasPrefix(filename, "winners_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q", filename)
	}

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1 winner", len(records))
	}

	row := records[1]
	if row[0] != "Game #1" {
		t.Errorf("game column = %q", row[0])
	}
	if row[1] != "quine" {
		t.Errorf("rule column = %q", row[1])
	}
	if row[3] != "6" { // winning order index 5, exported 1-based
		t.Errorf("winning order column = %q, want 6", row[3])
	}
	if row[4] != "A001" {
		t.Errorf("reference column = %q", row[4])
	}
	if row[5] != "Alice" || row[6] != "0601020304" || row[7] != "alice@example.test" {
		t.Errorf("player columns = %q %q %q", row[5], row[6], row[7])
	}
	if row[8] != "system" {
		t.Errorf("source column = %q", row[8])
	}
}

func TestWinnersCSVUnknownEvent(t *testing.T) {
	setupTestDB(t)
	if _, _, err := Export.WinnersCSV(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
