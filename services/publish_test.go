package services

import (
	"testing"

	"github.com/acarlier/loto-backend/models"
)

func TestTopicNames(t *testing.T) {
	if got := GameTopic(3, 7); got != "/events/3/games/7/state" {
		t.Errorf("game topic = %q", got)
	}
	if got := PublicTopic(3); got != "/events/3/public" {
		t.Errorf("public topic = %q", got)
	}
}

func TestBuildGameState(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db)
	game := createGame(t, db, event.ID, 2, models.RuleQuine, models.StatusRunning)
	card := createCard(t, db, event.ID, "A001", scenarioGrid())

	player := models.Player{Name: "Alice", EventID: &event.ID}
	if err := db.Create(&player).Error; err != nil {
		t.Fatal(err)
	}
	if err := Cards.AssignPlayer(card.ID, &player.ID); err != nil {
		t.Fatal(err)
	}

	toggleAll(t, game.ID, 5, 15, 23, 45, 67)

	payload, eventID, err := BuildGameState(game.ID)
	if err != nil {
		t.Fatalf("BuildGameState failed: %v", err)
	}
	if eventID != event.ID {
		t.Errorf("event id = %d, want %d", eventID, event.ID)
	}
	if payload.GameID != game.ID || payload.Position != 2 {
		t.Errorf("payload identity = game %d pos %d", payload.GameID, payload.Position)
	}
	if payload.Status != models.StatusRunning || payload.Rule != models.RuleQuine {
		t.Errorf("payload status/rule = %s/%s", payload.Status, payload.Rule)
	}
	want := []int{5, 15, 23, 45, 67}
	for i := range want {
		if payload.Draws[i] != want[i] {
			t.Fatalf("draws = %v, want %v", payload.Draws, want)
		}
	}
	if !payload.IsFrozen || payload.FreezeOrderIndex == nil || *payload.FreezeOrderIndex != 5 {
		t.Errorf("frozen=%v index=%v, want frozen at 5", payload.IsFrozen, payload.FreezeOrderIndex)
	}
	if payload.PotentialsCount != 1 {
		t.Errorf("potentials count = %d, want 1", payload.PotentialsCount)
	}
	if payload.HasSystemWinner {
		t.Error("no system winner validated yet")
	}
	if payload.DetectedCard == nil {
		t.Fatal("detected card projection missing on a frozen game")
	}
	if payload.DetectedCard.Reference != "A001" {
		t.Errorf("detected reference = %q", payload.DetectedCard.Reference)
	}
	if payload.DetectedCard.Player == nil || *payload.DetectedCard.Player != "Alice" {
		t.Errorf("detected player = %v, want Alice", payload.DetectedCard.Player)
	}
	if len(payload.DetectedCard.Grid) != models.GridRows {
		t.Errorf("detected grid rows = %d", len(payload.DetectedCard.Grid))
	}

	// Validating the winner flips the system-winner flag.
	if _, err := Winners.ValidateSystemWinner(game.ID, card.ID); err != nil {
		t.Fatal(err)
	}
	payload, _, err = BuildGameState(game.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !payload.HasSystemWinner {
		t.Error("system winner flag not set after validation")
	}
}
