package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/acarlier/loto-backend/models"
)

func TestImportCSV(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db)
	createCard(t, db, event.ID, "C001", scenarioGrid())

	csvBody := strings.Join([]string{
		"cardRef,line1,line2,line3",
		`C001,5 15 23 45 67,8 12 34 56 78,2 18 29 43 89`,  // duplicate reference
		`C002,1 11 21 31 41,51 61 71 81 90,3 13 33 53 73`, // ok
		`C003,1 2 3 4,5 6 7 8 9,10 11 12 13 14`,           // short line
		`C004,1 2 3 4 95,5 6 7 8 9,10 11 12 13 14`,        // out of range
		`C005`, // not enough columns
		`C006,4 14 24 44 64,6 16 36 46 76,7 17 37 57 87`, // ok
	}, "\n")

	summary, err := Cards.ImportCSV(event.ID, strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if summary.Added != 2 || summary.Skipped != 1 || summary.Errors != 3 {
		t.Errorf("summary = %+v, want added=2 skipped=1 errors=3", summary)
	}

	cards, err := Cards.ByEvent(event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 3 {
		t.Errorf("cards in event = %d, want 3", len(cards))
	}
}

func TestImportCSVUnknownEvent(t *testing.T) {
	setupTestDB(t)
	_, err := Cards.ImportCSV(9999, strings.NewReader("cardRef,line1,line2,line3\n"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestCreateCardValidatesGrid(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db)

	cases := []struct {
		name string
		grid [][]int
	}{
		{"two rows", [][]int{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}},
		{"short row", [][]int{{1, 2, 3, 4}, {6, 7, 8, 9, 10}, {11, 12, 13, 14, 15}}},
		{"out of range", [][]int{{1, 2, 3, 4, 91}, {6, 7, 8, 9, 10}, {11, 12, 13, 14, 15}}},
		{"duplicate number", [][]int{{1, 2, 3, 4, 5}, {5, 7, 8, 9, 10}, {11, 12, 13, 14, 15}}},
	}
	for _, tc := range cases {
		if _, err := Cards.Create(event.ID, "X001", tc.grid); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: want ErrInvalidArgument, got %v", tc.name, err)
		}
	}

	card, err := Cards.Create(event.ID, "X001", scenarioGrid())
	if err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}
	if card.Reference != "X001" {
		t.Errorf("reference = %q", card.Reference)
	}
}

func TestAssignAndUnassignPlayers(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db)
	card := createCard(t, db, event.ID, "C001", scenarioGrid())
	other := createCard(t, db, event.ID, "C002", scenarioGrid())

	player := models.Player{Name: "Alice", EventID: &event.ID}
	if err := db.Create(&player).Error; err != nil {
		t.Fatal(err)
	}

	if err := Cards.AssignPlayer(card.ID, &player.ID); err != nil {
		t.Fatalf("AssignPlayer failed: %v", err)
	}
	if err := Cards.AssignPlayer(other.ID, &player.ID); err != nil {
		t.Fatalf("AssignPlayer failed: %v", err)
	}

	assigned := reloadCard(t, db, card.ID)
	if assigned.PlayerID == nil || *assigned.PlayerID != player.ID {
		t.Fatalf("player id = %v, want %d", assigned.PlayerID, player.ID)
	}

	if err := Cards.AssignPlayer(card.ID, nil); err != nil {
		t.Fatalf("detach failed: %v", err)
	}
	if reloadCard(t, db, card.ID).PlayerID != nil {
		t.Error("card still assigned after detach")
	}

	if err := Cards.UnassignAllPlayers(event.ID); err != nil {
		t.Fatalf("UnassignAllPlayers failed: %v", err)
	}
	if reloadCard(t, db, other.ID).PlayerID != nil {
		t.Error("card still assigned after event-wide unassign")
	}
}

func TestAssignPlayerUnknownPlayer(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db)
	card := createCard(t, db, event.ID, "C001", scenarioGrid())

	missing := uint(9999)
	if err := Cards.AssignPlayer(card.ID, &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
