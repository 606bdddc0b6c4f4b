package services

import (
	"math"

	"github.com/acarlier/loto-backend/models"
)

// PotentialWinner is a card that currently satisfies the game's rule but has
// not been validated as an official winner yet.
type PotentialWinner struct {
	Card         models.Card `json:"card"`
	MatchedLines int         `json:"matched_lines"`
}

// DetectionService computes potential winners from a game's draws. It is
// stateless: detection is recomputed from scratch on every call, which keeps
// uncall/recall sequences correct on a domain this small.
type DetectionService struct{}

// FindPotentialWinners returns the non-blocked cards meeting the game's rule
// against the visible draw set. The game's Draws must be loaded. If the game
// is frozen, only draws up to the freeze index count: numbers called after a
// freeze must not create or remove winners. Hall-only games never detect.
func (s *DetectionService) FindPotentialWinners(game *models.Game, cards []models.Card) []PotentialWinner {
	if game.HallOnly {
		return nil
	}

	maxOrderIndex := math.MaxInt
	if game.IsFrozen && game.FreezeOrderIndex != nil {
		maxOrderIndex = *game.FreezeOrderIndex
	}

	called := make(map[int]bool, len(game.Draws))
	for _, d := range game.Draws {
		if d.OrderIndex <= maxOrderIndex {
			called[d.Number] = true
		}
	}

	required := game.Rule.RequiredLines()
	var result []PotentialWinner
	for _, card := range cards {
		if card.IsBlocked {
			continue
		}
		if lines := card.MatchedLines(called); lines >= required {
			result = append(result, PotentialWinner{Card: card, MatchedLines: lines})
		}
	}
	return result
}

// CheckForWinners reports the order index at which to freeze the game, or nil
// when no card currently wins. The returned index is the highest order index
// among the game's draws, i.e. the call that triggered detection.
func (s *DetectionService) CheckForWinners(game *models.Game, cards []models.Card) *int {
	if len(s.FindPotentialWinners(game, cards)) == 0 {
		return nil
	}

	maxOrderIndex := 0
	for _, d := range game.Draws {
		if d.OrderIndex > maxOrderIndex {
			maxOrderIndex = d.OrderIndex
		}
	}
	return &maxOrderIndex
}
