package services

import (
	"sort"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

// DetectedCard is the projection of the first potential winner shown on the
// public display while a game is frozen.
type DetectedCard struct {
	Reference string   `json:"reference"`
	Grid      [][]*int `json:"grid"`
	Player    *string  `json:"player"`
}

// GameStatePayload is the snapshot pushed to displays after every mutating
// game operation.
type GameStatePayload struct {
	GameID           uint              `json:"gameId"`
	Position         int               `json:"position"`
	Rule             models.RuleType   `json:"rule"`
	Prize            string            `json:"prize"`
	Status           models.GameStatus `json:"status"`
	Draws            []int             `json:"draws"`
	PotentialsCount  int               `json:"potentialsCount"`
	IsFrozen         bool              `json:"isFrozen"`
	FreezeOrderIndex *int              `json:"freezeOrderIndex"`
	HasSystemWinner  bool              `json:"hasSystemWinner"`
	DetectedCard     *DetectedCard     `json:"detectedCard"`
}

// BuildGameState loads everything the display needs for one game. The second
// return value is the owning event's id.
func BuildGameState(gameID uint) (*GameStatePayload, uint, error) {
	game, err := loadGameWithDraws(database, gameID)
	if err != nil {
		return nil, 0, err
	}

	var winners []models.Winner
	if err := database.Where("game_id = ?", game.ID).Find(&winners).Error; err != nil {
		return nil, 0, err
	}

	var cards []models.Card
	if err := database.Preload("Player").Where("event_id = ?", game.EventID).
		Order("id ASC").Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	potentials := Detection.FindPotentialWinners(game, cards)

	hasSystemWinner := false
	for _, w := range winners {
		if w.Source == models.SourceSystem {
			hasSystemWinner = true
			break
		}
	}

	var detected *DetectedCard
	if game.IsFrozen && len(potentials) > 0 {
		card := potentials[0].Card
		detected = &DetectedCard{
			Reference: card.Reference,
			Grid:      card.FormattedGrid(),
		}
		if card.Player != nil {
			detected.Player = &card.Player.Name
		}
	}

	draws := append([]models.Draw(nil), game.Draws...)
	sort.Slice(draws, func(i, j int) bool { return draws[i].OrderIndex < draws[j].OrderIndex })
	numbers := make([]int, 0, len(draws))
	for _, d := range draws {
		numbers = append(numbers, d.Number)
	}

	return &GameStatePayload{
		GameID:           game.ID,
		Position:         game.Position,
		Rule:             game.Rule,
		Prize:            game.Prize,
		Status:           game.Status,
		Draws:            numbers,
		PotentialsCount:  len(potentials),
		IsFrozen:         game.IsFrozen,
		FreezeOrderIndex: game.FreezeOrderIndex,
		HasSystemWinner:  hasSystemWinner,
		DetectedCard:     detected,
	}, game.EventID, nil
}

// PublishGameState pushes the game snapshot to its per-game topic and mirrors
// it on the event-wide public topic. Fire-and-forget: a failed build is
// logged, never surfaced.
func PublishGameState(gameID uint) {
	payload, eventID, err := BuildGameState(gameID)
	if err != nil {
		logger.Errorf("publish game %d state: %v", gameID, err)
		return
	}

	Realtime.Publish(eventID, GameTopic(eventID, gameID), payload)
	Realtime.Publish(eventID, PublicTopic(eventID), payload)
}
