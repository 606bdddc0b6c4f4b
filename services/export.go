package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/models"
)

// ExportService renders reporting files for an event.
type ExportService struct {
	db *gorm.DB
}

// WinnersCSV builds the winners export for an event: one row per winner
// across all games, in game position order. Returns the CSV body and a
// suggested filename.
func (s *ExportService) WinnersCSV(eventID uint) ([]byte, string, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return nil, "", err
	}

	var games []models.Game
	if err := s.db.Preload("Winners.Card.Player").
		Where("event_id = ?", eventID).Order("position ASC").
		Find(&games).Error; err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"Game", "Rule", "Prize", "Winning order", "Card reference",
		"Player", "Phone", "Email", "Source", "Created at",
	})

	for _, game := range games {
		for _, winner := range game.Winners {
			reference := winner.Reference
			playerName, playerPhone, playerEmail := "", "", ""
			if winner.Card != nil {
				if reference == "" {
					reference = winner.Card.Reference
				}
				if winner.Card.Player != nil {
					playerName = winner.Card.Player.Name
					playerPhone = winner.Card.Player.Phone
					playerEmail = winner.Card.Player.Email
				}
			}
			_ = w.Write([]string{
				fmt.Sprintf("Game #%d", game.Position),
				string(game.Rule),
				game.Prize,
				fmt.Sprintf("%d", winner.WinningOrderIndex+1),
				reference,
				playerName,
				playerPhone,
				playerEmail,
				string(winner.Source),
				winner.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("winners_%d_%s.csv", event.ID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
