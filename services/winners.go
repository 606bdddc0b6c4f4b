package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

// WinnerService validates and records winners, keeping card blocking and
// game freeze state consistent.
type WinnerService struct {
	db    *gorm.DB
	locks *gameLocks
}

// ValidateSystemWinner confirms a winner the detection flagged. The game must
// already be frozen, the card must not be blocked, and the same card cannot
// win the same game twice. The card ends up blocked as winner_validated.
func (s *WinnerService) ValidateSystemWinner(gameID, cardID uint) (*models.Winner, error) {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	var winner *models.Winner
	err := s.db.Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}
		card, err := findCard(tx, cardID)
		if err != nil {
			return err
		}

		if !game.IsFrozen {
			return fmt.Errorf("%w: cannot validate winner on a non-frozen game", ErrIllegalState)
		}
		if card.IsBlocked {
			return fmt.Errorf("%w: cannot validate a blocked card", ErrIllegalState)
		}

		var count int64
		if err := tx.Model(&models.Winner{}).
			Where("game_id = ? AND card_id = ?", game.ID, card.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: card already validated as winner for this game", ErrIllegalState)
		}

		winningOrderIndex := 0
		if game.FreezeOrderIndex != nil {
			winningOrderIndex = *game.FreezeOrderIndex
		}

		w := models.Winner{
			GameID:            game.ID,
			CardID:            &card.ID,
			Source:            models.SourceSystem,
			Reference:         card.Reference,
			WinningOrderIndex: winningOrderIndex,
		}
		if err := tx.Create(&w).Error; err != nil {
			return err
		}
		if err := blockCard(tx, card.ID, models.BlockedWinnerValidated); err != nil {
			return err
		}
		winner = &w
		return nil
	})
	if err == nil {
		logger.Infof("system winner validated: game=%d card=%d", gameID, cardID)
	}
	return winner, err
}

// ValidateOfflineWinner records a winner entered manually by the operator,
// optionally tied to a card. Unlike system validation, the entry itself
// freezes the game if detection had not already done so. A supplied card is
// blocked as winner_offline.
func (s *WinnerService) ValidateOfflineWinner(gameID uint, reference string, cardID *uint) (*models.Winner, error) {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	var winner *models.Winner
	err := s.db.Transaction(func(tx *gorm.DB) error {
		game, err := loadGameWithDraws(tx, gameID)
		if err != nil {
			return err
		}

		var card *models.Card
		if cardID != nil {
			card, err = findCard(tx, *cardID)
			if err != nil {
				return err
			}
			if card.IsBlocked {
				return fmt.Errorf("%w: cannot validate a blocked card", ErrIllegalState)
			}
		}

		if !game.IsFrozen {
			maxOrderIndex := 0
			for _, d := range game.Draws {
				if d.OrderIndex > maxOrderIndex {
					maxOrderIndex = d.OrderIndex
				}
			}
			game.Freeze(maxOrderIndex)
			if err := tx.Model(&models.Game{}).Where("id = ?", game.ID).
				Updates(map[string]interface{}{"is_frozen": true, "freeze_order_index": maxOrderIndex}).Error; err != nil {
				return err
			}
		}

		winningOrderIndex := 0
		if game.FreezeOrderIndex != nil {
			winningOrderIndex = *game.FreezeOrderIndex
		}

		w := models.Winner{
			GameID:            game.ID,
			Source:            models.SourceOffline,
			Reference:         reference,
			WinningOrderIndex: winningOrderIndex,
		}
		if card != nil {
			w.CardID = &card.ID
		}
		if err := tx.Create(&w).Error; err != nil {
			return err
		}
		if card != nil {
			if err := blockCard(tx, card.ID, models.BlockedWinnerOffline); err != nil {
				return err
			}
		}
		winner = &w
		return nil
	})
	if err == nil {
		logger.Infof("offline winner recorded: game=%d reference=%s", gameID, reference)
	}
	return winner, err
}

// ByGame returns the winners of a game, cards preloaded.
func (s *WinnerService) ByGame(gameID uint) ([]models.Winner, error) {
	var winners []models.Winner
	err := s.db.Preload("Card").Where("game_id = ?", gameID).
		Order("created_at ASC").Find(&winners).Error
	return winners, err
}

// ClearAllForEvent deletes every winner across the event's games and unblocks
// their cards.
func (s *WinnerService) ClearAllForEvent(eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var games []models.Game
		if err := tx.Where("event_id = ?", eventID).Find(&games).Error; err != nil {
			return err
		}
		for _, g := range games {
			var winners []models.Winner
			if err := tx.Where("game_id = ?", g.ID).Find(&winners).Error; err != nil {
				return err
			}
			for _, w := range winners {
				if w.CardID == nil {
					continue
				}
				if err := unblockCard(tx, *w.CardID); err != nil {
					return err
				}
			}
			if err := tx.Where("game_id = ?", g.ID).Delete(&models.Winner{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func findCard(tx *gorm.DB, cardID uint) (*models.Card, error) {
	var card models.Card
	if err := tx.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: card %d", ErrNotFound, cardID)
		}
		return nil, err
	}
	return &card, nil
}

func blockCard(tx *gorm.DB, cardID uint, reason models.BlockedReason) error {
	return tx.Model(&models.Card{}).Where("id = ?", cardID).
		Updates(map[string]interface{}{
			"is_blocked":     true,
			"blocked_at":     gorm.Expr("CURRENT_TIMESTAMP"),
			"blocked_reason": string(reason),
		}).Error
}
