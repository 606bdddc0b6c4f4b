package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

// ToggleResult is what a toggle leaves behind: the full ordered list of
// called numbers and the game's freeze state.
type ToggleResult struct {
	Numbers          []int `json:"numbers"`
	Frozen           bool  `json:"frozen"`
	FreezeOrderIndex *int  `json:"freeze_order_index"`
}

// DrawService owns the per-game draw ledger.
type DrawService struct {
	db        *gorm.DB
	detection *DetectionService
	locks     *gameLocks
}

// Toggle calls or uncalls a number for a game. A new number is appended at
// the next order index and triggers winner detection (unless the game is
// hall-only or the event has no cards); a number already called is removed
// and the remaining order indexes are re-packed to a contiguous 1..N range,
// preserving relative call order.
func (s *DrawService) Toggle(gameID uint, number int) (ToggleResult, error) {
	if number < 1 || number > models.MaxNumber {
		return ToggleResult{}, fmt.Errorf("%w: number must be between 1 and %d", ErrInvalidArgument, models.MaxNumber)
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	var res ToggleResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		game, err := loadGameWithDraws(tx, gameID)
		if err != nil {
			return err
		}
		if game.Status != models.StatusRunning {
			return fmt.Errorf("%w: game %d is not running", ErrIllegalState, gameID)
		}
		if game.IsFrozen {
			return fmt.Errorf("%w: cannot toggle numbers on a frozen game", ErrIllegalState)
		}

		var existing *models.Draw
		for i := range game.Draws {
			if game.Draws[i].Number == number {
				existing = &game.Draws[i]
				break
			}
		}

		if existing != nil {
			if err := tx.Delete(&models.Draw{}, existing.ID).Error; err != nil {
				return err
			}
			kept := make([]models.Draw, 0, len(game.Draws)-1)
			for _, d := range game.Draws {
				if d.ID != existing.ID {
					kept = append(kept, d)
				}
			}
			if err := repackOrder(tx, kept); err != nil {
				return err
			}
			game.Draws = kept
		} else {
			order := 0
			for _, d := range game.Draws {
				if d.OrderIndex > order {
					order = d.OrderIndex
				}
			}
			draw := models.Draw{GameID: game.ID, Number: number, OrderIndex: order + 1}
			if err := tx.Create(&draw).Error; err != nil {
				return err
			}
			game.Draws = append(game.Draws, draw)

			if !game.HallOnly {
				var cards []models.Card
				if err := tx.Where("event_id = ?", game.EventID).Order("id ASC").Find(&cards).Error; err != nil {
					return err
				}
				if len(cards) > 0 {
					if idx := s.detection.CheckForWinners(game, cards); idx != nil {
						game.Freeze(*idx)
						if err := tx.Model(&models.Game{}).Where("id = ?", game.ID).
							Updates(map[string]interface{}{"is_frozen": true, "freeze_order_index": *idx}).Error; err != nil {
							return err
						}
						logger.Infof("game %d frozen at order index %d", game.ID, *idx)
					}
				}
			}
		}

		res = buildToggleResult(game)
		return nil
	})
	return res, err
}

// ClearAll is the full "demarque" reset for a running game: every draw is
// removed, the game is unfrozen, and each winner recorded on it is deleted
// with its card unblocked. Clearing an already-empty game only unfreezes.
func (s *DrawService) ClearAll(gameID uint) error {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: game %d", ErrNotFound, gameID)
			}
			return err
		}
		if game.Status != models.StatusRunning {
			return fmt.Errorf("%w: demarque requires a running game", ErrIllegalState)
		}

		if err := tx.Where("game_id = ?", game.ID).Delete(&models.Draw{}).Error; err != nil {
			return err
		}
		if err := unfreezeGame(tx, game.ID); err != nil {
			return err
		}

		var winners []models.Winner
		if err := tx.Where("game_id = ?", game.ID).Find(&winners).Error; err != nil {
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
		return tx.Where("game_id = ?", game.ID).Delete(&models.Winner{}).Error
	})
}

// ClearAllForEvent removes the draws of every game of an event. Winners are
// left untouched; use WinnerService.ClearAllForEvent for those.
func (s *DrawService) ClearAllForEvent(eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var games []models.Game
		if err := tx.Where("event_id = ?", eventID).Find(&games).Error; err != nil {
			return err
		}
		for _, g := range games {
			if err := tx.Where("game_id = ?", g.ID).Delete(&models.Draw{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func loadGameWithDraws(tx *gorm.DB, gameID uint) (*models.Game, error) {
	var game models.Game
	err := tx.Preload("Draws", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&game, gameID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}
	return &game, nil
}

// repackOrder rewrites order indexes to 1..N in prior order. The slice is
// updated in place.
func repackOrder(tx *gorm.DB, draws []models.Draw) error {
	sort.Slice(draws, func(i, j int) bool {
		return draws[i].OrderIndex < draws[j].OrderIndex
	})
	for i := range draws {
		if draws[i].OrderIndex == i+1 {
			continue
		}
		draws[i].OrderIndex = i + 1
		if err := tx.Model(&models.Draw{}).Where("id = ?", draws[i].ID).
			Update("order_index", i+1).Error; err != nil {
			return err
		}
	}
	return nil
}

func unfreezeGame(tx *gorm.DB, gameID uint) error {
	return tx.Model(&models.Game{}).Where("id = ?", gameID).
		Updates(map[string]interface{}{"is_frozen": false, "freeze_order_index": nil}).Error
}

func unblockCard(tx *gorm.DB, cardID uint) error {
	return tx.Model(&models.Card{}).Where("id = ? AND is_blocked = ?", cardID, true).
		Updates(map[string]interface{}{"is_blocked": false, "blocked_at": nil, "blocked_reason": nil}).Error
}

func buildToggleResult(game *models.Game) ToggleResult {
	draws := append([]models.Draw(nil), game.Draws...)
	sort.Slice(draws, func(i, j int) bool {
		return draws[i].OrderIndex < draws[j].OrderIndex
	})
	numbers := make([]int, 0, len(draws))
	for _, d := range draws {
		numbers = append(numbers, d.Number)
	}
	return ToggleResult{
		Numbers:          numbers,
		Frozen:           game.IsFrozen,
		FreezeOrderIndex: game.FreezeOrderIndex,
	}
}
