package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

// GameService owns the game lifecycle (pending/running/finished, frozen flag)
// and the per-event game ordering.
type GameService struct {
	db *gorm.DB
}

// GamesByEventOrdered returns the event's games in position order.
func (s *GameService) GamesByEventOrdered(eventID uint) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("event_id = ?", eventID).Order("position ASC").Find(&games).Error
	return games, err
}

// RunningGameByEvent returns the running game of an event, or nil when none
// is running. Lifecycle operations keep at most one game running per event.
func (s *GameService) RunningGameByEvent(eventID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Where("event_id = ? AND status = ?", eventID, models.StatusRunning).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Start sets the game running and demotes any other running game of the same
// event back to pending. Finished games are left untouched. An explicit start
// may also bring a finished game back to running.
func (s *GameService) Start(gameID uint) (*models.Game, error) {
	var started *models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Game{}).
			Where("event_id = ? AND status = ? AND id <> ?", game.EventID, models.StatusRunning, game.ID).
			Update("status", models.StatusPending).Error; err != nil {
			return err
		}
		if err := tx.Model(game).Update("status", models.StatusRunning).Error; err != nil {
			return err
		}
		game.Status = models.StatusRunning
		started = game
		return nil
	})
	if err == nil {
		logger.Infof("game %d started", gameID)
	}
	return started, err
}

// Finish sets the game's status to finished.
func (s *GameService) Finish(gameID uint) (*models.Game, error) {
	var finished *models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}
		if err := tx.Model(game).Update("status", models.StatusFinished).Error; err != nil {
			return err
		}
		game.Status = models.StatusFinished
		finished = game
		return nil
	})
	return finished, err
}

// Next finishes the given game and starts the game with the next-higher
// position in the same event, carrying the current draws forward so the next
// round's detection keeps feeding off the same call sequence. Any draws the
// next game already had are replaced.
func (s *GameService) Next(gameID uint) (*models.Game, error) {
	var next *models.Game
	carried := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		game, err := loadGameWithDraws(tx, gameID)
		if err != nil {
			return err
		}

		var successor models.Game
		err = tx.Where("event_id = ? AND position > ?", game.EventID, game.Position).
			Order("position ASC").First(&successor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no game after position %d", ErrNotFound, game.Position)
		}
		if err != nil {
			return err
		}

		if err := tx.Model(game).Update("status", models.StatusFinished).Error; err != nil {
			return err
		}
		if err := tx.Model(&successor).Update("status", models.StatusRunning).Error; err != nil {
			return err
		}

		if err := tx.Where("game_id = ?", successor.ID).Delete(&models.Draw{}).Error; err != nil {
			return err
		}
		for _, d := range game.Draws {
			copied := models.Draw{GameID: successor.ID, Number: d.Number, OrderIndex: d.OrderIndex}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
			carried++
		}

		successor.Status = models.StatusRunning
		next = &successor
		return nil
	})
	if err == nil {
		logger.Infof("game %d finished, game %d started with %d carried draws", gameID, next.ID, carried)
	}
	return next, err
}

// Freeze locks the draw state at the given order index. Legal only while the
// game is running.
func (s *GameService) Freeze(gameID uint, orderIndex int) error {
	if orderIndex < 0 {
		return fmt.Errorf("%w: order index must not be negative", ErrInvalidArgument)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.Status != models.StatusRunning {
			return fmt.Errorf("%w: can only freeze a running game", ErrIllegalState)
		}
		return tx.Model(game).
			Updates(map[string]interface{}{"is_frozen": true, "freeze_order_index": orderIndex}).Error
	})
}

// Unfreeze clears the frozen flag and freeze index. Used when the operator
// rejects a detected winner and wants the calls to resume.
func (s *GameService) Unfreeze(gameID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findGame(tx, gameID); err != nil {
			return err
		}
		return unfreezeGame(tx, gameID)
	})
}

// Reorder reassigns positions 1..N following the given ordered game IDs.
func (s *GameService) Reorder(order []uint) error {
	if len(order) == 0 {
		return fmt.Errorf("%w: empty order", ErrInvalidArgument)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range order {
			if err := tx.Model(&models.Game{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func findGame(tx *gorm.DB, gameID uint) (*models.Game, error) {
	var game models.Game
	if err := tx.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}
	return &game, nil
}
