package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

// CardService manages the card inventory of an event.
type CardService struct {
	db *gorm.DB
}

// ImportSummary reports what a CSV import did.
type ImportSummary struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// ByEvent returns the event's cards with their players, ordered by id.
func (s *CardService) ByEvent(eventID uint) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.Preload("Player").Where("event_id = ?", eventID).
		Order("id ASC").Find(&cards).Error
	return cards, err
}

// Create validates and stores a single card.
func (s *CardService) Create(eventID uint, reference string, grid [][]int) (*models.Card, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: empty card reference", ErrInvalidArgument)
	}
	if err := validateGrid(grid); err != nil {
		return nil, err
	}

	card := models.Card{EventID: eventID, Reference: reference}
	if err := card.SetGrid(grid); err != nil {
		return nil, err
	}
	if err := s.db.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ImportCSV reads cards from CSV rows of the form cardRef,line1,line2,line3
// where each line holds five space-separated numbers. Rows with an already
// known reference are skipped, malformed rows are counted as errors; neither
// aborts the import.
func (s *CardService) ImportCSV(eventID uint, r io.Reader) (ImportSummary, error) {
	var summary ImportSummary

	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return summary, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return summary, fmt.Errorf("%w: empty CSV file", ErrInvalidArgument)
	}
	if len(header) < 4 || !strings.EqualFold(strings.TrimSpace(header[0]), "cardRef") {
		logger.Warnf("unexpected CSV header: %v", header)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for {
			row, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				summary.Errors++
				continue
			}
			if len(row) < 4 {
				summary.Errors++
				continue
			}

			ref := strings.TrimSpace(row[0])
			if ref == "" {
				summary.Errors++
				continue
			}

			grid, err := parseGridLines(row[1:4])
			if err != nil {
				logger.Warnf("card %s skipped: %v", ref, err)
				summary.Errors++
				continue
			}

			var count int64
			if err := tx.Model(&models.Card{}).
				Where("event_id = ? AND reference = ?", eventID, ref).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				summary.Skipped++
				continue
			}

			card := models.Card{EventID: eventID, Reference: ref}
			if err := card.SetGrid(grid); err != nil {
				return err
			}
			if err := tx.Create(&card).Error; err != nil {
				return err
			}
			summary.Added++
		}
	})
	if err == nil {
		logger.Infof("card import for event %d: added=%d skipped=%d errors=%d",
			eventID, summary.Added, summary.Skipped, summary.Errors)
	}
	return summary, err
}

// AssignPlayer attaches a card to a player, or detaches it when playerID is
// nil.
func (s *CardService) AssignPlayer(cardID uint, playerID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findCard(tx, cardID); err != nil {
			return err
		}
		if playerID != nil {
			if err := tx.First(&models.Player{}, *playerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: player %d", ErrNotFound, *playerID)
				}
				return err
			}
		}
		return tx.Model(&models.Card{}).Where("id = ?", cardID).
			Update("player_id", playerID).Error
	})
}

// UnassignAllPlayers detaches every card of the event from its player.
func (s *CardService) UnassignAllPlayers(eventID uint) error {
	return s.db.Model(&models.Card{}).Where("event_id = ?", eventID).
		Update("player_id", nil).Error
}

func parseGridLines(lines []string) ([][]int, error) {
	grid := make([][]int, 0, models.GridRows)
	seen := make(map[int]bool)
	for i, line := range lines {
		parts := strings.Fields(strings.Trim(line, " \t\"'"))
		if len(parts) != models.GridRowSize {
			return nil, fmt.Errorf("%w: line %d must hold %d numbers", ErrInvalidArgument, i+1, models.GridRowSize)
		}
		row := make([]int, 0, models.GridRowSize)
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 || n > models.MaxNumber {
				return nil, fmt.Errorf("%w: line %d has an invalid number %q", ErrInvalidArgument, i+1, p)
			}
			if seen[n] {
				return nil, fmt.Errorf("%w: number %d appears twice on the card", ErrInvalidArgument, n)
			}
			seen[n] = true
			row = append(row, n)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func validateGrid(grid [][]int) error {
	if len(grid) != models.GridRows {
		return fmt.Errorf("%w: grid must have %d rows", ErrInvalidArgument, models.GridRows)
	}
	seen := make(map[int]bool)
	for i, row := range grid {
		if len(row) != models.GridRowSize {
			return fmt.Errorf("%w: row %d must hold %d numbers", ErrInvalidArgument, i+1, models.GridRowSize)
		}
		for _, n := range row {
			if n < 1 || n > models.MaxNumber {
				return fmt.Errorf("%w: number %d out of range", ErrInvalidArgument, n)
			}
			if seen[n] {
				return fmt.Errorf("%w: number %d appears twice on the card", ErrInvalidArgument, n)
			}
			seen[n] = true
		}
	}
	return nil
}
