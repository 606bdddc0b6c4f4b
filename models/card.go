package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type BlockedReason string

const (
	BlockedWinner          BlockedReason = "winner"
	BlockedWinnerValidated BlockedReason = "winner_validated"
	BlockedWinnerOffline   BlockedReason = "winner_offline"
)

const (
	GridRows    = 3
	GridRowSize = 5
	GridColumns = 9
	MaxNumber   = 90
)

// Card is a pre-printed loto card: 3 rows of 5 numbers in 1..90, stored as
// JSON. References are unique within the owning event.
type Card struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	EventID       uint           `gorm:"not null;uniqueIndex:uniq_event_reference" json:"event_id"`
	Reference     string         `gorm:"size:50;not null;uniqueIndex:uniq_event_reference" json:"reference"`
	GridJSON      datatypes.JSON `gorm:"type:json" json:"grid"`
	PlayerID      *uint          `gorm:"index" json:"player_id"`
	Player        *Player        `json:"player,omitempty"`
	IsBlocked     bool           `gorm:"not null;default:false" json:"is_blocked"`
	BlockedAt     *time.Time     `json:"blocked_at"`
	BlockedReason *BlockedReason `gorm:"size:20" json:"blocked_reason"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Grid decodes the stored grid. Rows that fail to decode come back empty and
// are treated as unmatched by MatchedLines.
func (c *Card) Grid() [][]int {
	var grid [][]int
	if len(c.GridJSON) == 0 {
		return grid
	}
	if err := json.Unmarshal(c.GridJSON, &grid); err != nil {
		return nil
	}
	return grid
}

func (c *Card) SetGrid(grid [][]int) error {
	b, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	c.GridJSON = datatypes.JSON(b)
	return nil
}

// MatchedLines counts rows whose five numbers are all in the called set.
// Rows that are not exactly five numbers are skipped rather than rejected,
// tolerating partially entered legacy grids.
func (c *Card) MatchedLines(called map[int]bool) int {
	matched := 0
	for _, row := range c.Grid() {
		if len(row) != GridRowSize {
			continue
		}
		ok := true
		for _, n := range row {
			if !called[n] {
				ok = false
				break
			}
		}
		if ok {
			matched++
		}
	}
	return matched
}

// FormattedGrid lays the grid out as 3 rows of 9 columns for a traditional
// card face, each number placed in the column of its tens digit (90 lands in
// column 9, clamped to the last column). Presentation only.
func (c *Card) FormattedGrid() [][]*int {
	lines := make([][]*int, 0, GridRows)
	for _, row := range c.Grid() {
		cols := make([]*int, GridColumns)
		for _, n := range row {
			col := n / 10
			if col >= GridColumns {
				col = GridColumns - 1
			}
			v := n
			cols[col] = &v
		}
		lines = append(lines, cols)
	}
	return lines
}

func (c *Card) Block(reason BlockedReason) {
	now := time.Now()
	c.IsBlocked = true
	c.BlockedAt = &now
	c.BlockedReason = &reason
}

func (c *Card) Unblock() {
	c.IsBlocked = false
	c.BlockedAt = nil
	c.BlockedReason = nil
}
