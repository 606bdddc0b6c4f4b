package models

import "time"

type RuleType string

const (
	RuleQuine       RuleType = "quine"        // one full row
	RuleDoubleQuine RuleType = "double_quine" // two full rows
	RuleFullCard    RuleType = "full_card"    // all three rows
)

// RequiredLines maps a rule to the number of fully matched rows needed to win.
func (r RuleType) RequiredLines() int {
	switch r {
	case RuleQuine:
		return 1
	case RuleDoubleQuine:
		return 2
	case RuleFullCard:
		return 3
	}
	return 3
}

func (r RuleType) Valid() bool {
	switch r {
	case RuleQuine, RuleDoubleQuine, RuleFullCard:
		return true
	}
	return false
}

type GameStatus string

const (
	StatusPending  GameStatus = "pending"
	StatusRunning  GameStatus = "running"
	StatusFinished GameStatus = "finished"
)

type Game struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	EventID  uint       `gorm:"index;not null" json:"event_id"`
	Position int        `gorm:"index" json:"position"`
	Rule     RuleType   `gorm:"size:20;not null" json:"rule"`
	Prize    string     `json:"prize"`
	Status   GameStatus `gorm:"size:20;not null;default:pending" json:"status"`

	// IsFrozen and FreezeOrderIndex move together: frozen implies the
	// index is set, unfrozen implies it is nil.
	IsFrozen         bool `gorm:"not null;default:false" json:"is_frozen"`
	FreezeOrderIndex *int `json:"freeze_order_index"`

	// HallOnly disables automatic winner detection for games played
	// without digital number tracking.
	HallOnly bool `gorm:"not null;default:false" json:"hall_only"`

	Draws     []Draw    `gorm:"constraint:OnDelete:CASCADE" json:"draws,omitempty"`
	Winners   []Winner  `gorm:"constraint:OnDelete:CASCADE" json:"winners,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Game) Freeze(orderIndex int) {
	g.IsFrozen = true
	g.FreezeOrderIndex = &orderIndex
}

func (g *Game) Unfreeze() {
	g.IsFrozen = false
	g.FreezeOrderIndex = nil
}
