package models

import "time"

type WinnerSource string

const (
	SourceSystem  WinnerSource = "system"
	SourceOffline WinnerSource = "offline"
)

// Winner records a validated win. Card is nullable: an offline winner may be
// recorded by free-text reference alone. At most one winner per (game, card).
type Winner struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	GameID            uint         `gorm:"index;not null" json:"game_id"`
	CardID            *uint        `gorm:"index" json:"card_id"`
	Card              *Card        `json:"card,omitempty"`
	Source            WinnerSource `gorm:"size:20;not null" json:"source"`
	Reference         string       `json:"reference"`
	WinningOrderIndex int          `gorm:"not null" json:"winning_order_index"`
	CreatedAt         time.Time    `json:"created_at"`
}
