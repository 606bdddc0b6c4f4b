package models

import "time"

// Draw is one called number within a game. A number can be called at most
// once per game; OrderIndex records the call sequence position and stays a
// contiguous 1..N range after removals.
type Draw struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"not null;uniqueIndex:uniq_game_number" json:"game_id"`
	Number     int       `gorm:"not null;uniqueIndex:uniq_game_number" json:"number"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}
