package models

import "time"

type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Date      time.Time `json:"date"`
	Games     []Game    `gorm:"constraint:OnDelete:CASCADE" json:"games,omitempty"`
	Players   []Player  `json:"players,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
