package models

import (
	"time"
)

type GameStatus string

const (
	StatusPending    GameStatus = "Pending"
	StatusInProgress GameStatus = "In Progress"
	StatusCompleted  GameStatus = "Completed"
	StatusDropped    GameStatus = "Dropped"
)

// NormalizeStatus maps unknown or empty status values to Pending.
func NormalizeStatus(s string) GameStatus {
	switch GameStatus(s) {
	case StatusInProgress, StatusCompleted, StatusDropped, StatusPending:
		return GameStatus(s)
	default:
		return StatusPending
	}
}

type Game struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint64     `gorm:"index;not null" json:"user_id"`
	Title     string     `gorm:"not null" json:"title"`
	Platform  string     `json:"platform"`
	DateAdded time.Time  `gorm:"not null" json:"date_added"`
	Status    GameStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Rating    *int       `json:"rating"`
	BoxArt    string     `json:"box_art"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
