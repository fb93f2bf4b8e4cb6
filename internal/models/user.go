package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Games []Game `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// GameByID scans the user's games for the given id and returns its index,
// or -1 when no entry matches. Lookups are linear; backlogs are small.
func (u *User) GameByID(id string) int {
	for i := range u.Games {
		if u.Games[i].ID == id {
			return i
		}
	}
	return -1
}
