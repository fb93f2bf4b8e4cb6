package dto

import (
	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/services"
)

// UserDTO represents a user in rendered pages; never the password hash.
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// CommunityEntryDTO pairs a user with their most recent game for the
// community page.
type CommunityEntryDTO struct {
	User       UserDTO
	LatestGame *models.Game
}

func ToCommunityEntries(entries []services.CommunityEntry) []CommunityEntryDTO {
	out := make([]CommunityEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CommunityEntryDTO{
			User:       ToUserDTO(entry.User),
			LatestGame: entry.LatestGame,
		})
	}
	return out
}
