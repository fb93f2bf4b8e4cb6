package repository

import (
	"github.com/questlog/questlog/internal/models"
)

// UserRepository defines the interface for user data access. A user row and
// its game rows are treated as one document: reads always hydrate the games
// sequence and SaveGames persists the whole sequence atomically.
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with games loaded in insertion order
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username, matched case-insensitively
	FindByUsername(username string) (*models.User, error)

	// ListWithGames retrieves every user with their games loaded
	ListWithGames() ([]models.User, error)

	// SaveGames persists the user's current games sequence in a single
	// transaction: rows no longer present are deleted, the rest upserted.
	SaveGames(user *models.User) error
}
