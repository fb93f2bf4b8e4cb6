package services

import (
	"fmt"

	apperrors "github.com/questlog/questlog/internal/errors"
	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/repository"
)

// CommunityService provides the read-only cross-user activity view.
type CommunityService struct {
	userRepo repository.UserRepository
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(userRepo repository.UserRepository) *CommunityService {
	return &CommunityService{
		userRepo: userRepo,
	}
}

// CommunityEntry pairs a user with their most recently added game, if any.
type CommunityEntry struct {
	User       models.User
	LatestGame *models.Game
}

// LatestActivity returns one entry per user with the game whose DateAdded is
// most recent. Ties keep the earlier entry in insertion order.
func (s *CommunityService) LatestActivity() ([]CommunityEntry, error) {
	users, err := s.userRepo.ListWithGames()
	if err != nil {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to list users: %w", err))
	}

	entries := make([]CommunityEntry, 0, len(users))
	for i := range users {
		entry := CommunityEntry{User: users[i]}
		for j := range users[i].Games {
			game := &users[i].Games[j]
			if entry.LatestGame == nil || game.DateAdded.After(entry.LatestGame.DateAdded) {
				entry.LatestGame = game
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
