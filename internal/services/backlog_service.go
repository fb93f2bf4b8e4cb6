package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/questlog/questlog/internal/constants"
	apperrors "github.com/questlog/questlog/internal/errors"
	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/repository"
)

var (
	ErrTitleRequired = apperrors.Validation("Title is a required field.")
	ErrGameNotFound  = apperrors.NotFound("Game not found.")
)

// BacklogService handles CRUD over a user's game entries.
type BacklogService struct {
	userRepo repository.UserRepository
	boxArt   BoxArtClient
}

// NewBacklogService creates a new BacklogService. boxArt may be nil, in
// which case games are created without automatic cover-art enrichment.
func NewBacklogService(userRepo repository.UserRepository, boxArt BoxArtClient) *BacklogService {
	return &BacklogService{
		userRepo: userRepo,
		boxArt:   boxArt,
	}
}

// StatusSection is one status bucket of a partitioned backlog.
type StatusSection struct {
	Status models.GameStatus
	Games  []models.Game
}

// sectionOrder is the fixed presentation order of the status buckets.
var sectionOrder = []models.GameStatus{
	models.StatusInProgress,
	models.StatusPending,
	models.StatusCompleted,
	models.StatusDropped,
}

// List partitions the owner's games into the four status buckets. Games with
// an unrecognized status land in Pending.
func (s *BacklogService) List(owner *models.User) []StatusSection {
	buckets := make(map[models.GameStatus][]models.Game, len(sectionOrder))
	for _, game := range owner.Games {
		status := models.NormalizeStatus(string(game.Status))
		buckets[status] = append(buckets[status], game)
	}

	sections := make([]StatusSection, 0, len(sectionOrder))
	for _, status := range sectionOrder {
		sections = append(sections, StatusSection{
			Status: status,
			Games:  buckets[status],
		})
	}
	return sections
}

// CreateGameInput represents input for adding a game to a backlog.
type CreateGameInput struct {
	Title     string
	Platform  string
	Status    string
	Rating    *int
	DateAdded *time.Time
	BoxArt    string
	Notes     string
}

// Create validates the input, enriches missing box art via the metadata
// lookup, appends the game to the owner's sequence, and persists it.
func (s *BacklogService) Create(ctx context.Context, owner *models.User, input CreateGameInput) (*models.Game, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	dateAdded := time.Now()
	if input.DateAdded != nil {
		dateAdded = *input.DateAdded
	}

	game := models.Game{
		ID:        uuid.NewString(),
		UserID:    owner.ID,
		Title:     title,
		Platform:  input.Platform,
		DateAdded: dateAdded,
		Status:    models.NormalizeStatus(input.Status),
		Rating:    input.Rating,
		BoxArt:    input.BoxArt,
		Notes:     input.Notes,
	}

	if game.BoxArt == "" && s.boxArt != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, constants.MetadataLookupTimeout)
		defer cancel()
		boxArt, err := s.boxArt.LookupBoxArt(lookupCtx, title)
		if err != nil {
			// Enrichment is best effort; the create proceeds without art.
			log.Printf("box art lookup for %q failed: %v", title, err)
		} else {
			game.BoxArt = boxArt
		}
	}

	owner.Games = append(owner.Games, game)
	if err := s.userRepo.SaveGames(owner); err != nil {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to save game: %w", err))
	}

	return &owner.Games[len(owner.Games)-1], nil
}

// Get returns the owner's game with the given id.
func (s *BacklogService) Get(owner *models.User, gameID string) (*models.Game, bool) {
	idx := owner.GameByID(gameID)
	if idx < 0 {
		return nil, false
	}
	return &owner.Games[idx], true
}

// UpdateGameInput enumerates the updatable fields. Nil means "leave as is";
// ClearRating removes the rating entirely.
type UpdateGameInput struct {
	Title       *string
	Platform    *string
	Status      *string
	Rating      *int
	ClearRating bool
	DateAdded   *time.Time
	BoxArt      *string
	Notes       *string
}

// Update applies the submitted fields to the owner's game and persists the
// sequence. Returns ErrGameNotFound when the id matches no entry.
func (s *BacklogService) Update(owner *models.User, gameID string, input UpdateGameInput) (*models.Game, error) {
	idx := owner.GameByID(gameID)
	if idx < 0 {
		return nil, ErrGameNotFound
	}

	game := &owner.Games[idx]

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		game.Title = title
	}
	if input.Platform != nil {
		game.Platform = *input.Platform
	}
	if input.Status != nil {
		game.Status = models.NormalizeStatus(*input.Status)
	}
	if input.ClearRating {
		game.Rating = nil
	} else if input.Rating != nil {
		game.Rating = input.Rating
	}
	if input.DateAdded != nil {
		game.DateAdded = *input.DateAdded
	}
	if input.BoxArt != nil {
		game.BoxArt = *input.BoxArt
	}
	if input.Notes != nil {
		game.Notes = *input.Notes
	}

	if err := s.userRepo.SaveGames(owner); err != nil {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to save game: %w", err))
	}

	return game, nil
}

// Delete removes every game matching the id from the owner's sequence.
// Deleting an id that matches nothing is a no-op.
func (s *BacklogService) Delete(owner *models.User, gameID string) error {
	kept := owner.Games[:0]
	removed := false
	for _, game := range owner.Games {
		if game.ID == gameID {
			removed = true
			continue
		}
		kept = append(kept, game)
	}
	owner.Games = kept

	if !removed {
		return nil
	}

	if err := s.userRepo.SaveGames(owner); err != nil {
		return apperrors.Unexpected(fmt.Errorf("failed to delete game: %w", err))
	}
	return nil
}
