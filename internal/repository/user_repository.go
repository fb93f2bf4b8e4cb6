package repository

import (
	"errors"
	"fmt"

	"github.com/questlog/questlog/internal/database"
	"github.com/questlog/questlog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrSaveGames is returned when persisting a user's games sequence fails.
	ErrSaveGames = errors.New("user repository: save games failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID, hydrating the games sequence
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Games", database.GamesInInsertionOrder).
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username regardless of case
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Games", database.GamesInInsertionOrder).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListWithGames retrieves all users with their games loaded
func (r *GormUserRepository) ListWithGames() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Preload("Games", database.GamesInInsertionOrder).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SaveGames replaces the user's persisted games with the in-memory sequence.
// The delete-then-upsert runs in one transaction so a concurrent writer sees
// either the old sequence or the new one, never a partial mix.
func (r *GormUserRepository) SaveGames(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(user.Games))
		for i := range user.Games {
			user.Games[i].UserID = user.ID
			ids = append(ids, user.Games[i].ID)
		}

		del := tx.Where("user_id = ?", user.ID)
		if len(ids) > 0 {
			del = del.Where("id NOT IN ?", ids)
		}
		if err := del.Delete(&models.Game{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrSaveGames, err)
		}

		if len(user.Games) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&user.Games).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrSaveGames, err)
			}
		}

		return nil
	})
}
