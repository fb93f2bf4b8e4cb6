package database

import (
	"fmt"

	"github.com/questlog/questlog/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		table string
		name  string
		sql   string
	}{
		// Latest-activity reads scan each user's games by date
		{&models.Game{}, "games", "idx_games_user_date_added", "CREATE INDEX idx_games_user_date_added ON games (user_id, date_added)"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s on %s: %w", idx.name, idx.table, err)
		}
	}

	return nil
}
