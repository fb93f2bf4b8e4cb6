package database

import (
	"gorm.io/gorm"
)

// GamesInInsertionOrder keeps a user's backlog in the order entries were
// created, which is also the tie-break order for latest-activity reads.
func GamesInInsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}
