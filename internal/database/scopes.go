package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Published returns a GORM scope that filters to published posts.
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("published = ?", true)
}

// OwnedBy returns a GORM scope that filters by author.
func OwnedBy(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", userID)
	}
}
