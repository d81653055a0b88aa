package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows belonging to the given user. Every
// resource read and mutation goes through this scope (or an explicit
// id AND user_id predicate) so cross-user access is impossible at the
// query level.
func OwnedBy(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
