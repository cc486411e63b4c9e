package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type BookmarkedBy struct {
	UserID uuid.UUID
}

func (s BookmarkedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN (SELECT card_id FROM card_bookmarks WHERE user_id = ?)", s.UserID)
}
