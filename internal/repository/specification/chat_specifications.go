package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ParticipatedBy struct {
	UserID uuid.UUID
}

func (s ParticipatedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN (SELECT chat_id FROM chat_participants WHERE user_id = ?)", s.UserID)
}

type ByContext struct {
	Type string
	ID   uuid.UUID
}

func (s ByContext) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("context_type = ? AND context_id = ?", s.Type, s.ID)
}

type ByChatIDs struct {
	ChatIDs []uuid.UUID
}

func (s ByChatIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id IN ?", s.ChatIDs)
}
