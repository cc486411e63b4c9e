package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title         string     `gorm:"type:varchar(200)"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContextType   string     `gorm:"type:varchar(20)"`
	ContextId     *uuid.UUID `gorm:"type:uuid;index"`
	LastMessageAt time.Time  `gorm:"not null;index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatParticipant struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_participant"`
	UserId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_participant;index"`
	JoinedAt time.Time `gorm:"not null"`
}

func (ChatParticipant) TableName() string {
	return "chat_participants"
}

type ChatMessage struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChatId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SenderId  *uuid.UUID `gorm:"type:uuid"`
	Role      string     `gorm:"type:varchar(20);not null"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
