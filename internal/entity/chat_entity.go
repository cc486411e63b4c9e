package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatContextType string

const (
	ChatContextNone     ChatContextType = ""
	ChatContextNote     ChatContextType = "note"
	ChatContextDocument ChatContextType = "document"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type Chat struct {
	Id            uuid.UUID
	Title         string
	CreatedBy     uuid.UUID
	ContextType   ChatContextType
	ContextId     *uuid.UUID
	LastMessageAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ChatParticipant struct {
	Id       uuid.UUID
	ChatId   uuid.UUID
	UserId   uuid.UUID
	JoinedAt time.Time
}

type ChatMessage struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	SenderId  *uuid.UUID
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}
