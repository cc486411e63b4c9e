package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title          string   `json:"title" validate:"max=200"`
	ParticipantIds []string `json:"participantIds" validate:"omitempty,max=50,dive,uuid"`
	ContextType    string   `json:"contextType" validate:"omitempty,oneof=note document"`
	ContextId      string   `json:"contextId" validate:"required_with=ContextType,omitempty,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type AskAIRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=5000"`
}

type ChatParticipantResponse struct {
	UserId    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarUrl string    `json:"avatarUrl"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID  `json:"id"`
	ChatId     uuid.UUID  `json:"chatId"`
	SenderId   *uuid.UUID `json:"senderId"`
	SenderName string     `json:"senderName,omitempty"`
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type ChatResponse struct {
	Id            uuid.UUID                 `json:"id"`
	Title         string                    `json:"title"`
	CreatedBy     uuid.UUID                 `json:"createdBy"`
	ContextType   string                    `json:"contextType,omitempty"`
	ContextId     *uuid.UUID                `json:"contextId,omitempty"`
	Participants  []ChatParticipantResponse `json:"participants"`
	Messages      []ChatMessageResponse     `json:"messages,omitempty"`
	LastMessageAt time.Time                 `json:"lastMessageAt"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

type AskAIResponse struct {
	UserMessage      ChatMessageResponse `json:"userMessage"`
	AssistantMessage ChatMessageResponse `json:"assistantMessage"`
}
