package mapper

import (
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:            c.Id,
		Title:         c.Title,
		CreatedBy:     c.CreatedBy,
		ContextType:   entity.ChatContextType(c.ContextType),
		ContextId:     c.ContextId,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:            c.Id,
		Title:         c.Title,
		CreatedBy:     c.CreatedBy,
		ContextType:   string(c.ContextType),
		ContextId:     c.ContextId,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// Participant Mappers

func (m *ChatMapper) ParticipantToEntity(p *model.ChatParticipant) *entity.ChatParticipant {
	if p == nil {
		return nil
	}
	return &entity.ChatParticipant{
		Id:       p.Id,
		ChatId:   p.ChatId,
		UserId:   p.UserId,
		JoinedAt: p.JoinedAt,
	}
}

func (m *ChatMapper) ParticipantToModel(p *entity.ChatParticipant) *model.ChatParticipant {
	if p == nil {
		return nil
	}
	return &model.ChatParticipant{
		Id:       p.Id,
		ChatId:   p.ChatId,
		UserId:   p.UserId,
		JoinedAt: p.JoinedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Role:      entity.ChatRole(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
