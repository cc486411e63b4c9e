package mapper

import (
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type CardMapper struct{}

func NewCardMapper() *CardMapper {
	return &CardMapper{}
}

func (m *CardMapper) ToEntity(c *model.Card) *entity.Card {
	if c == nil {
		return nil
	}
	return &entity.Card{
		Id:            c.Id,
		Title:         c.Title,
		Content:       c.Content,
		Category:      c.Category,
		Tags:          tagsToEntity(c.Tags),
		LikeCount:     c.LikeCount,
		BookmarkCount: c.BookmarkCount,
		AuthorId:      c.AuthorId,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *CardMapper) ToModel(c *entity.Card) *model.Card {
	if c == nil {
		return nil
	}
	return &model.Card{
		Id:            c.Id,
		Title:         c.Title,
		Content:       c.Content,
		Category:      c.Category,
		Tags:          tagsToModel(c.Tags),
		LikeCount:     c.LikeCount,
		BookmarkCount: c.BookmarkCount,
		AuthorId:      c.AuthorId,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
