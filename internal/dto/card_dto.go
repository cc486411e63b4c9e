package dto

import (
	"time"

	"ai-workspace-be/internal/pkg/pagination"

	"github.com/google/uuid"
)

type ListCardsQuery struct {
	pagination.Params
	Category string `query:"category" validate:"omitempty,max=50"`
	Tag      string `query:"tag" validate:"omitempty,max=50"`
	Q        string `query:"q" validate:"omitempty,max=200"`
}

type CreateCardRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Content  string   `json:"content" validate:"max=20000"`
	Category string   `json:"category" validate:"max=50"`
	Tags     []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type UpdateCardRequest struct {
	Title    *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content  *string  `json:"content" validate:"omitempty,max=20000"`
	Category *string  `json:"category" validate:"omitempty,max=50"`
	Tags     []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type CardResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	LikeCount     int       `json:"likeCount"`
	BookmarkCount int       `json:"bookmarkCount"`
	AuthorId      uuid.UUID `json:"authorId"`
	Liked         bool      `json:"liked"`
	Bookmarked    bool      `json:"bookmarked"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
