package dto

import (
	"time"

	"ai-workspace-be/internal/pkg/pagination"

	"github.com/google/uuid"
)

// ListContentQuery filters note and document lists.
type ListContentQuery struct {
	pagination.Params
	WorkspaceId string `query:"workspaceId" validate:"omitempty,uuid"`
	Tag         string `query:"tag" validate:"omitempty,max=50"`
	Q           string `query:"q" validate:"omitempty,max=200"`
	Pinned      *bool  `query:"pinned"`
	Archived    *bool  `query:"archived"`
}

type CreateNoteRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Content     string   `json:"content" validate:"max=100000"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	WorkspaceId string   `json:"workspaceId" validate:"omitempty,uuid"`
}

type UpdateNoteRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Content    string   `json:"content" validate:"max=100000"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsPinned   *bool    `json:"isPinned"`
	IsArchived *bool    `json:"isArchived"`
}

// PatchNoteRequest leaves absent fields untouched. A present empty tag list
// clears the tags.
type PatchNoteRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string  `json:"content" validate:"omitempty,max=100000"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsPinned   *bool    `json:"isPinned"`
	IsArchived *bool    `json:"isArchived"`
}

type NoteResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	WorkspaceId *uuid.UUID `json:"workspaceId"`
	AuthorId    uuid.UUID  `json:"authorId"`
	IsPinned    bool       `json:"isPinned"`
	IsArchived  bool       `json:"isArchived"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
