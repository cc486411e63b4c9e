package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,min=1,max=200"`
	Content     string   `json:"content" form:"content" validate:"max=5242880"`
	FileName    string   `json:"fileName" form:"fileName" validate:"max=255"`
	FileType    string   `json:"fileType" form:"fileType" validate:"max=100"`
	FileSize    int64    `json:"-" form:"-"`
	Tags        []string `json:"tags" form:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	WorkspaceId string   `json:"workspaceId" form:"workspaceId" validate:"omitempty,uuid"`
}

type UpdateDocumentRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Content    string   `json:"content" validate:"max=5242880"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsPinned   *bool    `json:"isPinned"`
	IsArchived *bool    `json:"isArchived"`
}

type PatchDocumentRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string  `json:"content" validate:"omitempty,max=5242880"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsPinned   *bool    `json:"isPinned"`
	IsArchived *bool    `json:"isArchived"`
}

type DocumentResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	FileName    string     `json:"fileName"`
	FileType    string     `json:"fileType"`
	FileSize    int64      `json:"fileSize"`
	Summary     string     `json:"summary"`
	Tags        []string   `json:"tags"`
	WorkspaceId *uuid.UUID `json:"workspaceId"`
	AuthorId    uuid.UUID  `json:"authorId"`
	IsPinned    bool       `json:"isPinned"`
	IsArchived  bool       `json:"isArchived"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
