package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID
	Title       string
	Content     string
	FileName    string
	FileType    string
	FileSize    int64
	Summary     string
	Tags        []string
	WorkspaceId *uuid.UUID
	AuthorId    uuid.UUID
	IsPinned    bool
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
