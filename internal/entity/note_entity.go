package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id          uuid.UUID
	Title       string
	Content     string
	Tags        []string
	WorkspaceId *uuid.UUID
	AuthorId    uuid.UUID
	IsPinned    bool
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
