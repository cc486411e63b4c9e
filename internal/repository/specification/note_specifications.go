package specification

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shared by notes and documents, which have the same ownership columns.

type AuthoredBy struct {
	UserID uuid.UUID
}

func (s AuthoredBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", s.UserID)
}

// PersonalOnly restricts to items outside any workspace.
type PersonalOnly struct{}

func (s PersonalOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id IS NULL")
}

// VisibleTo matches items the user authored or that live in one of the
// user's workspaces.
type VisibleTo struct {
	UserID uuid.UUID
}

func (s VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(author_id = ? OR workspace_id IN (SELECT workspace_id FROM workspace_members WHERE user_id = ?))",
		s.UserID, s.UserID,
	)
}

// WithTag matches rows whose JSON tag list contains Tag exactly.
type WithTag struct {
	Tag string
}

func (s WithTag) Apply(db *gorm.DB) *gorm.DB {
	encoded, _ := json.Marshal(s.Tag)
	return db.Where("CAST(tags AS TEXT) LIKE ? ESCAPE '\\'", "%"+EscapeLike(string(encoded))+"%")
}

type Pinned struct {
	Value bool
}

func (s Pinned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_pinned = ?", s.Value)
}

type Archived struct {
	Value bool
}

func (s Archived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", s.Value)
}

// Searchable columns per collection.
var (
	NoteSearchFields      = []string{"title", "content", "CAST(tags AS TEXT)"}
	DocumentSearchFields  = []string{"title", "content", "file_name"}
	CardSearchFields      = []string{"title", "content"}
	UserSearchFields      = []string{"name", "email"}
	WorkspaceSearchFields = []string{"name", "description"}
)
