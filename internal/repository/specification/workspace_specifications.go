package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByWorkspaceID struct {
	WorkspaceID uuid.UUID
}

func (s ByWorkspaceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ?", s.WorkspaceID)
}

// WorkspacesOfMember selects workspaces the user holds a member row in.
type WorkspacesOfMember struct {
	UserID uuid.UUID
}

func (s WorkspacesOfMember) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN (SELECT workspace_id FROM workspace_members WHERE user_id = ?)", s.UserID)
}

// MemberOf matches one member row.
type MemberOf struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
}

func (s MemberOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ? AND user_id = ?", s.WorkspaceID, s.UserID)
}

type ByWorkspaceIDs struct {
	WorkspaceIDs []uuid.UUID
}

func (s ByWorkspaceIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id IN ?", s.WorkspaceIDs)
}
